package adapters_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/mssql"    // Register mssql
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/mysql"    // Register mysql
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/postgres" // Register postgres
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/sqlite"   // Register sqlite
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
	"github.com/ruslano69/tdtp-rowmeta/pkg/retry"
)

// TestFactory_RegisteredDialects проверяет регистрацию всех диалектов
func TestFactory_RegisteredDialects(t *testing.T) {
	expected := []schema.Dialect{
		schema.DialectPostgreSQL,
		schema.DialectMySQL,
		schema.DialectMSSQL,
		schema.DialectSQLite,
	}

	got := adapters.RegisteredDialects()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d dialects, got %v", len(expected), got)
	}
	for i, d := range expected {
		if got[i] != d {
			t.Errorf("dialect[%d] = %s, want %s", i, got[i], d)
		}
		if !adapters.IsRegistered(d) {
			t.Errorf("%s is not registered", d)
		}
	}
	if adapters.IsRegistered(schema.DialectGeneric) {
		t.Error("generic dialect must not have a source")
	}
}

// TestFactory_Hook проверяет получение хука без подключения
func TestFactory_Hook(t *testing.T) {
	tests := []struct {
		name    string
		dialect schema.Dialect
	}{
		{"postgresql", schema.DialectPostgreSQL},
		{"pgx", schema.DialectPostgreSQL},
		{"MySQL", schema.DialectMySQL},
		{"mariadb", schema.DialectMySQL},
		{"sqlserver", schema.DialectMSSQL},
		{"sqlite3", schema.DialectSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook, err := adapters.Hook(tt.name)
			if err != nil {
				t.Fatalf("Hook(%q) failed: %v", tt.name, err)
			}
			if hook.Dialect() != tt.dialect {
				t.Errorf("Dialect = %s, want %s", hook.Dialect(), tt.dialect)
			}
		})
	}
}

// TestFactory_UnknownSource проверяет обработку неизвестного типа
func TestFactory_UnknownSource(t *testing.T) {
	ctx := context.Background()

	_, err := adapters.New(ctx, adapters.Config{Type: "unknown_db", DSN: "some_connection_string"})
	if err == nil {
		t.Fatal("Expected error for unknown source type, got nil")
	}
	if !strings.Contains(err.Error(), "unknown database type") {
		t.Errorf("Expected error to contain 'unknown database type', got '%s'", err.Error())
	}

	_, err = adapters.Hook("generic")
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Errorf("Expected 'not registered' error for generic, got %v", err)
	}
}

// TestFactory_ConfigValidation проверяет валидацию конфигурации
func TestFactory_ConfigValidation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		cfg       adapters.Config
		expectErr bool
	}{
		{
			name:      "Valid SQLite config",
			cfg:       adapters.Config{Type: "sqlite", DSN: ":memory:"},
			expectErr: false,
		},
		{
			name:      "Empty Type",
			cfg:       adapters.Config{Type: "", DSN: ":memory:"},
			expectErr: true,
		},
		{
			name:      "Invalid MySQL DSN",
			cfg:       adapters.Config{Type: "mysql", DSN: "not a dsn"},
			expectErr: true,
		},
		{
			name:      "Invalid PostgreSQL DSN",
			cfg:       adapters.Config{Type: "postgres", DSN: "postgres://host:notaport"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := adapters.New(ctx, tc.cfg)

			if tc.expectErr {
				if err == nil {
					src.Close()
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				} else {
					src.Close()
				}
			}
		})
	}
}

// TestFactory_MultipleSources проверяет независимость источников
func TestFactory_MultipleSources(t *testing.T) {
	ctx := context.Background()

	sources := make([]adapters.Source, 3)
	for i := range sources {
		src, err := adapters.New(ctx, adapters.Config{Type: "sqlite", DSN: ":memory:"})
		if err != nil {
			t.Fatalf("Failed to create source %d: %v", i, err)
		}
		defer src.Close()
		sources[i] = src
	}

	if err := sources[0].Exec(ctx, "CREATE TABLE t (id INTEGER)"); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	// У каждого :memory: источника своя БД
	if _, err := sources[1].Query(ctx, "SELECT id FROM t"); err == nil {
		t.Error("Expected missing table in an independent source")
	}
}

// TestFactory_CustomFactory проверяет отдельную фабрику
func TestFactory_CustomFactory(t *testing.T) {
	f := adapters.NewFactory()
	if len(f.RegisteredDialects()) != 0 {
		t.Fatal("new factory must be empty")
	}

	f.Register(schema.DialectSQLite, func() adapters.Source { return nil })
	if !f.IsRegistered(schema.DialectSQLite) {
		t.Error("sqlite must be registered")
	}
	f.Unregister(schema.DialectSQLite)
	if f.IsRegistered(schema.DialectSQLite) {
		t.Error("sqlite must be unregistered")
	}
}

// flakySource падает на Connect заданное число раз
type flakySource struct {
	adapters.Source
	failures int
	calls    *int
	err      error
}

func (s *flakySource) Connect(ctx context.Context, cfg adapters.Config) error {
	*s.calls++
	if *s.calls <= s.failures {
		return s.err
	}
	return nil
}

// TestFactory_ConnectRetry проверяет повторы Connect
func TestFactory_ConnectRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success after retries", 2, errors.New("connection refused"), 3, false},
		{"attempts exhausted", 5, errors.New("connection refused"), 3, true},
		{"permanent error", 5, retry.Permanent(errors.New("bad dsn")), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			f := adapters.NewFactory()
			f.Register(schema.DialectSQLite, func() adapters.Source {
				return &flakySource{failures: tt.failures, calls: &calls, err: tt.err}
			})

			_, err := f.Create(context.Background(), adapters.Config{
				Type: "sqlite",
				Retry: retry.Config{
					MaxAttempts:  3,
					InitialDelay: time.Millisecond,
					Backoff:      retry.BackoffConstant,
				},
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("Connect calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

// TestFactory_InvalidRetryConfig проверяет валидацию Retry до подключения
func TestFactory_InvalidRetryConfig(t *testing.T) {
	_, err := adapters.New(context.Background(), adapters.Config{
		Type:  "sqlite",
		DSN:   ":memory:",
		Retry: retry.Config{MaxAttempts: -1},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid retry config") {
		t.Errorf("Expected invalid retry config error, got %v", err)
	}
}
