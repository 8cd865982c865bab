package adapters_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/sqlite"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// BenchmarkFactory_CreateSource измеряет создание источника через фабрику
func BenchmarkFactory_CreateSource(b *testing.B) {
	ctx := context.Background()
	cfg := adapters.Config{Type: "sqlite", DSN: ":memory:"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src, err := adapters.New(ctx, cfg)
		if err != nil {
			b.Fatalf("Failed to create source: %v", err)
		}
		src.Close()
	}
}

// BenchmarkSource_ReadRows измеряет чтение строк через RowMeta
func BenchmarkSource_ReadRows(b *testing.B) {
	ctx := context.Background()
	src, err := adapters.New(ctx, adapters.Config{Type: "sqlite", DSN: ":memory:"})
	if err != nil {
		b.Fatalf("Failed to create source: %v", err)
	}
	defer src.Close()

	if err := src.Exec(ctx, "CREATE TABLE t (id INTEGER, name VARCHAR(50), price DECIMAL(10,2), born DATE)"); err != nil {
		b.Fatalf("Exec failed: %v", err)
	}
	for i := 0; i < 1000; i++ {
		err := src.Exec(ctx, "INSERT INTO t VALUES (?, ?, ?, ?)", i, fmt.Sprintf("name-%d", i), float64(i)/4, "2024-01-01")
		if err != nil {
			b.Fatalf("Insert failed: %v", err)
		}
	}

	reg := schema.NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := src.Query(ctx, "SELECT * FROM t")
		if err != nil {
			b.Fatalf("Query failed: %v", err)
		}
		rm, err := rowmeta.FromCursor(reg, src.Hook(), rows)
		if err != nil {
			b.Fatalf("FromCursor failed: %v", err)
		}
		for rows.Next() {
			if _, err := rm.ReadRow(src.Hook(), rows); err != nil {
				b.Fatalf("ReadRow failed: %v", err)
			}
		}
		rows.Close()
	}
}
