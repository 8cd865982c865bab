package adapters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
	"github.com/ruslano69/tdtp-rowmeta/pkg/retry"
)

// SourceConstructor - функция-конструктор источника
// Возвращает новый экземпляр (еще не подключенный к БД)
type SourceConstructor func() Source

// Factory - фабрика источников по диалектам
type Factory struct {
	registry map[schema.Dialect]SourceConstructor
	mu       sync.RWMutex
}

// NewFactory создает новую фабрику
func NewFactory() *Factory {
	return &Factory{
		registry: make(map[schema.Dialect]SourceConstructor),
	}
}

// Register регистрирует конструктор источника для диалекта
//
// Пример:
//
//	factory.Register(schema.DialectPostgreSQL, func() adapters.Source {
//	    return &postgres.Source{}
//	})
func (f *Factory) Register(dialect schema.Dialect, constructor SourceConstructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry[dialect] = constructor
}

// Unregister удаляет конструктор
func (f *Factory) Unregister(dialect schema.Dialect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registry, dialect)
}

// IsRegistered проверяет, зарегистрирован ли диалект
func (f *Factory) IsRegistered(dialect schema.Dialect) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.registry[dialect]
	return ok
}

// RegisteredDialects возвращает зарегистрированные диалекты в порядке объявления
func (f *Factory) RegisteredDialects() []schema.Dialect {
	f.mu.RLock()
	defer f.mu.RUnlock()

	dialects := make([]schema.Dialect, 0, len(f.registry))
	for d := range f.registry {
		dialects = append(dialects, d)
	}
	sort.Slice(dialects, func(i, j int) bool { return dialects[i] < dialects[j] })
	return dialects
}

func (f *Factory) constructor(name string) (SourceConstructor, error) {
	dialect, err := schema.ParseDialect(name)
	if err != nil {
		return nil, fmt.Errorf("unknown database type: %s (available types: %v)", name, f.RegisteredDialects())
	}

	f.mu.RLock()
	constructor, ok := f.registry[dialect]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("database type %s is not registered (available types: %v)",
			dialect, f.RegisteredDialects())
	}
	return constructor, nil
}

// Create создает и подключает источник по конфигурации
func (f *Factory) Create(ctx context.Context, cfg Config) (Source, error) {
	constructor, err := f.constructor(cfg.Type)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	retryer, err := retry.NewRetryer(cfg.Retry)
	if err != nil {
		return nil, err
	}

	// Ошибки конфигурации помечаются retry.Permanent и не повторяются
	source := constructor()
	err = retryer.Do(ctx, func(ctx context.Context) error {
		return source.Connect(ctx, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}
	return source, nil
}

// Hook возвращает хук диалекта без подключения к БД
func (f *Factory) Hook(name string) (schema.DialectHook, error) {
	constructor, err := f.constructor(name)
	if err != nil {
		return nil, err
	}
	return constructor().Hook(), nil
}

// ========== Global Factory ==========

var globalFactory = NewFactory()

// Register регистрирует источник в глобальной фабрике
// Вызывается в init() пакетов диалектов:
//
//	func init() {
//	    adapters.Register(schema.DialectSQLite, func() adapters.Source {
//	        return &Source{}
//	    })
//	}
func Register(dialect schema.Dialect, constructor SourceConstructor) {
	globalFactory.Register(dialect, constructor)
}

// Unregister удаляет источник из глобальной фабрики
func Unregister(dialect schema.Dialect) {
	globalFactory.Unregister(dialect)
}

// IsRegistered проверяет регистрацию в глобальной фабрике
func IsRegistered(dialect schema.Dialect) bool {
	return globalFactory.IsRegistered(dialect)
}

// RegisteredDialects возвращает диалекты глобальной фабрики
func RegisteredDialects() []schema.Dialect {
	return globalFactory.RegisteredDialects()
}

// New создает источник через глобальную фабрику
//
// Пример:
//
//	src, err := adapters.New(ctx, adapters.Config{
//	    Type: "sqlite",
//	    DSN:  "file:app.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
func New(ctx context.Context, cfg Config) (Source, error) {
	return globalFactory.Create(ctx, cfg)
}

// Hook возвращает хук диалекта из глобальной фабрики
func Hook(name string) (schema.DialectHook, error) {
	return globalFactory.Hook(name)
}
