// Package config загружает описание раскладки строки (row layout) из YAML
// и строит по нему rowmeta.RowMeta.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// LayoutConfig - раскладка строки: диалект источника и описания колонок
type LayoutConfig struct {
	Dialect                   string         `yaml:"dialect"`                       // generic, postgres, mysql, mssql, sqlite
	NullsAndEmptyAreDifferent bool           `yaml:"nulls_and_empty_are_different"` // "" и NULL различаются
	Columns                   []ColumnConfig `yaml:"columns"`
}

// ColumnConfig описывает один дескриптор значения
type ColumnConfig struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`      // имя типа ("BigNumber", "string") или код ("6")
	Length    *int   `yaml:"length"`    // nil - без ограничения (-1)
	Precision *int   `yaml:"precision"` // nil - без ограничения (-1)
	TrimType  string `yaml:"trim_type"` // none, left, right, both
	Mask      string `yaml:"mask"`      // маска формата числа или даты

	DecimalSymbol  string `yaml:"decimal"`
	GroupingSymbol string `yaml:"grouping"`
	CurrencySymbol string `yaml:"currency"`
	Locale         string `yaml:"locale"`
	TimeZone       string `yaml:"time_zone"` // имя из базы IANA: "Europe/Moscow", "UTC"
	DateLenient    *bool  `yaml:"date_lenient"`

	Storage         string          `yaml:"storage"`  // normal, binary-string, compressed
	Encoding        string          `yaml:"encoding"` // кодировка binary-string
	CaseInsensitive bool            `yaml:"case_insensitive"`
	Sort            string          `yaml:"sort"` // asc, desc
	Collation       CollationConfig `yaml:"collation"`
}

// CollationConfig - локале-зависимое сравнение строк
type CollationConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Locale   string `yaml:"locale"`
	Strength *int   `yaml:"strength"` // 0..3, по умолчанию tertiary
}

// Load загружает раскладку из YAML файла
func Load(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет YAML раскладки
func Parse(data []byte) (*LayoutConfig, error) {
	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *LayoutConfig) Validate() error {
	if _, err := schema.ParseDialect(c.Dialect); err != nil {
		return err
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}

	seen := make(map[string]bool, len(c.Columns))
	for i := range c.Columns {
		col := &c.Columns[i]
		if err := col.Validate(); err != nil {
			return fmt.Errorf("column[%d] (%s): %w", i, col.Name, err)
		}
		key := strings.ToLower(col.Name)
		if seen[key] {
			return fmt.Errorf("column[%d]: duplicate name '%s'", i, col.Name)
		}
		seen[key] = true
	}
	return nil
}

// Validate проверяет корректность ColumnConfig
func (c *ColumnConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Type == "" {
		return fmt.Errorf("type is required")
	}
	if _, err := schema.ParseSemanticType(c.Type); err != nil {
		return err
	}
	if c.TrimType != "" && schema.TrimTypeFromCode(c.TrimType).Code() != strings.ToLower(c.TrimType) {
		return fmt.Errorf("unknown trim_type '%s', must be one of: none, left, right, both", c.TrimType)
	}
	if _, err := schema.ParseStorageType(c.Storage); err != nil {
		return err
	}
	if _, err := schema.ParseSortDirection(c.Sort); err != nil {
		return err
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("invalid time_zone '%s': %w", c.TimeZone, err)
		}
	}
	if s := c.Collation.Strength; s != nil && (*s < schema.StrengthPrimary || *s > schema.StrengthIdentical) {
		return fmt.Errorf("collation strength %d out of range [0, 3]", *s)
	}
	return nil
}

// ParsedDialect возвращает диалект раскладки (generic, если не задан)
func (c *LayoutConfig) ParsedDialect() schema.Dialect {
	d, _ := schema.ParseDialect(c.Dialect)
	return d
}

// Build создает дескрипторы колонок в порядке объявления
func (c *LayoutConfig) Build(reg *schema.Registry) (*rowmeta.RowMeta, error) {
	rm := rowmeta.New()
	for i := range c.Columns {
		m, err := c.Columns[i].Build(reg)
		if err != nil {
			return nil, fmt.Errorf("column[%d] (%s): %w", i, c.Columns[i].Name, err)
		}
		m.SetNullsAndEmptyAreDifferent(c.NullsAndEmptyAreDifferent)
		rm.Add(m)
	}
	return rm, nil
}

func orUnlimited(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

// Build создает дескриптор колонки
func (c *ColumnConfig) Build(reg *schema.Registry) (*schema.Meta, error) {
	t, err := schema.ParseSemanticType(c.Type)
	if err != nil {
		return nil, err
	}
	m, err := reg.New(t, c.Name, orUnlimited(c.Length), orUnlimited(c.Precision))
	if err != nil {
		return nil, err
	}

	m.SetTrimType(schema.TrimTypeFromCode(c.TrimType))
	if c.Mask != "" {
		m.SetConversionMask(c.Mask)
	}
	if c.DecimalSymbol != "" {
		m.SetDecimalSymbol(c.DecimalSymbol)
	}
	if c.GroupingSymbol != "" {
		m.SetGroupingSymbol(c.GroupingSymbol)
	}
	if c.CurrencySymbol != "" {
		m.SetCurrencySymbol(c.CurrencySymbol)
	}
	if c.Locale != "" {
		m.SetLocale(c.Locale)
	}
	if c.TimeZone != "" {
		loc, err := time.LoadLocation(c.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time_zone '%s': %w", c.TimeZone, err)
		}
		m.SetTimeZone(loc)
	}
	if c.DateLenient != nil {
		m.SetDateLenient(*c.DateLenient)
	}

	storage, err := schema.ParseStorageType(c.Storage)
	if err != nil {
		return nil, err
	}
	m.SetStorageType(storage)
	if c.Encoding != "" {
		m.SetEncoding(c.Encoding)
	}

	m.SetCaseInsensitive(c.CaseInsensitive)
	dir, err := schema.ParseSortDirection(c.Sort)
	if err != nil {
		return nil, err
	}
	m.SetSortDirection(dir)

	if c.Collation.Enabled {
		strength := schema.StrengthTertiary
		if c.Collation.Strength != nil {
			strength = *c.Collation.Strength
		}
		m.SetCollation(schema.Collation{Enabled: true, Locale: c.Collation.Locale, Strength: strength})
	}
	return m, nil
}
