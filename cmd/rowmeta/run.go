package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/config"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
	"github.com/ruslano69/tdtp-rowmeta/pkg/retry"
	"github.com/ruslano69/tdtp-rowmeta/pkg/xlsx"
)

const connectTimeout = 30 * time.Second

// Options - параметры одного запуска
type Options struct {
	DB      string
	DSN     string
	Query   string
	Retries int
	Layout  string
	Sort    string
	Desc    bool
	XLSX    string
}

// PrintTypes выводит типы значений в порядке реестра
func PrintTypes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := schema.TypeNames()
	descs := schema.TypeDescriptions(schema.DefaultMessages)
	for i, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, descs[i])
	}
	return tw.Flush()
}

// Run читает результат запроса, при необходимости приводит его к раскладке
// и сортирует, затем печатает описание колонок и строки
func Run(ctx context.Context, opts Options, w io.Writer) error {
	cfg := adapters.Config{Type: opts.DB, DSN: opts.DSN, Timeout: connectTimeout}
	if opts.Retries > 1 {
		cfg.Retry = retry.DefaultConfig()
		cfg.Retry.MaxAttempts = opts.Retries
		cfg.Retry.OnRetry = func(attempt int, err error, delay time.Duration) {
			log.Printf("connect attempt %d failed: %v; retrying in %v", attempt, err, delay)
		}
	}

	src, err := adapters.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	reg := schema.NewRegistry()
	rm, data, err := readAll(ctx, reg, src, opts.Query)
	if err != nil {
		return err
	}
	log.Printf("read %d rows, %d columns (%s)", len(data), rm.Len(), src.Hook().Dialect())

	if opts.Layout != "" {
		if rm, data, err = applyLayout(reg, opts.Layout, rm, data); err != nil {
			return err
		}
	}

	if opts.Sort != "" {
		if err := sortRows(rm, data, opts.Sort, opts.Desc); err != nil {
			return err
		}
	}

	if opts.XLSX != "" {
		if err := xlsx.Write(rm, data, opts.XLSX, ""); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.XLSX, err)
		}
		log.Printf("wrote %d rows to %s", len(data), opts.XLSX)
	}
	return printRows(w, rm, data)
}

func readAll(ctx context.Context, reg *schema.Registry, src adapters.Source, query string) (*rowmeta.RowMeta, [][]any, error) {
	rows, err := src.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	rm, err := rowmeta.FromCursor(reg, src.Hook(), rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to describe columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		row, err := rm.ReadRow(src.Hook(), rows)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", len(data)+1, err)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return rm, data, nil
}

// applyLayout конвертирует строки в дескрипторы раскладки по позиции колонок
func applyLayout(reg *schema.Registry, path string, src *rowmeta.RowMeta, data [][]any) (*rowmeta.RowMeta, [][]any, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	target, err := cfg.Build(reg)
	if err != nil {
		return nil, nil, err
	}
	if target.Len() != src.Len() {
		return nil, nil, fmt.Errorf("layout has %d columns, query returned %d", target.Len(), src.Len())
	}

	out := make([][]any, len(data))
	for i, row := range data {
		if out[i], err = target.ConvertRow(src, row); err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return target, out, nil
}

func sortRows(rm *rowmeta.RowMeta, data [][]any, sortSpec string, desc bool) error {
	var names []string
	for _, name := range strings.Split(sortSpec, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	keys, err := rm.Keys(names...)
	if err != nil {
		return err
	}
	if desc {
		for _, k := range keys {
			rm.Descriptor(k).SetSortDirection(schema.SortDescending)
		}
	}
	return rm.Sort(data, keys)
}

func printRows(w io.Writer, rm *rowmeta.RowMeta, data [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	// "name Type(length, precision)"
	header := make([]string, rm.Len())
	for i := range header {
		header[i] = rm.Descriptor(i).String()
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range data {
		cells, err := rm.FormatRow(row)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
