package main

import "flag"

// Flags holds all command-line flags
type Flags struct {
	// Commands
	Types *bool

	// Source
	DB      *string
	DSN     *string
	Query   *string
	Retries *int

	// Options
	Layout *string
	Sort   *string
	Desc   *bool
	XLSX   *string

	Version *bool
	Help    *bool
}

// ParseFlags parses command-line flags
func ParseFlags() *Flags {
	f := &Flags{}

	f.Types = flag.Bool("types", false, "List value types and exit")

	f.DB = flag.String("db", "sqlite", "Database dialect: sqlite, postgres, mysql, mssql")
	f.DSN = flag.String("dsn", ":memory:", "Connection string")
	f.Query = flag.String("query", "", "SQL query to read")
	f.Retries = flag.Int("retries", 1, "Connection attempts before giving up")

	f.Layout = flag.String("layout", "", "YAML row layout; rows are converted to it column by column")
	f.Sort = flag.String("sort", "", "Comma-separated sort columns (empty = no sorting)")
	f.Desc = flag.Bool("desc", false, "Sort descending")
	f.XLSX = flag.String("xlsx", "", "Also save the rows to this XLSX file")

	f.Version = flag.Bool("version", false, "Show version information")
	f.Help = flag.Bool("help", false, "Show help")

	flag.Parse()
	return f
}
