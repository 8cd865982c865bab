package main

import (
	"context"
	"log"
	"os"

	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/mssql"
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/mysql"
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/postgres"
	_ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/sqlite"
)

func main() {
	ctx := context.Background()
	log.SetFlags(0)
	log.SetPrefix("rowmeta: ")

	flags := ParseFlags()

	if *flags.Version {
		PrintVersion()
		os.Exit(0)
	}
	if *flags.Help {
		PrintHelp()
		os.Exit(0)
	}

	if *flags.Types {
		if err := PrintTypes(os.Stdout); err != nil {
			fatal("Failed to print types: %v", err)
		}
		return
	}

	if *flags.Query == "" {
		PrintHelp()
		os.Exit(1)
	}

	err := Run(ctx, Options{
		DB:      *flags.DB,
		DSN:     *flags.DSN,
		Query:   *flags.Query,
		Retries: *flags.Retries,
		Layout:  *flags.Layout,
		Sort:    *flags.Sort,
		Desc:    *flags.Desc,
		XLSX:    *flags.XLSX,
	}, os.Stdout)
	if err != nil {
		fatal("%v", err)
	}
}

// fatal prints error and exits
func fatal(format string, args ...any) {
	log.Fatalf("Error: "+format, args...)
}
