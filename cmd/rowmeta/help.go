package main

import (
	"flag"
	"fmt"
)

const version = "0.3.0"

// PrintVersion prints version information
func PrintVersion() {
	fmt.Printf("rowmeta version %s\n", version)
}

// PrintHelp prints usage information
func PrintHelp() {
	fmt.Println("rowmeta - typed row reader")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("USAGE:")
	fmt.Println("  rowmeta -types")
	fmt.Println("  rowmeta -db <dialect> -dsn <dsn> -query <sql> [-layout file.yaml] [-sort a,b] [-desc]")
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println("  rowmeta -db sqlite -dsn app.db -query \"SELECT * FROM users\" -sort name")
	fmt.Println("  rowmeta -db postgres -dsn postgresql://localhost/db -query \"SELECT ip FROM hosts\" -sort ip -desc")
	fmt.Println()

	fmt.Println("FLAGS:")
	flag.PrintDefaults()
}
