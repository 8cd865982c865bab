// Package mssql provides a Microsoft SQL Server row source.
//
// Columns are described by go-mssqldb's DatabaseTypeName and mapped to
// semantic types with the SQL Server specific rules of Hook:
//
//   - MONEY and SMALLMONEY are read as BIGNUMBER
//   - UNIQUEIDENTIFIER is a 36 character STRING in canonical form
//   - DATETIME2 and DATETIMEOFFSET keep nanoseconds as TIMESTAMP
//   - DATETIME and SMALLDATETIME are DATE values
//
// Usage:
//
//	import (
//	    "context"
//	    "github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
//	    _ "github.com/ruslano69/tdtp-rowmeta/pkg/adapters/mssql"
//	)
//
//	src, err := adapters.New(ctx, adapters.Config{
//	    Type: "mssql",
//	    DSN:  "server=localhost;user id=sa;password=pass;database=mydb",
//	})
package mssql
