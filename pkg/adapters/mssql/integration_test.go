package mssql

import (
	"context"
	"os"
	"testing"

	"github.com/ruslano69/tdtp-rowmeta/pkg/adapters"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/rowmeta"
	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// По умолчанию - значения из docker-compose.mssql.yml
var testConnString = getEnvOrDefault(
	"MSSQL_TEST_DSN",
	"server=localhost,1433;user id=sa;password=DevPassword123!;database=DevDB;encrypt=disable",
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestIntegration_ReadRows(t *testing.T) {
	ctx := context.Background()

	src, err := adapters.New(ctx, adapters.Config{Type: "sqlserver", DSN: testConnString})
	if err != nil {
		t.Skipf("MS SQL Server not available: %v", err)
	}
	defer src.Close()

	rows, err := src.Query(ctx, `SELECT
		CAST(12.34 AS MONEY)   AS price,
		CAST('6F9619FF-8B86-D011-B42D-00C04FC964FF' AS UNIQUEIDENTIFIER) AS id,
		CAST('2024-02-29 10:11:12.1234567' AS DATETIME2) AS at,
		CAST(NULL AS NVARCHAR(10)) AS note`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	rm, err := rowmeta.FromCursor(schema.NewRegistry(), src.Hook(), rows)
	if err != nil {
		t.Fatalf("FromCursor failed: %v", err)
	}

	expected := []schema.SemanticType{schema.TypeBigNumber, schema.TypeString, schema.TypeTimestamp, schema.TypeString}
	for i, typ := range expected {
		if got := rm.Descriptor(i).Type(); got != typ {
			t.Errorf("column %s: type = %s, want %s", rm.Descriptor(i).Name(), got, typ)
		}
	}

	if !rows.Next() {
		t.Fatalf("no rows: %v", rows.Err())
	}
	row, err := rm.ReadRow(src.Hook(), rows)
	if err != nil {
		t.Fatalf("ReadRow failed: %v", err)
	}
	if row[1] != "6F9619FF-8B86-D011-B42D-00C04FC964FF" {
		t.Errorf("id = %v", row[1])
	}
	if row[3] != nil {
		t.Errorf("note = %v, want NULL", row[3])
	}
}
