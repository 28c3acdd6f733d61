// ABOUTME: Contract tests for the SQLite schema to detect breaking schema changes
// ABOUTME: Validates that the tasks table and its columns exist with the expected types

package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columnInfo struct {
	Type    string
	NotNull bool
	PK      bool
}

// expectedSchema is the contract for the tasks database. Removing or
// renaming a column fails these tests.
var expectedSchema = map[string]map[string]columnInfo{
	"tasks": {
		"id":        {Type: "INTEGER", PK: true},
		"day":       {Type: "TEXT", NotNull: true},
		"title":     {Type: "TEXT", NotNull: true},
		"time":      {Type: "TEXT", NotNull: true},
		"completed": {Type: "INTEGER", NotNull: true},
	},
}

// openSchemaDB creates a file-backed store and a second connection to inspect it.
func openSchemaDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "schema_test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err, "failed to create SQLite store")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err, "failed to open database")

	t.Cleanup(func() {
		db.Close()
		s.Close()
	})

	return db
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]columnInfo, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("querying table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]columnInfo)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info: %w", err)
		}
		columns[name] = columnInfo{Type: colType, NotNull: notNull == 1, PK: pk > 0}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return columns, nil
}

func TestSchemaSurface(t *testing.T) {
	db := openSchemaDB(t)
	ctx := context.Background()

	for table, want := range expectedSchema {
		t.Run(table, func(t *testing.T) {
			got, err := tableColumns(ctx, db, table)
			require.NoError(t, err)
			require.NotEmpty(t, got, "table %s should exist", table)

			for col, info := range want {
				assert.Equal(t, info, got[col], "column %s.%s", table, col)
			}

			for col := range got {
				if _, ok := want[col]; !ok {
					t.Logf("INFO: extra column %s.%s not in contract", table, col)
				}
			}
		})
	}
}

// TestSchemaAutoincrement checks the sequence table AUTOINCREMENT creates,
// which is what keeps deleted ids from being reused.
func TestSchemaAutoincrement(t *testing.T) {
	db := openSchemaDB(t)

	rows, err := db.QueryContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type='table'")
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())

	assert.True(t, slices.Contains(tables, "sqlite_sequence"), "tables: %v", tables)
}
