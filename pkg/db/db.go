package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/theodave/kanjidb/pkg/kanjidic"
)

// CreateSchema drops and recreates both tables. The pipeline is a full
// rebuild: no incremental mode, no migrations. The settings singleton is
// seeded with a zeroed row; the library table gets one column per record
// field with the composite (literal, cp_type_ucs) primary key.
func CreateSchema(conn *sql.DB) error {
	stmts := []string{
		`DROP TABLE IF EXISTS library`,
		`DROP TABLE IF EXISTS settings`,
		`CREATE TABLE settings (
			choice   INTEGER,
			screen0x INTEGER,
			screen0y INTEGER,
			screen1x INTEGER,
			screen1y INTEGER,
			idx      INTEGER UNIQUE,
			PRIMARY KEY (idx AUTOINCREMENT)
		)`,
		`INSERT INTO settings (choice, screen0x, screen0y, screen1x, screen1y)
			VALUES (0, 0, 0, 0, 0)`,
		libraryDDL(),
	}
	for _, s := range stmts {
		if _, err := conn.Exec(s); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// libraryDDL renders the records table from the canonical column catalog:
// key columns NOT NULL text, diagram slots blob, everything else nullable
// text.
func libraryDDL() string {
	cols := kanjidic.Columns()
	defs := make([]string, 0, len(cols))
	var keys []string
	for _, c := range cols {
		switch {
		case c.Key:
			defs = append(defs, c.Name+" text NOT NULL")
			keys = append(keys, c.Name)
		case c.Blob:
			defs = append(defs, c.Name+" blob")
		default:
			defs = append(defs, c.Name+" text")
		}
	}
	return fmt.Sprintf("CREATE TABLE library (\n\t%s,\n\tPRIMARY KEY (%s)\n)",
		strings.Join(defs, ",\n\t"), strings.Join(keys, ", "))
}
