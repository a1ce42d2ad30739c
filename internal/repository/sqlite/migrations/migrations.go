// Package migrations holds the SQLite schema as embedded, ordered .sql files.
package migrations

import "embed"

// FS contains every migration file. Files are applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
