// Package migrations embeds the SQL schema migrations of the SQLite store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
