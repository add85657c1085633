// Package migrations embeds the SQL schema for the three collections so the
// server can bring the database up to date at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
