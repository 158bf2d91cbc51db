// Package audit embeds the goose migrations for the audit database.
package audit

import "embed"

//go:embed *.sql
var Migrations embed.FS
