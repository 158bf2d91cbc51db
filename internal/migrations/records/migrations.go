// Package records embeds the goose migrations for the records database.
package records

import "embed"

//go:embed *.sql
var Migrations embed.FS
