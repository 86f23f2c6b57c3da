// Package migrations expone las migraciones SQL embebidas para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
