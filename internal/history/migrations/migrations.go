package migrations

import "embed"

// FS holds the SQL migration files applied by history.Migrate.
//
//go:embed *.sql
var FS embed.FS
