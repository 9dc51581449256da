package persistence

import (
	"embed"

	"github.com/pulseworks/pulse-sdk/pkg/migrate"
)

//go:embed schema/*.sql
var migrationFiles embed.FS

func Schema() migrate.Schema {
	return migrate.Schema{
		Name: "member",
		FS:   migrationFiles,
		Dir:  "schema",
	}
}
