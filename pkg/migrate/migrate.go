package migrate

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/go-faster/errors"
	"github.com/pressly/goose/v3"
)

// Schema is one module's embedded migration set. Each module versions its
// own schema under a dedicated goose version table, so modules can evolve
// independently the same way they register their schemas independently.
type Schema struct {
	Name string
	FS   fs.FS
	Dir  string
}

// Run applies every module schema in order.
func Run(ctx context.Context, db *sql.DB, schemas ...Schema) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, s := range schemas {
		goose.SetBaseFS(s.FS)
		goose.SetTableName("goose_db_version_" + s.Name)
		if err := goose.UpContext(ctx, db, s.Dir); err != nil {
			return errors.Wrapf(err, "apply migrations for module %s", s.Name)
		}
	}
	goose.SetBaseFS(nil)
	return nil
}
