package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	memberPersistence "github.com/pulseworks/pulse-sdk/modules/member/infrastructure/persistence"
	orgPersistence "github.com/pulseworks/pulse-sdk/modules/organization/infrastructure/persistence"
	"github.com/pulseworks/pulse-sdk/pkg/configuration"
	"github.com/pulseworks/pulse-sdk/pkg/migrate"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations for all modules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()

			db, err := sql.Open("pgx", conf.Database.Opts)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return migrate.Run(cmd.Context(), db,
				orgPersistence.Schema(),
				memberPersistence.Schema(),
			)
		},
	}
}
