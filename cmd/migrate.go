package cmd

import (
	"time"

	"chamados/db"
	"chamados/store"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria/ajusta as tabelas e sai",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			cfg.AutoMigrate = false

			database, err := db.Connect(cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(database); err != nil {
				return err
			}
			if err := store.NewChamados(database).EnsureSequence(time.Now().Year()); err != nil {
				return err
			}
			logger.Info("migração concluída")
			return nil
		},
	}
}
