package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/suplementor-backend/internal/app"
	"github.com/yungbote/suplementor-backend/internal/data/db"
	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/data/seed"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := cliLogger(cfg)
			if err != nil {
				return err
			}
			svc, err := db.NewService(cfg.Database, log)
			if err != nil {
				return err
			}
			defer svc.Close()
			if err := app.Migrate(svc.DB(), log); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var skipMigrate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled supplement catalog and knowledge base",
		Long:  `Upserts the embedded catalog and curated knowledge base.
Running it twice leaves the database unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := cliLogger(cfg)
			if err != nil {
				return err
			}
			svc, err := db.NewService(cfg.Database, log)
			if err != nil {
				return err
			}
			defer svc.Close()

			theDB := svc.DB()
			if !skipMigrate {
				if err := app.Migrate(theDB, log); err != nil {
					return err
				}
			}
			res, err := seed.Apply(
				cmd.Context(),
				theDB,
				log,
				repos.NewSupplementRepo(theDB, log),
				repos.NewKnowledgeNodeRepo(theDB, log),
				repos.NewKnowledgeRelationshipRepo(theDB, log),
			)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "assume the schema is already current")
	return cmd
}
