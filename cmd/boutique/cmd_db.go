package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/database/seeders"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/database"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// boutique migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// boutique migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// boutique migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// boutique seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB)
	},
}
