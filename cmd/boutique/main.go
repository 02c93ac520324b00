package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/webproformation/LaboutiqueOK-sub001/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boutique",
	Short: "La Boutique backend CLI",
	Long:  "Backend for the La Boutique storefront: HTTP API, catalog sync and database management.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Catalog
	rootCmd.AddCommand(syncCatalogCmd)
}
