package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/database"
)

// boutique sync:catalog — pull the whole catalog into the local cache.
var syncCatalogCmd = &cobra.Command{
	Use:   "sync:catalog",
	Short: "Pull all products and categories from the catalog API into the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		client := woo.NewFromConfig()
		catalog := services.NewCatalogService(database.DB)

		cats, err := catalog.PullCategories(client)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d categories\n", cats)

		products, err := catalog.PullProducts(client)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d products\n", products)
		return nil
	},
}
