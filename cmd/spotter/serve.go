package main

import (
	"context"

	"github.com/aussiebroadwan/spotter/internal/portal/app"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return err
	}
	return application.Run()
}

// openStore loads the configuration and opens the store with migrations
// applied. Only the store settings need to be valid.
func openStore(ctx context.Context) (store.Store, error) {
	return app.OpenStore(ctx, app.LoadConfig())
}
