package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/shopctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shopctl/internal/adapters/driven/shopware"
	"github.com/custodia-labs/shopctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/services"
)

func main() {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to load configuration:", err)
		os.Exit(1)
	}

	// A missing shop configuration is not fatal: 'shopctl auth login' and
	// 'shopctl version' must work before any shop is configured. Commands
	// that need the admin API guard against the nil facade themselves.
	var adminAPI *services.AdminAPI
	apiURL := configStore.GetString("shop.api_url")
	clientID := configStore.GetString("shop.client_id")
	clientSecret := configStore.GetString("shop.client_secret")
	if apiURL != "" && clientID != "" && clientSecret != "" {
		client := shopware.NewClient(context.Background(), shopware.Config{
			APIURL:       apiURL,
			ClientID:     clientID,
			ClientSecret: clientSecret,
		})

		mediaRoot, err := mediaFolderRoot(configStore.GetString("media.folder_root"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		adminAPI = services.NewAdminAPI(client, mediaRoot)
	}

	cli.SetServices(adminAPI, configStore)
	cli.Execute()
}

// mediaFolderRoot parses the configured media root path. Empty means the
// built-in default root.
func mediaFolderRoot(raw string) (domain.FolderPath, error) {
	if raw == "" {
		return nil, nil
	}
	path, err := domain.ParseFolderPath(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid media.folder_root %q: %w", raw, err)
	}
	return path, nil
}
