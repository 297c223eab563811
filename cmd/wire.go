package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	scopesapi "github.com/nlegrand-dev/obslens/internal/adapters/scopes/api"
	selectiontoml "github.com/nlegrand-dev/obslens/internal/adapters/selection/toml"
	"github.com/nlegrand-dev/obslens/internal/application"
	"github.com/nlegrand-dev/obslens/internal/ports"
	"github.com/nlegrand-dev/obslens/internal/querycache"
)

type app struct {
	scopes      *application.ScopeStore
	coordinator *application.SwitchCoordinator
	cache       *querycache.Cache
}

func wireApp(rootCmd *cobra.Command) (*app, error) {
	selectionStore, err := selectiontoml.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire selection store: %w", err)
	}

	client, err := scopesapi.NewClient(envOrDefault("OBSLENS_API_BASE_URL", "https://api.obslens.dev"), http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("wire scope API client: %w", err)
	}

	warnf := func(format string, args ...any) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "warning: "+format+"\n", args...)
	}

	cache := querycache.New(ports.SystemClock{})
	scopes := application.NewScopeStore(context.Background(), client, selectionStore, warnf)

	return &app{
		scopes:      scopes,
		coordinator: application.NewSwitchCoordinator(scopes, cache),
		cache:       cache,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
