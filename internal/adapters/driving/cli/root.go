// Package cli implements the ragview command-line interface.
//
// Commands talk to the core services through the driving ports; the
// package-level service variables are wired once per process, either by
// wireDefaults on first run or directly by tests.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driven/config/file"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driven/gateway/httpapi"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driven/notify"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
	"github.com/helicon-labs/ragview-cli/internal/core/services"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

// envBaseURL overrides the configured backend base URL.
const envBaseURL = "RAGVIEW_API_BASE_URL"

// version is set via ldflags at build time.
var version = "dev"

var (
	flagBaseURL string
	flagVerbose bool
)

// Services the commands run against. Wired by wireDefaults on first
// use; tests swap these directly.
var (
	querySession driving.QuerySession
	collection   driving.DocumentCollection
	uploads      driving.UploadTracker
	configStore  driven.ConfigStore

	wired bool
)

var rootCmd = &cobra.Command{
	Use:   "ragview",
	Short: "Terminal client for a RAG document backend",
	Long: `ragview is a terminal client for a retrieval-augmented generation
document backend. Upload documents, query them with vector search or
LLM-composed answers, and manage the collection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if wired {
			return nil
		}
		return wireDefaults(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "backend base URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wireDefaults builds the production adapters and services. The base
// URL is resolved flag > environment > config file > built-in default.
func wireDefaults(cmd *cobra.Command) error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	configStore = store

	base := resolveBaseURL(flagBaseURL, store)
	logger.Debug("Using backend base URL: %s", base)

	client := httpapi.NewClient(base)
	notifier := notify.NewWriter(cmd.ErrOrStderr())

	query := services.NewQueryService(client, notifier)
	query.SetResultCount(store.GetInt(file.KeyResultCount))

	querySession = query
	collection = services.NewCollectionService(client, notifier)
	uploads = services.NewUploadService(client, notifier)
	wired = true
	return nil
}

// resolveBaseURL picks the backend base URL: flag over environment over
// config file over the built-in default. Empty values count as unset.
func resolveBaseURL(flagValue string, store driven.ConfigStore) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(envBaseURL); env != "" {
		return env
	}
	if configured := store.GetString(file.KeyBaseURL); configured != "" {
		return configured
	}
	return httpapi.DefaultBaseURL
}
