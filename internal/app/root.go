// Package app assembles the hub from configuration and exposes it as cobra commands.
package app

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X smarthub/internal/app.Version=...".
var Version = "dev"

// NewRootCmd builds the smarthub command tree. Running it without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "smarthub",
		Short:         "Smart hub backend for temperature, presence, fan and light control",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configDir)
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yml")

	root.AddCommand(
		newServeCmd(&configDir),
		newSunsetCmd(&configDir),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configDir)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("smarthub " + Version)
		},
	}
}
