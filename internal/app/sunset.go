package app

import (
	"context"
	"fmt"
	"time"

	"smarthub/internal/config"
	"smarthub/internal/logger"

	"github.com/spf13/cobra"
)

const sunsetCmdTimeout = 30 * time.Second

func newSunsetCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sunset",
		Short: "Resolve and print today's sunset for the configured location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), sunsetCmdTimeout)
			defer cancel()

			resolver := newResolver(ctx, cfg, nil, logger.Nop())
			at, err := resolver.Today(ctx)
			if err != nil {
				return fmt.Errorf("resolve sunset: %w", err)
			}
			coords, _ := resolver.Coordinates()
			cmd.Printf("sunset %s (%s) at %.4f,%.4f\n", at, cfg.Timezone, coords.Latitude, coords.Longitude)
			return nil
		},
	}
}
