package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timohermans/rabo-overview/pkg/config"
	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the flow graph and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached flow graphs and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Cache.Backend == config.CacheNone {
		printInfo("Caching is disabled")
		return nil
	}

	backend, err := c.openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	count, err := backend.Clear(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCache, err, "clear %s cache", cfg.Cache.Backend)
	}
	if count == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Backend: %s", cfg.Cache.Backend)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case config.CacheRedis:
				fmt.Println("redis://" + cfg.Cache.RedisAddr)
				return nil
			case config.CacheNone:
				printInfo("Caching is disabled")
				return nil
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}
