package main

import (
	"fmt"
	"os"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/config"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(dataDir)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("config: %s\n", path)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			fmt.Printf("data dir: %s\n", cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "~/.local/share/wachat", "where to keep the store and archives")
	return cmd
}
