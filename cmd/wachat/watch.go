package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/archive"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/config"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/store"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/watch"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the export drop directory and ingest new chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := store.Open(cfg.StorePath())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(os.Stderr, "watching %s\n", cfg.Watch.Dir)
			err = watch.Run(ctx, cfg.Watch.Dir, func(path string) error {
				return ingest(cfg, db, path)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func ingest(cfg config.Config, db *store.DB, path string) error {
	res, err := chat.ParseFile(path)
	if err != nil {
		return err
	}

	name := chatName(path)
	if err := db.SaveResult(name, res); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "ingested: %s (%d messages, %d calls)\n",
		name, res.Metadata.TotalMessages, len(res.Calls))

	if cfg.Archive.Compress && !archive.IsArchived(name, cfg.ArchiveDir()) && watch.IsExport(path) {
		if _, err := archive.Archive(path, cfg.ArchiveDir()); err != nil {
			fmt.Fprintf(os.Stderr, "wachat: archive %s: %v\n", name, err)
		}
	}
	return nil
}
