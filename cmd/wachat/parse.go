package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/archive"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/config"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/engine"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/report"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/store"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	var save, compress bool

	cmd := &cobra.Command{
		Use:   "parse <export.txt>",
		Short: "Parse a chat export and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			path := args[0]
			res, err := parseWithProgress(cfg, path)
			if err != nil {
				return err
			}

			name := chatName(path)
			fmt.Print(report.Format(report.Compute(res), name))

			if save {
				db, err := store.Open(cfg.StorePath())
				if err != nil {
					return fmt.Errorf("open store: %w", err)
				}
				defer db.Close()
				if err := db.SaveResult(name, res); err != nil {
					return fmt.Errorf("save: %w", err)
				}
				fmt.Fprintf(os.Stderr, "saved: %s\n", name)
			}

			if compress && !strings.HasSuffix(path, ".zst") {
				archPath, err := archive.Archive(path, cfg.ArchiveDir())
				if err != nil {
					return fmt.Errorf("archive: %w", err)
				}
				fmt.Fprintf(os.Stderr, "archived: %s\n", archPath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist the parsed chat into the local store")
	cmd.Flags().BoolVar(&compress, "archive", false, "compress the source export into the archive dir")
	return cmd
}

// parseWithProgress runs the chunked engine over the export, printing
// progress to stderr and accumulating chunks into a full result.
func parseWithProgress(cfg config.Config, path string) (*chat.Result, error) {
	content, err := readExport(path)
	if err != nil {
		return nil, err
	}

	eng := engine.New(
		engine.WithChunkSize(cfg.Parser.ChunkSize),
		engine.WithProgressEvery(cfg.Parser.ProgressEvery),
	)
	events, err := eng.Parse(content)
	if err != nil {
		return nil, err
	}

	res := &chat.Result{}
	for ev := range events {
		switch v := ev.(type) {
		case engine.Progress:
			fmt.Fprintf(os.Stderr, "\rparsing… %d/%d lines (%.0f%%)", v.Processed, v.Total, v.Ratio*100)
			if v.Processed == v.Total {
				fmt.Fprintln(os.Stderr)
			}
		case engine.Chunk:
			res.Messages = append(res.Messages, v.Messages...)
			res.Calls = append(res.Calls, v.Calls...)
		case engine.Complete:
			res.Participants = v.Participants
			res.Metadata = v.Metadata
		case engine.Error:
			fmt.Fprintf(os.Stderr, "wachat: %v (continuing with partial result)\n", v.Err)
		}
	}
	return res, nil
}

func readExport(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return "", fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		plain, err := dec.DecodeAll(data, nil)
		if err != nil {
			return "", fmt.Errorf("decompress export: %w", err)
		}
		return string(plain), nil
	}
	return string(data), nil
}

func chatName(path string) string {
	if name := archive.ChatName(path); name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
