package main

import (
	"fmt"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/config"
	"github.com/Destrings2/wachatanalyzer-sub000/internal/store"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var chatFilter string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregates across saved chats",
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

			if chatFilter != "" {
				return printChatStats(db, chatFilter)
			}
			return printTotals(db)
		},
	}

	cmd.Flags().StringVar(&chatFilter, "chat", "", "limit stats to one saved chat")
	return cmd
}

func printChatStats(db *store.DB, name string) error {
	row, err := db.Chat(name)
	if err != nil {
		return err
	}
	if row == nil {
		fmt.Printf("wachat stats --chat %s\n\n  No saved chat named %q. Run `wachat parse --save` first.\n", name, name)
		return nil
	}

	fmt.Printf("wachat stats --chat %s\n\n", name)
	fmt.Printf("  %-20s %s\n", "chat type", row.ChatType)
	fmt.Printf("  %-20s %d\n", "messages", row.TotalMessages)
	fmt.Printf("  %-20s %d\n", "calls", row.TotalCalls)
	if row.StartAt != "" {
		fmt.Printf("  %-20s %s – %s\n", "date range", row.StartAt, row.EndAt)
	}

	parts, err := db.Participants(name)
	if err != nil {
		return err
	}
	if len(parts) > 0 {
		fmt.Println("\nParticipants")
		for _, p := range parts {
			fmt.Printf("  %-24s %5d msgs   %4d media\n", p.Name, p.MessageCount, p.MediaCount)
		}
	}
	return nil
}

func printTotals(db *store.DB) error {
	totals, err := db.Totals()
	if err != nil {
		return err
	}
	if totals.Chats == 0 {
		fmt.Print("wachat stats\n\n  No saved chats. Run `wachat parse --save` first.\n")
		return nil
	}

	fmt.Print("wachat stats\n\nOverview\n")
	fmt.Printf("  %-20s %d\n", "chats", totals.Chats)
	fmt.Printf("  %-20s %d\n", "messages", totals.Messages)
	fmt.Printf("  %-20s %d\n", "participants", totals.Participants)
	fmt.Printf("  %-20s %d (%d missed)\n", "calls", totals.Calls, totals.MissedCalls)
	fmt.Printf("  %-20s %d min\n", "talk time", totals.CallMinutes)

	senders, err := db.TopSenders(5)
	if err != nil {
		return err
	}
	if len(senders) > 0 {
		fmt.Println("\nTop senders")
		for _, s := range senders {
			fmt.Printf("  %-24s %5d msgs\n", s.Sender, s.Messages)
		}
	}

	chats, err := db.Chats()
	if err != nil {
		return err
	}
	fmt.Println("\nChats")
	for _, c := range chats {
		fmt.Printf("  %-24s %5d msgs   %3d calls   %s\n", c.Name, c.TotalMessages, c.TotalCalls, c.ChatType)
	}
	return nil
}
