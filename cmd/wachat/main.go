package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "wachat",
		Short:   "wachat - parse and analyze WhatsApp chat exports",
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
