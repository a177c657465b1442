package main

import (
	"fmt"
	"os"

	"github.com/deskmate-ai/deskmate/internal/cli"
	"github.com/deskmate-ai/deskmate/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskmated",
		Short: "DeskMate daemon",
		Long:  "DeskMate daemon for running the retrieval-augmented question answering API",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
