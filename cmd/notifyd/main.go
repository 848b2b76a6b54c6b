package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notifyd <command>",
	Short: "Chat change-notification daemon",
	Long: `notifyd listens for chat change notifications raised by Postgres triggers
and streams the resulting events to connected clients over SSE.`,
}

func main() {
	rootCmd.AddCommand(serveCmd, setupCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
