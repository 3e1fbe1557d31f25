// Package main provides the resume_editor command: the editing server plus
// offline render and export tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_editor",
	Short: "Resume editor server and tools",
	Long: "resume_editor serves the session-based resume editing API and renders or exports " +
		"resume documents to HTML, Markdown and PDF from the command line.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
