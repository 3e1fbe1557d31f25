package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume document to HTML or Markdown",
	Long: "Renders a resume document JSON file (or the built-in sample document) with the chosen " +
		"template and palette. HTML output is a self-contained page; Markdown output ignores style.",
	RunE: runRender,
}

var (
	renderInFile   string
	renderTemplate string
	renderPalette  string
	renderFormat   string
	renderOutFile  string
	renderVerbose  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInFile, "in", "i", "", "Path to a resume document JSON file (default: sample document)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "classic", "Template: classic, corporate, creative, executive, technical")
	renderCmd.Flags().StringVarP(&renderPalette, "palette", "p", "blue", "Color palette: blue, green, black, purple")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html or markdown")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print a document summary to stderr")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	style, err := parseStyle(renderTemplate, renderPalette)
	if err != nil {
		return err
	}
	doc, err := loadDocument(renderInFile)
	if err != nil {
		return err
	}

	if renderVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDocument(&doc)
		printer.PrintSkills(&doc)
	}

	renderer, err := rendering.Default()
	if err != nil {
		return err
	}

	var out string
	switch renderFormat {
	case "html":
		out, err = renderer.RenderPage(doc, style.Template, style.ColorPalette)
	case "markdown", "md":
		out, err = renderer.RenderMarkdown(doc)
	default:
		return fmt.Errorf("unknown format %q (want html or markdown)", renderFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	if err := writeOutput(renderOutFile, []byte(out), cmd.OutOrStdout()); err != nil {
		return err
	}
	if renderOutFile != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", renderOutFile)
	}
	return nil
}
