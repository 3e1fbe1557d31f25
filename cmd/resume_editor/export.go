package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/export"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume document to PDF",
	Long: "Exports a resume document to PDF through the render service. When the service fails, " +
		"the page is rasterized with the local browser and embedded into a PDF instead.",
	RunE: runExport,
}

var (
	exportInFile    string
	exportTemplate  string
	exportPalette   string
	exportRenderURL string
	exportOutFile   string
	exportConfig    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInFile, "in", "i", "", "Path to a resume document JSON file (default: sample document)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "classic", "Template: classic, corporate, creative, executive, technical")
	exportCmd.Flags().StringVarP(&exportPalette, "palette", "p", "blue", "Color palette: blue, green, black, purple")
	exportCmd.Flags().StringVar(&exportRenderURL, "render-url", "", "PDF render service base URL (default: RESUME_EDITOR_RENDER_SERVICE_URL, else local browser)")
	exportCmd.Flags().StringVarP(&exportOutFile, "out", "o", "resume.pdf", "Output PDF file")
	exportCmd.Flags().StringVar(&exportConfig, "config", "", "Path to a JSON or YAML config file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(exportConfig)
	if err != nil {
		return err
	}
	if exportRenderURL != "" {
		cfg.RenderServiceURL = exportRenderURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	style, err := parseStyle(exportTemplate, exportPalette)
	if err != nil {
		return err
	}
	doc, err := loadDocument(exportInFile)
	if err != nil {
		return err
	}

	renderer, err := rendering.Default()
	if err != nil {
		return err
	}
	page, err := renderer.RenderPage(doc, style.Template, style.ColorPalette)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogPretty)
	primary, _ := renderServices(cfg, logger)
	exporter := export.NewExporter(primary, export.NewLocalFallback(newBrowser(cfg, logger)), logger)

	res, err := exporter.Export(context.Background(), exportOutFile, page, nil)
	var notices []string
	if res != nil {
		for _, n := range res.Notices {
			notices = append(notices, n.Message)
		}
	}
	if err != nil {
		for _, n := range notices {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), n)
		}
		return err
	}

	if err := writeOutput(exportOutFile, res.PDF, cmd.OutOrStdout()); err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintExport(string(res.Path), len(res.PDF), notices)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", exportOutFile)
	return nil
}
