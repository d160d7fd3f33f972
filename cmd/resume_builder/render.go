package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	renderTemplate string
	renderOut      string
	renderText     bool
	renderAll      bool
	renderOutDir   string
)

var renderCmd = &cobra.Command{
	Use:   "render <cv.json>",
	Short: "Render a CV to HTML or plain text",
	Long: `Render a CV document with one of the built-in templates
(ats, ats-compact, modern-colored, executive-serif). Unknown template ids
fall back to ats. Use --all to write every template into --out-dir.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (default from config)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Render plain text instead of HTML")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every template into --out-dir")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "Output directory for --all (default from config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cv, err := loadCvFile(cmd, args[0])
	if err != nil {
		return err
	}

	if renderAll {
		dir := renderOutDir
		if dir == "" {
			dir = cfg.OutputDir
		}
		return renderAllTemplates(cmd, cv, dir)
	}

	id := rendering.ParseTemplateID(renderTemplate)
	if renderTemplate == "" {
		id = rendering.ParseTemplateID(cfg.Template)
	}
	output, err := renderOne(id, cv)
	if err != nil {
		return err
	}

	if renderOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
		return err
	}
	if err := os.WriteFile(renderOut, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", id, renderOut)
	return nil
}

func renderOne(id rendering.TemplateID, cv types.CvRecord) (string, error) {
	html, err := rendering.RenderHTML(id, cv)
	if err != nil {
		return "", err
	}
	if !renderText {
		return html, nil
	}
	return rendering.PlainText(html)
}

// renderAllTemplates writes one file per template concurrently
func renderAllTemplates(cmd *cobra.Command, cv types.CvRecord, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := ".html"
	if renderText {
		ext = ".txt"
	}

	var (
		mu    sync.Mutex
		paths = make(map[string]string)
		g     errgroup.Group
	)
	for _, info := range rendering.Templates() {
		g.Go(func() error {
			output, err := renderOne(info.ID, cv)
			if err != nil {
				return fmt.Errorf("template %s: %w", info.ID, err)
			}
			path := filepath.Join(dir, string(info.ID)+ext)
			if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			mu.Lock()
			paths[string(info.ID)] = path
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRendered(paths)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d templates to %s\n", len(paths), dir)
	}
	return nil
}
