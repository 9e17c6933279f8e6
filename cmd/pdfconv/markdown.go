package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfconv/internal/container"
	"github.com/pdiddy/pdfconv/internal/convert"
	"github.com/pdiddy/pdfconv/pkg/types"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown FILE",
	Short: "Convert a PDF file to Markdown",
	Long: `Markdown converts a PDF into <name>.md.

The layout mode (default) keeps the reading order of text blocks, marks
short upper-case lines as # headings and title-case lines as ## headings,
writes embedded images to <name>_images/ and places each image reference
near the line where the image sits on the page. Placement is approximate.

The plain mode writes the text stream only: lines starting with a digit are
dropped and lines starting with purpose, context or note become ## headings.

--backend markitdown pipes the PDF through the markitdown container image
instead.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		applyNoImages(cmd)
		return bindFlags(cmd, map[string]string{
			"mode":        "markdown.mode",
			"backend":     "markdown.backend",
			"classifier":  "markdown.classifier",
			"line-height": "markdown.line_height",
			"frontmatter": "markdown.frontmatter",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := convert.Resolve(args[0], cfg.OutputDir)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		c, err := markdownConverter(ctx, cfg)
		if err != nil {
			return err
		}
		return convert.WriteMarkdown(ctx, c, paths, convert.MarkdownOptions{Frontmatter: cfg.Markdown.Frontmatter}, cmd.OutOrStdout())
	},
}

func markdownConverter(ctx context.Context, cfg types.Config) (convert.Converter, error) {
	switch cfg.Markdown.Backend {
	case types.BackendMarkitdown:
		rt, err := container.Detect(ctx, cfg.Container.Runtime)
		if err != nil {
			return nil, err
		}
		return convert.NewMarkitdownConverter(ctx, rt, cfg.Container.MarkitdownImage)
	case "", types.BackendNative:
	default:
		return nil, fmt.Errorf("unknown markdown backend %q: use native or markitdown", cfg.Markdown.Backend)
	}

	cls, err := classifierFor(cfg.Markdown)
	if err != nil {
		return nil, err
	}

	switch cfg.Markdown.Mode {
	case "", types.ModeLayout:
		return &convert.Layout{
			Loader:     newLoader(cfg, cfg.Images.Enabled),
			Classifier: cls,
			LineHeight: cfg.Markdown.LineHeight,
			Images:     cfg.Images.Enabled,
			Logger:     logger,
		}, nil
	case types.ModePlain:
		return &convert.Plain{Loader: newLoader(cfg, false), Classifier: cls}, nil
	default:
		return nil, fmt.Errorf("unknown markdown mode %q: use layout or plain", cfg.Markdown.Mode)
	}
}

func init() {
	f := markdownCmd.Flags()
	f.String("mode", string(types.ModeLayout), "conversion mode: layout or plain")
	f.String("backend", string(types.BackendNative), "conversion backend: native or markitdown")
	f.String("classifier", "", "heading heuristic: case or keyword (default: case for layout, keyword for plain)")
	f.Float64("line-height", 30, "vertical step per line when placing images, in points")
	f.Bool("frontmatter", false, "prepend YAML frontmatter with source and document info")
	f.Bool("no-images", false, "do not extract images")

	rootCmd.AddCommand(markdownCmd)
}
