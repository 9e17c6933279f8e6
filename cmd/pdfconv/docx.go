package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfconv/internal/convert"
)

var docxCmd = &cobra.Command{
	Use:   "docx FILE",
	Short: "Convert a PDF file to a Word document",
	Long: `Docx converts a PDF into <name>.docx. Upper-case lines become Heading 1,
title-case lines Heading 2, images are embedded inline near their position
on the page and every PDF page starts on a new page.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		applyNoImages(cmd)
		return bindFlags(cmd, map[string]string{
			"classifier":  "markdown.classifier",
			"line-height": "markdown.line_height",
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
		cfg.Markdown.Mode = ""
		cls, err := classifierFor(cfg.Markdown)
		if err != nil {
			return err
		}

		d := &convert.Docx{
			Loader:     newLoader(cfg, cfg.Images.Enabled),
			Classifier: cls,
			LineHeight: cfg.Markdown.LineHeight,
			Images:     cfg.Images.Enabled,
			Logger:     logger,
		}
		return d.Write(cmd.Context(), paths, cmd.OutOrStdout())
	},
}

func init() {
	f := docxCmd.Flags()
	f.String("classifier", "", "heading heuristic: case or keyword (default: case)")
	f.Float64("line-height", 30, "vertical step per line when placing images, in points")
	f.Bool("no-images", false, "do not embed images")

	rootCmd.AddCommand(docxCmd)
}
