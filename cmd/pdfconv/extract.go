package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfconv/internal/convert"
	"github.com/pdiddy/pdfconv/internal/extract"
	"github.com/pdiddy/pdfconv/internal/ocr"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the text and metadata of every page",
	Long: `Extract prints one document per PDF page: its text content and its
metadata (source, 0-based page, total_pages and the document info fields).

--format text prints the page count followed by CONTENT and METADATA
banners per page; yaml and json print a list of documents.

--ocr recognizes the images of pages that have no text layer. It needs a
build with -tags ocr and Tesseract installed.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"format":       "extract.format",
			"ocr":          "extract.ocr",
			"ocr-language": "extract.ocr_language",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if _, err := convert.Resolve(args[0], ""); err != nil {
			return err
		}

		doc, err := newLoader(cfg, cfg.Extract.OCR).Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		var rec extract.Recognizer
		if cfg.Extract.OCR {
			client, err := ocr.New(cfg.Extract.OCRLanguage)
			switch {
			case errors.Is(err, ocr.ErrOCRNotEnabled):
				logger.Warn("OCR requested but not compiled in", zap.Error(err))
			case err != nil:
				return err
			default:
				defer client.Close()
				rec = client
			}
		}

		return extract.Write(cmd.OutOrStdout(), extract.Pages(doc, rec, logger), cfg.Extract.Format)
	},
}

func init() {
	f := extractCmd.Flags()
	f.String("format", "text", "output format: text, yaml or json")
	f.Bool("ocr", false, "OCR pages without a text layer (needs -tags ocr)")
	f.String("ocr-language", "eng", "Tesseract languages, e.g. eng+fra")

	rootCmd.AddCommand(extractCmd)
}

