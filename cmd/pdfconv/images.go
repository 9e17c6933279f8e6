package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfconv/internal/convert"
)

var imagesCmd = &cobra.Command{
	Use:   "images FILE",
	Short: "Extract the embedded images of a PDF file",
	Long: `Images writes every embedded raster image that decodes to
<name>_images/image_p<page>_<index>.<ext>. Images that do not decode are
logged and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := convert.Resolve(args[0], cfg.OutputDir)
		if err != nil {
			return err
		}
		_, err = convert.ExtractImages(cmd.Context(), newLoader(cfg, true), paths, cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}
