// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfconv/internal/classify"
	"github.com/pdiddy/pdfconv/internal/container"
	"github.com/pdiddy/pdfconv/internal/convert"
	"github.com/pdiddy/pdfconv/internal/interleave"
	"github.com/pdiddy/pdfconv/internal/loader"
	"github.com/pdiddy/pdfconv/pkg/types"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(types.LogConsole))
	v.SetDefault("markdown.mode", string(types.ModeLayout))
	v.SetDefault("markdown.backend", string(types.BackendNative))
	v.SetDefault("markdown.classifier", "")
	v.SetDefault("markdown.line_height", interleave.DefaultLineHeight)
	v.SetDefault("markdown.frontmatter", false)
	v.SetDefault("images.enabled", true)
	v.SetDefault("unidoc.license_key", "")
	v.SetDefault("extract.format", string(types.FormatText))
	v.SetDefault("extract.ocr", false)
	v.SetDefault("extract.ocr_language", "eng")
	v.SetDefault("container.runtime", container.Auto)
	v.SetDefault("container.markitdown_image", convert.DefaultMarkitdownImage)
	v.SetDefault("output_dir", "")
}

// loadConfig returns the typed view of the merged flags, environment,
// config file and defaults.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: types.LogFormat(viper.GetString("log.format")),
	}
}

// bindFlags binds a command's local flags to configuration keys. Several
// commands share keys, so binding happens when the command runs rather
// than in init.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// applyNoImages turns images off when --no-images is given.
func applyNoImages(cmd *cobra.Command) {
	if off, _ := cmd.Flags().GetBool("no-images"); off {
		viper.Set("images.enabled", false)
	}
}

func newLoader(cfg types.Config, withImages bool) loader.Loader {
	return loader.New(loader.Options{
		Images:     withImages,
		LicenseKey: cfg.Unidoc.LicenseKey,
		Logger:     logger,
	})
}

// classifierFor resolves the configured classifier, or the mode's default:
// case for layout, keyword for plain.
func classifierFor(cfg types.MarkdownConfig) (classify.Classifier, error) {
	name := cfg.Classifier
	if name == "" {
		name = "case"
		if cfg.Mode == types.ModePlain {
			name = "keyword"
		}
	}
	return classify.ByName(name)
}
