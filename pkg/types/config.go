// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects console or json output.
	Format LogFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// MarkdownMode selects the Markdown pipeline.
type MarkdownMode string

const (
	// ModeLayout reconstructs layout: blocks, headings by case, images
	// interleaved by vertical position.
	ModeLayout MarkdownMode = "layout"

	// ModePlain emits the text stream with keyword headings and no images.
	ModePlain MarkdownMode = "plain"
)

// MarkdownBackend selects who produces the Markdown.
type MarkdownBackend string

const (
	BackendNative     MarkdownBackend = "native"
	BackendMarkitdown MarkdownBackend = "markitdown"
)

// MarkdownConfig holds settings for the markdown operation.
type MarkdownConfig struct {
	Mode    MarkdownMode    `json:"mode" yaml:"mode" mapstructure:"mode"`
	Backend MarkdownBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Classifier is "case" or "keyword". Empty picks the mode's default.
	Classifier string `json:"classifier" yaml:"classifier" mapstructure:"classifier"`

	// LineHeight is the cursor step of the interleaver, in points.
	LineHeight float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`

	// Frontmatter prepends a YAML frontmatter block.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`
}

// ContainerConfig holds settings for the markitdown backend.
type ContainerConfig struct {
	// Runtime is "auto", "docker" or "podman".
	Runtime string `json:"runtime" yaml:"runtime" mapstructure:"runtime"`

	// MarkitdownImage is the image that reads a PDF on stdin and writes
	// Markdown on stdout.
	MarkitdownImage string `json:"markitdown_image" yaml:"markitdown_image" mapstructure:"markitdown_image"`
}

// ImagesConfig holds settings for image extraction.
type ImagesConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// UnidocConfig holds the unipdf licensing settings.
type UnidocConfig struct {
	LicenseKey string `json:"license_key,omitempty" yaml:"license_key,omitempty" mapstructure:"license_key"`
}

// ExtractFormat selects how extract prints page documents.
type ExtractFormat string

const (
	FormatText ExtractFormat = "text"
	FormatYAML ExtractFormat = "yaml"
	FormatJSON ExtractFormat = "json"
)

// ExtractConfig holds settings for the extract operation.
type ExtractConfig struct {
	Format ExtractFormat `json:"format" yaml:"format" mapstructure:"format"`

	// OCR runs Tesseract on the images of pages without a text layer.
	OCR bool `json:"ocr" yaml:"ocr" mapstructure:"ocr"`

	// OCRLanguage is a Tesseract language list such as "eng+fra".
	OCRLanguage string `json:"ocr_language" yaml:"ocr_language" mapstructure:"ocr_language"`
}

// Config groups all settings.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Markdown  MarkdownConfig  `json:"markdown" yaml:"markdown" mapstructure:"markdown"`
	Images    ImagesConfig    `json:"images" yaml:"images" mapstructure:"images"`
	Unidoc    UnidocConfig    `json:"unidoc" yaml:"unidoc" mapstructure:"unidoc"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract" mapstructure:"extract"`
	Container ContainerConfig `json:"container" yaml:"container" mapstructure:"container"`

	// OutputDir is where outputs are written. Empty means next to the input.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}
