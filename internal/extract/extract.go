// Package extract splits a loaded PDF into one document per page, each
// with its text content and metadata, and prints them as a banner-framed
// text listing, YAML or JSON.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfconv/internal/logging"
	"github.com/pdiddy/pdfconv/internal/ocr"
	"github.com/pdiddy/pdfconv/pkg/types"
)

const (
	contentStarts  = "----------- CONTENT STARTS --------------"
	contentEnds    = "----------- CONTENT ENDS ----------------"
	metadataStarts = "----------- METADATA STARTS --------------"
	metadataEnds   = "----------- METADATA ENDS ----------------"
)

// PageDocument is the content and metadata of one page.
type PageDocument struct {
	PageContent string       `json:"page_content" yaml:"page_content"`
	Metadata    PageMetadata `json:"metadata" yaml:"metadata"`
}

// PageMetadata describes where a PageDocument came from. Page is 0-based.
type PageMetadata struct {
	Source       string `json:"source" yaml:"source"`
	Page         int    `json:"page" yaml:"page"`
	TotalPages   int    `json:"total_pages" yaml:"total_pages"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	Author       string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject      string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Creator      string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Producer     string `json:"producer,omitempty" yaml:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	ModDate      string `json:"mod_date,omitempty" yaml:"mod_date,omitempty"`
	OCR          bool   `json:"ocr,omitempty" yaml:"ocr,omitempty"`
}

// Field is one metadata key and value, in print order.
type Field struct {
	Key   string
	Value string
}

// Fields returns the metadata in print order, skipping empty optional
// values.
func (m PageMetadata) Fields() []Field {
	fields := []Field{
		{"source", m.Source},
		{"page", strconv.Itoa(m.Page)},
		{"total_pages", strconv.Itoa(m.TotalPages)},
	}
	optional := []Field{
		{"title", m.Title},
		{"author", m.Author},
		{"subject", m.Subject},
		{"keywords", m.Keywords},
		{"creator", m.Creator},
		{"producer", m.Producer},
		{"creation_date", m.CreationDate},
		{"mod_date", m.ModDate},
	}
	for _, f := range optional {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	if m.OCR {
		fields = append(fields, Field{"ocr", "true"})
	}
	return fields
}

// Recognizer turns an encoded image into text.
type Recognizer interface {
	Recognize(data []byte) (string, error)
}

// Pages builds one PageDocument per page of doc. When rec is non-nil, pages
// without text but with images get the recognized text of their images.
// A build without OCR support is reported once and the pages stay empty.
func Pages(doc *types.Document, rec Recognizer, log *zap.Logger) []PageDocument {
	log = logging.OrNop(log)
	total := len(doc.Pages)
	docs := make([]PageDocument, 0, total)
	for _, p := range doc.Pages {
		pd := PageDocument{
			PageContent: p.Text(),
			Metadata: PageMetadata{
				Source:       doc.Source,
				Page:         p.Index,
				TotalPages:   total,
				Title:        doc.Metadata.Title,
				Author:       doc.Metadata.Author,
				Subject:      doc.Metadata.Subject,
				Keywords:     doc.Metadata.Keywords,
				Creator:      doc.Metadata.Creator,
				Producer:     doc.Metadata.Producer,
				CreationDate: doc.Metadata.CreationDate,
				ModDate:      doc.Metadata.ModDate,
			},
		}

		if rec != nil && strings.TrimSpace(pd.PageContent) == "" && len(p.Images) > 0 {
			text, err := recognize(rec, p.Images)
			switch {
			case errors.Is(err, ocr.ErrOCRNotEnabled):
				log.Warn("page has no text layer and OCR is not compiled in", zap.Int("page", p.Index+1))
				rec = nil
			case err != nil:
				log.Warn("OCR failed", zap.Int("page", p.Index+1), zap.Error(err))
			default:
				pd.PageContent = text
				pd.Metadata.OCR = true
			}
		}
		docs = append(docs, pd)
	}
	return docs
}

func recognize(rec Recognizer, imgs []types.RawImage) (string, error) {
	var parts []string
	for _, img := range imgs {
		text, err := rec.Recognize(img.Data)
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Write prints docs to w in the given format.
func Write(w io.Writer, docs []PageDocument, format types.ExtractFormat) error {
	switch format {
	case "", types.FormatText:
		return writeText(w, docs)
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown extract format %q: use text, yaml or json", format)
	}
}

// writeText prints the document count, then each page as a content block
// and a metadata block, every key followed by a "---" rule.
func writeText(w io.Writer, docs []PageDocument) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(docs))
	for _, d := range docs {
		b.WriteString(contentStarts + "\n\n")
		b.WriteString(d.PageContent + "\n")
		b.WriteString("\n" + contentEnds + "\n")
		b.WriteString(metadataStarts + "\n\n")
		b.WriteString("---\n")
		for _, f := range d.Metadata.Fields() {
			fmt.Fprintf(&b, "%s: %s\n---\n", f.Key, f.Value)
		}
		b.WriteString("\n" + metadataEnds + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
