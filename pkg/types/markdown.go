// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HeadingLevel is the structural level a classifier assigns to a line.
type HeadingLevel int

const (
	Body HeadingLevel = iota
	H1
	H2
)

// String returns the level name.
func (l HeadingLevel) String() string {
	switch l {
	case H1:
		return "h1"
	case H2:
		return "h2"
	default:
		return "body"
	}
}

// Marker returns the Markdown prefix for the level ("# ", "## " or "").
func (l HeadingLevel) Marker() string {
	switch l {
	case H1:
		return "# "
	case H2:
		return "## "
	default:
		return ""
	}
}

// ItemKind identifies the kind of a MarkdownDocument line.
type ItemKind string

const (
	ItemHeading   ItemKind = "heading"
	ItemBody      ItemKind = "body"
	ItemImage     ItemKind = "image"
	ItemSeparator ItemKind = "separator"
)

// Item is one line of a MarkdownDocument.
type Item struct {
	Kind ItemKind `json:"kind" yaml:"kind"`

	// Level is set for headings.
	Level HeadingLevel `json:"level,omitempty" yaml:"level,omitempty"`

	// Text is the line content without any Markdown marker.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Image is set for image references.
	Image *ImageRecord `json:"image,omitempty" yaml:"image,omitempty"`
}

// TextItem builds a heading or body item for line at the given level.
func TextItem(line string, level HeadingLevel) Item {
	if level == Body {
		return Item{Kind: ItemBody, Text: line}
	}
	return Item{Kind: ItemHeading, Level: level, Text: line}
}

// ImageItem builds an image reference item.
func ImageItem(rec ImageRecord) Item {
	return Item{Kind: ItemImage, Image: &rec}
}

// SeparatorItem builds a page separator item.
func SeparatorItem() Item {
	return Item{Kind: ItemSeparator}
}

// MarkdownDocument is the ordered line sequence of a conversion. It is built
// incrementally, rendered once and discarded.
type MarkdownDocument []Item
