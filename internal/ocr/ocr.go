//go:build ocr

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text in page images with Tesseract through
// gosseract. Tesseract and its language data must be installed.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps one Tesseract instance. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New returns a client for the given languages, e.g. "eng" or "eng+fra".
// An empty lang means English.
func New(lang string) (*Client, error) {
	c := gosseract.NewClient()
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := c.SetLanguage(strings.Split(lang, "+")...); err != nil {
		c.Close()
		return nil, fmt.Errorf("setting OCR language %q: %w", lang, err)
	}
	return &Client{client: c}, nil
}

// Close releases the Tesseract instance. It is safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Recognize returns the trimmed text found in an encoded image.
func (c *Client) Recognize(data []byte) (string, error) {
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("loading image for OCR: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
