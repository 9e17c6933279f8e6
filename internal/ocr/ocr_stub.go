//go:build !ocr

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognizes text in page images. This build has no OCR
// engine; rebuild with -tags ocr (and Tesseract installed) to enable it.
package ocr

// Client is the OCR client of a build without OCR support.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op; it is safe on a nil client.
func (c *Client) Close() error { return nil }

// Recognize returns ErrOCRNotEnabled.
func (c *Client) Recognize([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}
