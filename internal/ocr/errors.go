// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import "errors"

// ErrOCRNotEnabled is returned by builds without the ocr tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"
