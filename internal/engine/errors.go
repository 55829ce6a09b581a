package engine

import "errors"

var (
	// ErrImagePDF means the reconstructed text was too short to be a real
	// statement; the document is a scanned image and needs OCR we do not do.
	ErrImagePDF = errors.New("document appears to be a scanned image: no extractable text")

	// ErrDuplicateFile means the document's content hash is already in the
	// registry; it was processed before and extraction is skipped.
	ErrDuplicateFile = errors.New("document has already been processed")
)
