package ports

import "tagplot/domain/series"

// FrameReader loads a numeric-only, index-sorted frame from a file. filetype
// selects the reader strategy and options carries reader-specific settings.
type FrameReader interface {
	Read(path, filetype string, options map[string]interface{}) (*series.Frame, error)
}
