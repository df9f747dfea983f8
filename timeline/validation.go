package timeline

import (
	"errors"

	"github.com/lintelhq/lintel/internal/validation"
)

var (
	// ErrInvalidZoom is returned when an unknown zoom level is provided.
	ErrInvalidZoom = errors.New("invalid zoom level")
)

func invalidZoomError(zoom Zoom) error {
	return validation.FormatInvalidValueError(ErrInvalidZoom, zoom, ValidZooms())
}
