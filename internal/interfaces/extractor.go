package interfaces

import (
	"context"
	"io"
)

// TextExtractor pulls text out of an uploaded image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image io.Reader) (string, error)
}
