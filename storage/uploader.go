package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const ContentTypePNG = "image/png"

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// BracketImageKey is the object key for one rendered version of a
// tournament's bracket. Every render gets a fresh key so cached copies of
// older images are never served for a newer plan.
func BracketImageKey(tournamentID int, id uuid.UUID) string {
	return fmt.Sprintf("brackets/%d/%s.png", tournamentID, id)
}
