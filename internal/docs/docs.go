// Package docs defines the document-emission port: generated receipts
// are handed off as named downloadable artifacts.
package docs

import (
	"context"
	"time"
)

type Document struct {
	ID        string
	Filename  string
	MimeType  string
	Content   string
	CreatedAt time.Time
}

// Sink persists an emitted document. Saving is fire-and-forget from the
// core's perspective; a failed save is logged by the caller, never
// surfaced as a recoverable core error.
type Sink interface {
	Save(ctx context.Context, doc Document) error
}

// Store is a Sink whose documents can be fetched back by id, e.g. for
// the receipt download endpoint.
type Store interface {
	Sink
	Get(ctx context.Context, id string) (Document, error)
}
