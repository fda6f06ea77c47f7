package documents

import (
	"context"
)

// Repository persists documents. Every read/update/delete is scoped by the
// owning user id; a row that exists under a different owner is reported as
// not found.
type Repository interface {
	Create(ctx context.Context, doc *Document) (*Document, error)

	// ListByOwner returns the owner's documents newest first, without Data.
	ListByOwner(ctx context.Context, ownerID string) ([]*Document, error)

	// GetByID returns a single owned document including Data.
	GetByID(ctx context.Context, ownerID, id string) (*Document, error)

	// Update applies the non-nil patch fields and returns the refreshed row
	// without Data.
	Update(ctx context.Context, ownerID, id string, patch *Patch) (*Document, error)

	Delete(ctx context.Context, ownerID, id string) error
}
