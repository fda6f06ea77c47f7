package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/absingh09/mydocuments/internal/common"
	"github.com/google/uuid"
)

// Service implements the owner-scoped document operations. The owner id is
// always the resolved identity of the caller, never client input.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Upload stores a new document for ownerID, stamping it with the current
// month and year.
func (s *Service) Upload(ctx context.Context, ownerID string, doc *Document) (*Document, error) {

	if err := validateUpload(doc); err != nil {
		return nil, err
	}

	doc.OwnerID = ownerID
	doc.UploadedAt = s.now().UTC().Format("January 2006")

	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("error creating document: %w", err)
	}

	return created, nil
}

// List returns the caller's documents newest first, payload omitted.
func (s *Service) List(ctx context.Context, ownerID string) ([]*Document, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return docs, nil
}

// Get returns a single owned document including its payload.
func (s *Service) Get(ctx context.Context, ownerID, docID string) (*Document, error) {
	id, err := parseID(docID)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching document: %w", err)
	}
	return doc, nil
}

// Update applies a partial update to an owned document and returns the
// refreshed record without the payload.
func (s *Service) Update(ctx context.Context, ownerID, docID string, patch *Patch) (*Document, error) {
	id, err := parseID(docID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, common.ErrorNoFields
	}

	doc, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorNoFields) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating document: %w", err)
	}
	return doc, nil
}

// Delete removes an owned document.
func (s *Service) Delete(ctx context.Context, ownerID, docID string) error {
	id, err := parseID(docID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting document: %w", err)
	}
	return nil
}

// parseID validates the store identifier format before any query runs, so
// malformed ids surface as a distinct error instead of a driver failure.
func parseID(docID string) (string, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return "", common.ErrorInvalidID
	}
	return id.String(), nil
}

func validateUpload(doc *Document) error {
	if doc.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if doc.FileType == "" {
		return fmt.Errorf("%w: file_type is required", common.ErrorValidation)
	}
	if doc.Filename == "" {
		return fmt.Errorf("%w: filename is required", common.ErrorValidation)
	}
	if doc.Data == "" {
		return fmt.Errorf("%w: data is required", common.ErrorValidation)
	}
	return nil
}
