package documents

import "time"

// Document is a stored personal document. OwnerID is set once at creation
// from the authenticated identity and never changes. Data holds the
// already-encoded payload verbatim; UploadedAt is a human-readable
// month/year stamp assigned at creation.
type Document struct {
	ID         string
	OwnerID    string
	Name       string
	Issuer     string
	Date       string
	FileType   string
	Filename   string
	Data       string
	UploadedAt string
	CreatedAt  time.Time
}

// Patch carries the mutable document fields of a partial update. Nil fields
// are left untouched.
type Patch struct {
	Name   *string
	Issuer *string
	Date   *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Issuer == nil && p.Date == nil)
}
