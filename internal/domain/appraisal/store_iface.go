package appraisal

import "context"

// RecordStore holds the full employee record set in a single
// persistent slot. Replace swaps the whole set atomically; there are
// no partial writes.
type RecordStore interface {
	Load(ctx context.Context) ([]Employee, error)
	Replace(ctx context.Context, employees []Employee) error
}
