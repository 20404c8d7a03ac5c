package quote

import (
	"context"

	"github.com/google/uuid"
)

// SaveOutcome describes what a versioned save did
type SaveOutcome string

const (
	SaveCreated     SaveOutcome = "created"
	SaveOverwritten SaveOutcome = "overwritten"
)

// ItineraryRepository defines the interface for itinerary persistence.
// SaveVersioned and ConfirmVersion carry the multi-row invariants, so both
// run inside a single transaction serialized per query.
type ItineraryRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Itinerary, error)

	// FindByQueryForOrg returns every retained version for a query,
	// newest first.
	FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) ([]Itinerary, error)

	// FindLatestForQuery returns the most recently created version, or
	// shared.ErrNotFound when the query has no quote yet.
	FindLatestForQuery(ctx context.Context, orgID, queryID uuid.UUID) (*Itinerary, error)

	// SaveVersioned applies the versioning algorithm: first save inserts
	// sequence 01; a price change beyond the epsilon inserts the next
	// sequence and prunes history beyond MaxVersionsPerQuery; an unchanged
	// price overwrites the latest row. queryNumber seeds the quote number.
	SaveVersioned(ctx context.Context, itinerary *Itinerary, queryNumber string) (SaveOutcome, error)

	// ConfirmVersion demotes all sibling versions to draft and promotes the
	// target, atomically with respect to concurrent confirms on the same
	// query. Returns shared.ErrNotFound when the target does not exist in
	// the organization.
	ConfirmVersion(ctx context.Context, orgID, queryID, itineraryID uuid.UUID) (*Itinerary, error)

	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	DeleteByQuery(ctx context.Context, queryID uuid.UUID) error
	CountByQuery(ctx context.Context, queryID uuid.UUID) (int64, error)
}
