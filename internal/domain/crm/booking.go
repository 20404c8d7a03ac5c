package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// BookingItemKind identifies what a checklist item books
type BookingItemKind string

const (
	BookingItemHotel     BookingItemKind = "hotel"
	BookingItemTransport BookingItemKind = "transport"
)

// BookingItem is one line of the operations checklist for a confirmed trip
type BookingItem struct {
	Kind     BookingItemKind `json:"kind"`
	RefID    uuid.UUID       `json:"refId"`
	Label    string          `json:"label"`
	Booked   bool            `json:"booked"`
	BookedAt *time.Time      `json:"bookedAt,omitempty"`
	BookedBy string          `json:"bookedBy,omitempty"`
}

// BookingChecklist tracks per-query fulfilment progress. One checklist per
// query, shared across the operations team.
type BookingChecklist struct {
	shared.OrgAggregateRoot
	QueryID uuid.UUID
	Items   BookingItems
}

// NewBookingChecklist creates an empty checklist for a query
func NewBookingChecklist(orgID, queryID uuid.UUID) *BookingChecklist {
	return &BookingChecklist{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		QueryID:          queryID,
	}
}

// SetItem marks a checklist line booked or unbooked, inserting the line if it
// is not present yet.
func (c *BookingChecklist) SetItem(kind BookingItemKind, refID uuid.UUID, label string, booked bool, actor string) {
	now := time.Now()
	for i := range c.Items {
		if c.Items[i].Kind == kind && c.Items[i].RefID == refID {
			c.Items[i].Booked = booked
			c.Items[i].Label = label
			if booked {
				c.Items[i].BookedAt = &now
				c.Items[i].BookedBy = actor
			} else {
				c.Items[i].BookedAt = nil
				c.Items[i].BookedBy = ""
			}
			c.UpdatedAt = now
			return
		}
	}
	item := BookingItem{Kind: kind, RefID: refID, Label: label, Booked: booked}
	if booked {
		item.BookedAt = &now
		item.BookedBy = actor
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
}

// Progress returns booked and total line counts
func (c *BookingChecklist) Progress() (booked, total int) {
	for _, item := range c.Items {
		if item.Booked {
			booked++
		}
	}
	return booked, len(c.Items)
}

// BookingChecklistRepository defines the interface for checklist persistence
type BookingChecklistRepository interface {
	FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) (*BookingChecklist, error)
	Save(ctx context.Context, checklist *BookingChecklist) error
	DeleteByQuery(ctx context.Context, queryID uuid.UUID) error
}
