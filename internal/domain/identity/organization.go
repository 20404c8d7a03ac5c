package identity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// OrganizationStatus represents the approval state of a tenant organization
type OrganizationStatus string

const (
	OrganizationStatusPending   OrganizationStatus = "pending"
	OrganizationStatusApproved  OrganizationStatus = "approved"
	OrganizationStatusRejected  OrganizationStatus = "rejected"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// Branding holds the visual identity applied to generated documents
type Branding struct {
	Logo         string `json:"logo"`
	HeaderImage  string `json:"headerImage"`
	FooterImage  string `json:"footerImage"`
	PrimaryColor string `json:"primaryColor"`
	PDFTabColor  string `json:"pdfTabColor"`
	PDFFontColor string `json:"pdfFontColor"`
}

// Value implements driver.Valuer for JSONB storage
func (b Branding) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB reads
func (b *Branding) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Branding: unsupported type")
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, b)
}

// DefaultBranding returns the colors used before a tenant customizes theirs
func DefaultBranding() Branding {
	return Branding{
		PrimaryColor: "#2563eb",
		PDFTabColor:  "#2563eb",
		PDFFontColor: "#ffffff",
	}
}

// Organization is the tenant boundary. Every catalog row, query and quote
// belongs to exactly one organization.
type Organization struct {
	shared.BaseAggregateRoot
	Name               string
	Email              string
	Phone              string
	Website            string
	Address            string
	AboutUs            string
	GST                string
	PAN                string
	TermsAndConditions string
	ConsultantName     string
	Branding           Branding
	Status             OrganizationStatus
	AdminName          string
	AdminEmail         string
	AdminUserID        *uuid.UUID
}

// NewOrganization creates a pending organization from the registration flow
func NewOrganization(name, adminName, adminEmail string) (*Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if strings.TrimSpace(adminName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Admin name cannot be empty")
	}
	if err := validateEmail(adminEmail); err != nil {
		return nil, err
	}

	return &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(adminEmail)),
		AdminName:         strings.TrimSpace(adminName),
		AdminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		Branding:          DefaultBranding(),
		Status:            OrganizationStatusPending,
	}, nil
}

// Approve transitions the organization to approved. Pending, rejected and
// suspended organizations may all be (re-)approved.
func (o *Organization) Approve() error {
	if o.Status == OrganizationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Organization is already approved")
	}
	o.Status = OrganizationStatusApproved
	return nil
}

// Reject transitions a pending organization to rejected
func (o *Organization) Reject() error {
	if o.Status != OrganizationStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending organizations can be rejected")
	}
	o.Status = OrganizationStatusRejected
	return nil
}

// Suspend transitions an approved organization to suspended
func (o *Organization) Suspend() error {
	if o.Status != OrganizationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved organizations can be suspended")
	}
	o.Status = OrganizationStatusSuspended
	return nil
}

// IsApproved reports whether members of the organization may log in
func (o *Organization) IsApproved() bool {
	return o.Status == OrganizationStatusApproved
}
