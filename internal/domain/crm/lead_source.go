package crm

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// LeadSourceType identifies the kind of external integration
type LeadSourceType string

const (
	LeadSourceWordPress LeadSourceType = "wordpress"
	LeadSourceHTML      LeadSourceType = "html"
	LeadSourceGoogle    LeadSourceType = "google"
	LeadSourceMeta      LeadSourceType = "meta"
	LeadSourceCustom    LeadSourceType = "custom"
)

const (
	tokenPrefix  = "tvp_"
	tokenLength  = 32
	tokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// LeadSource is a webhook integration that posts new queries into an
// organization. Its bearer token authenticates inbound lead submissions.
type LeadSource struct {
	shared.OrgAggregateRoot
	Name          string
	Type          LeadSourceType
	Token         string
	Website       string
	IsActive      bool
	LeadsCaptured int64
}

// NewLeadSource creates an active source with a freshly generated token
func NewLeadSource(orgID uuid.UUID, name string, sourceType LeadSourceType) (*LeadSource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Lead source name cannot be empty")
	}
	if !isValidLeadSourceType(sourceType) {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Unknown lead source type: "+string(sourceType))
	}
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	return &LeadSource{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
		Type:             sourceType,
		Token:            token,
		IsActive:         true,
	}, nil
}

func isValidLeadSourceType(t LeadSourceType) bool {
	switch t {
	case LeadSourceWordPress, LeadSourceHTML, LeadSourceGoogle, LeadSourceMeta, LeadSourceCustom:
		return true
	}
	return false
}

// GenerateToken returns a webhook bearer token of the form tvp_ followed by
// 32 random alphanumerics.
func GenerateToken() (string, error) {
	var b strings.Builder
	b.WriteString(tokenPrefix)
	max := big.NewInt(int64(len(tokenCharset)))
	for i := 0; i < tokenLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", shared.NewDomainError("TOKEN_GENERATION_FAILED", "Could not generate source token")
		}
		b.WriteByte(tokenCharset[n.Int64()])
	}
	return b.String(), nil
}

// RegenerateToken replaces the token, invalidating the previous one
func (s *LeadSource) RegenerateToken() error {
	token, err := GenerateToken()
	if err != nil {
		return err
	}
	s.Token = token
	s.UpdatedAt = time.Now()
	return nil
}

// RecordLead increments the captured-lead counter
func (s *LeadSource) RecordLead() {
	s.LeadsCaptured++
	s.UpdatedAt = time.Now()
}

// Activate enables inbound submissions
func (s *LeadSource) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// Deactivate disables inbound submissions without deleting captured leads
func (s *LeadSource) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
