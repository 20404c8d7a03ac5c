package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/travvip/backend/internal/domain/identity"
)

// LoginInput carries the credentials for a login attempt
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserInfo  `json:"user"`
}

// RefreshTokenInput carries a refresh token for rotation
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResult is returned when a refresh token is exchanged
type RefreshTokenResult struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	AccessToken string
}

// UserInfo is the read model for a user exposed over the API
type UserInfo struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	Roles          []string   `json:"roles"`
	IsSuperAdmin   bool       `json:"isSuperAdmin"`
	IsOrgAdmin     bool       `json:"isOrgAdmin"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewUserInfo maps a domain user onto its API read model
func NewUserInfo(user *identity.User) UserInfo {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	return UserInfo{
		ID:             user.ID,
		OrganizationID: user.OrganizationID,
		Email:          user.Email,
		Name:           user.Name,
		Phone:          user.Phone,
		Designation:    user.Designation,
		Roles:          roles,
		IsSuperAdmin:   user.IsSuperAdmin,
		IsOrgAdmin:     user.IsOrgAdmin,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
}

// CreateUserInput carries the fields for creating a team member
type CreateUserInput struct {
	Email       string   `json:"email" binding:"required,email"`
	Name        string   `json:"name" binding:"required"`
	Password    string   `json:"password" binding:"required,min=8"`
	Phone       string   `json:"phone"`
	Designation string   `json:"designation"`
	Roles       []string `json:"roles"`
}

// UpdateUserInput carries the mutable fields of a team member. Nil pointers
// leave the corresponding field unchanged.
type UpdateUserInput struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Designation *string  `json:"designation"`
	Roles       []string `json:"roles"`
	IsActive    *bool    `json:"isActive"`
	Password    *string  `json:"password"`
}

// RegisterOrganizationInput is the public self-service signup payload
type RegisterOrganizationInput struct {
	OrganizationName string `json:"organizationName" binding:"required"`
	AdminName        string `json:"adminName" binding:"required"`
	AdminEmail       string `json:"adminEmail" binding:"required,email"`
	AdminPassword    string `json:"adminPassword" binding:"required,min=8"`
	Phone            string `json:"phone"`
}

// RegisterOrganizationResult is returned after a signup request is accepted
type RegisterOrganizationResult struct {
	OrganizationID uuid.UUID `json:"organizationId"`
	Status         string    `json:"status"`
}

// UpdateOrganizationInput carries the tenant-editable profile fields. Nil
// pointers leave the corresponding field unchanged.
type UpdateOrganizationInput struct {
	Name               *string            `json:"name"`
	Email              *string            `json:"email"`
	Phone              *string            `json:"phone"`
	Website            *string            `json:"website"`
	Address            *string            `json:"address"`
	AboutUs            *string            `json:"aboutUs"`
	GST                *string            `json:"gst"`
	PAN                *string            `json:"pan"`
	TermsAndConditions *string            `json:"termsAndConditions"`
	ConsultantName     *string            `json:"consultantName"`
	Branding           *identity.Branding `json:"branding"`
}

// OrganizationInfo is the read model for an organization
type OrganizationInfo struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone,omitempty"`
	Website            string            `json:"website,omitempty"`
	Address            string            `json:"address,omitempty"`
	AboutUs            string            `json:"aboutUs,omitempty"`
	GST                string            `json:"gst,omitempty"`
	PAN                string            `json:"pan,omitempty"`
	TermsAndConditions string            `json:"termsAndConditions,omitempty"`
	ConsultantName     string            `json:"consultantName,omitempty"`
	Branding           identity.Branding `json:"branding"`
	Status             string            `json:"status"`
	AdminName          string            `json:"adminName"`
	AdminEmail         string            `json:"adminEmail"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// NewOrganizationInfo maps a domain organization onto its API read model
func NewOrganizationInfo(org *identity.Organization) OrganizationInfo {
	return OrganizationInfo{
		ID:                 org.ID,
		Name:               org.Name,
		Email:              org.Email,
		Phone:              org.Phone,
		Website:            org.Website,
		Address:            org.Address,
		AboutUs:            org.AboutUs,
		GST:                org.GST,
		PAN:                org.PAN,
		TermsAndConditions: org.TermsAndConditions,
		ConsultantName:     org.ConsultantName,
		Branding:           org.Branding,
		Status:             string(org.Status),
		AdminName:          org.AdminName,
		AdminEmail:         org.AdminEmail,
		CreatedAt:          org.CreatedAt,
	}
}
