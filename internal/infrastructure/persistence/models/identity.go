package models

import (
	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/identity"
)

// UserModel is the GORM model for users
type UserModel struct {
	AggregateModel
	OrganizationID *uuid.UUID        `gorm:"type:uuid;index"`
	Email          string            `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name           string            `gorm:"type:varchar(255);not null"`
	Phone          string            `gorm:"type:varchar(50)"`
	Designation    string            `gorm:"type:varchar(100)"`
	PasswordHash   string            `gorm:"type:varchar(255);not null"`
	Roles          identity.RoleList `gorm:"type:jsonb;not null;default:'[]'"`
	IsSuperAdmin   bool              `gorm:"not null;default:false"`
	IsOrgAdmin     bool              `gorm:"not null;default:false"`
	IsActive       bool              `gorm:"not null;default:true"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrganizationID:    m.OrganizationID,
		Email:             m.Email,
		Name:              m.Name,
		Phone:             m.Phone,
		Designation:       m.Designation,
		PasswordHash:      m.PasswordHash,
		Roles:             m.Roles,
		IsSuperAdmin:      m.IsSuperAdmin,
		IsOrgAdmin:        m.IsOrgAdmin,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates UserModel from domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.OrganizationID = u.OrganizationID
	m.Email = u.Email
	m.Name = u.Name
	m.Phone = u.Phone
	m.Designation = u.Designation
	m.PasswordHash = u.PasswordHash
	m.Roles = u.Roles
	m.IsSuperAdmin = u.IsSuperAdmin
	m.IsOrgAdmin = u.IsOrgAdmin
	m.IsActive = u.IsActive
}

// OrganizationModel is the GORM model for tenant organizations
type OrganizationModel struct {
	AggregateModel
	Name               string            `gorm:"type:varchar(255);not null"`
	Email              string            `gorm:"type:varchar(255);not null"`
	Phone              string            `gorm:"type:varchar(50)"`
	Website            string            `gorm:"type:varchar(255)"`
	Address            string            `gorm:"type:text"`
	AboutUs            string            `gorm:"type:text"`
	GST                string            `gorm:"type:varchar(50)"`
	PAN                string            `gorm:"type:varchar(50)"`
	TermsAndConditions string            `gorm:"type:text"`
	ConsultantName     string            `gorm:"type:varchar(255)"`
	Branding           identity.Branding `gorm:"type:jsonb;not null;default:'{}'"`
	Status             string            `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminName          string            `gorm:"type:varchar(255);not null"`
	AdminEmail         string            `gorm:"type:varchar(255);not null"`
	AdminUserID        *uuid.UUID        `gorm:"type:uuid"`
}

// TableName specifies the table name for OrganizationModel
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts OrganizationModel to domain Organization
func (m *OrganizationModel) ToDomain() *identity.Organization {
	return &identity.Organization{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		Website:            m.Website,
		Address:            m.Address,
		AboutUs:            m.AboutUs,
		GST:                m.GST,
		PAN:                m.PAN,
		TermsAndConditions: m.TermsAndConditions,
		ConsultantName:     m.ConsultantName,
		Branding:           m.Branding,
		Status:             identity.OrganizationStatus(m.Status),
		AdminName:          m.AdminName,
		AdminEmail:         m.AdminEmail,
		AdminUserID:        m.AdminUserID,
	}
}

// FromDomain populates OrganizationModel from domain Organization
func (m *OrganizationModel) FromDomain(o *identity.Organization) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Name = o.Name
	m.Email = o.Email
	m.Phone = o.Phone
	m.Website = o.Website
	m.Address = o.Address
	m.AboutUs = o.AboutUs
	m.GST = o.GST
	m.PAN = o.PAN
	m.TermsAndConditions = o.TermsAndConditions
	m.ConsultantName = o.ConsultantName
	m.Branding = o.Branding
	m.Status = string(o.Status)
	m.AdminName = o.AdminName
	m.AdminEmail = o.AdminEmail
	m.AdminUserID = o.AdminUserID
}
