package identity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a functional role assigned to a user. A user may hold
// several roles at once; each role unlocks a section of the application.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFinance    Role = "finance"
	RoleManager    Role = "manager"
	RoleSales      Role = "sales"
	RoleOperations Role = "operations"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidRoles lists every assignable role
var ValidRoles = []Role{RoleAdmin, RoleFinance, RoleManager, RoleSales, RoleOperations}

// IsValid reports whether the role is one of the assignable roles
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// RoleList is a slice of Role that implements GORM Scanner/Valuer for JSONB storage
type RoleList []Role

// Value implements driver.Valuer for JSONB storage
func (l RoleList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB reads
func (l *RoleList) Scan(value interface{}) error {
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
		return errors.New("failed to scan RoleList: unsupported type")
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// User represents a member of an organization. OrganizationID is nil only for
// the global super admin account.
type User struct {
	shared.BaseAggregateRoot
	OrganizationID *uuid.UUID
	Email          string
	Name           string
	Phone          string
	Designation    string
	PasswordHash   string
	Roles          RoleList
	IsSuperAdmin   bool
	IsOrgAdmin     bool
	IsActive       bool
}

// NewUser creates a new active user with required fields
func NewUser(orgID *uuid.UUID, email, name, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrganizationID:    orgID,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Name:              strings.TrimSpace(name),
		PasswordHash:      hash,
		Roles:             RoleList{RoleSales},
		IsActive:          true,
	}, nil
}

// SetRoles replaces the user's role set; invalid roles are rejected
func (u *User) SetRoles(roles []Role) error {
	if len(roles) == 0 {
		return shared.NewDomainError("INVALID_ROLES", "At least one role is required")
	}
	seen := make(map[Role]bool, len(roles))
	cleaned := make(RoleList, 0, len(roles))
	for _, r := range roles {
		if !r.IsValid() {
			return shared.NewDomainError("INVALID_ROLES", "Unknown role: "+string(r))
		}
		if !seen[r] {
			seen[r] = true
			cleaned = append(cleaned, r)
		}
	}
	u.Roles = cleaned
	return nil
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate marks the user as able to log in
func (u *User) Activate() {
	u.IsActive = true
}

// Deactivate blocks the user from logging in without deleting the record
func (u *User) Deactivate() {
	u.IsActive = false
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
