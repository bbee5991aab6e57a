// Package session defines the authenticated identity that callers pass into
// report generation.
//
// The portal never reads a "current user" from ambient state: the HTTP layer
// builds a [Session] from the request and the CLI uses [Local]. Components
// that need the identity take it as an explicit argument.
//
// How the identity was established (sign-in, tokens, role routing) is the
// caller's concern; this package only carries the result.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/railreport/pkg/errors"
)

// Role is a portal user role.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleDepotOfficer Role = "depot_officer"
	RoleInstallation Role = "installation"
	RoleMaintenance  Role = "maintenance"
	RoleEngineer     Role = "engineer"
)

var roleLabels = map[Role]string{
	RoleManufacturer: "Manufacturer",
	RoleDepotOfficer: "Depot Officer",
	RoleInstallation: "Track Installation",
	RoleMaintenance:  "Track Maintenance",
	RoleEngineer:     "Track Engineer",
}

// ParseRole parses a role name case-insensitively. Hyphens and spaces are
// accepted in place of underscores ("depot-officer", "Depot Officer").
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	r := Role(norm)
	if _, ok := roleLabels[r]; !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown role %q", s)
	}
	return r, nil
}

// Label returns the display name of r, or the raw value if unknown.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Session is an authenticated portal identity.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a session for the given identity.
func New(userID, name string, role Role) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "user id is required")
	}
	if _, ok := roleLabels[role]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown role %q", role)
	}
	return &Session{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// Local returns the identity used by the command-line tool, where the
// operator at the terminal is trusted.
func Local() *Session {
	return &Session{
		UserID:    "local",
		Name:      "Local Operator",
		Role:      RoleDepotOfficer,
		CreatedAt: time.Now(),
	}
}

// Require returns an UNAUTHORIZED error if s is nil or has no user id.
func Require(s *Session) error {
	if s == nil || strings.TrimSpace(s.UserID) == "" {
		return errors.New(errors.ErrCodeUnauthorized, "an authenticated session is required")
	}
	return nil
}

// DisplayName is the name printed on generated documents:
// "Name (Role)" or "user-id (Role)" when no name is known.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	who := s.Name
	if who == "" {
		who = s.UserID
	}
	return fmt.Sprintf("%s (%s)", who, s.Role.Label())
}
