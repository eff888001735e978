package identity

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleClient:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a Actor) IsCoach() bool  { return a.Role == RoleCoach }
func (a Actor) IsClient() bool { return a.Role == RoleClient }

// IsStaff reports whether the actor may manage sessions and tasks.
func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleCoach
}
