package entities

// UserRole defines user roles. Identities are issued by the external auth
// provider; the service only reads them from access tokens.
type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	}
	return false
}

// Actor is the authenticated caller of a request
type Actor struct {
	ID   string
	Role UserRole
}

// IsDoctor reports whether the actor has the doctor role
func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
