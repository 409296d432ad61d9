package user

// Role is the portal-wide capability level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Seniority is the staff mix classification used by the junior quota.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SenioritySenior Seniority = "senior"
)

// Valid reports whether s is one of the declared seniority levels. Occupants
// with an unknown seniority never count toward the junior quota.
func (s Seniority) Valid() bool {
	return s == SeniorityJunior || s == SenioritySenior
}

// User is the acting or occupying portal user, as supplied by the auth
// collaborator or embedded in a reading.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	Seniority Seniority
}

// IsAdmin is the admin override gate: it decides which admission commands and
// which eligibility exemptions are reachable. Callers must consult the live
// acting user on every evaluation; the result is never cached.
func IsAdmin(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}
