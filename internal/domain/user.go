package domain

// Role distinguishes what an authenticated caller may do.
// Tokens carrying these roles are issued by the account service; this service only reads them.
type Role string

const (
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleCoach || r == RoleAdmin
}

// CanReview reports whether the role may approve or reject discovery candidates.
func (r Role) CanReview() bool {
	return r == RoleCoach || r == RoleAdmin
}

// CanRunDiscovery reports whether the role may start or cancel discovery sessions.
func (r Role) CanRunDiscovery() bool {
	return r == RoleAdmin
}
