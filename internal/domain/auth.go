package domain

// Principal is the authenticated caller resolved from a verified token.
type Principal struct {
	Role Role
	ID   string
}
