package models

// Group represents a fixed list of people sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the ordered list of member names. Order is significant: it breaks
	// ties when settlements are computed.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
