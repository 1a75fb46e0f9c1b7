package store

// Key derivation for the logical entities the service persists.
// Year and month are kept in their literal string form; writers and
// readers must pass the same representation or lookups will miss.

const (
	// KeyConcerts holds the ordered concert list.
	KeyConcerts = "concerts"
	// KeyLinks holds the ordered link list.
	KeyLinks = "links"

	currentUserPrefix  = "current_user_"
	availabilityPrefix = "availability_"
)

// CurrentUserKey returns the key for a user's "current user" pointer.
func CurrentUserKey(userID string) string {
	return currentUserPrefix + userID
}

// AvailabilityKey returns the key for one member's month of availability.
// The member name must already be percent-decoded; a raw and a decoded
// name produce different keys.
func AvailabilityKey(member, year, month string) string {
	return availabilityPrefix + member + "_" + year + "_" + month
}
