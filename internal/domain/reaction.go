package domain

// UserIDSet is a set of user IDs, JSON-serialized as an object so
// membership is structural rather than positional.
type UserIDSet map[string]bool

// ReactionMap maps an emoji to the set of users who picked it.
// A user holds at most one active reaction per post; Set enforces that by
// construction instead of relying on callers to scan and filter.
type ReactionMap map[string]UserIDSet

// Set makes emoji the user's single active reaction. The user is removed
// from every bucket first; an empty emoji just clears the reaction.
// Emptied buckets are dropped so the stored document does not accumulate
// stale keys.
func (m ReactionMap) Set(userID, emoji string) ReactionMap {
	if m == nil {
		m = ReactionMap{}
	}
	for key, users := range m {
		delete(users, userID)
		if len(users) == 0 {
			delete(m, key)
		}
	}
	if emoji != "" {
		if m[emoji] == nil {
			m[emoji] = UserIDSet{}
		}
		m[emoji][userID] = true
	}
	return m
}

// Has reports whether the user currently reacts with the given emoji
func (m ReactionMap) Has(userID, emoji string) bool {
	return m[emoji][userID]
}

// Counts returns the number of users per emoji
func (m ReactionMap) Counts() map[string]int {
	counts := make(map[string]int, len(m))
	for emoji, users := range m {
		counts[emoji] = len(users)
	}
	return counts
}
