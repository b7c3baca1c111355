package cache

import (
	"fmt"
	"time"
)

const (
	FriendListKeyPrefix = "user:%d:friends:%s"
)

const (
	// FriendListTTL bounds how long a cached friend list may lag the
	// persisted state. Acceptance does not invalidate the cache; expiry
	// is the only invalidation, so this is the contractual staleness
	// window for friend listings.
	FriendListTTL = 5 * time.Minute
)

// FriendListKey builds the cache key for a user's friend list. The
// signature distinguishes logical queries sharing the namespace
// (callers typically pass the request URL).
func FriendListKey(userID uint, signature string) string {
	return fmt.Sprintf(FriendListKeyPrefix, userID, signature)
}
