package models

import "time"

// ============================================================================
// CATEGORY CONSTANTS
// ============================================================================

// UncategorizedID is the reserved category id meaning "uncategorized" or
// "soft-deleted". No stored category ever carries it.
const UncategorizedID = 0

// ============================================================================
// SNAPSHOT CONSTANTS
// ============================================================================

// SnapshotVersion is the document version written by this build
const SnapshotVersion = 1

// Now returns the current time in UTC without a monotonic reading, so values
// compare equal after a round trip through storage.
func Now() time.Time {
	return time.Now().UTC().Round(0)
}
