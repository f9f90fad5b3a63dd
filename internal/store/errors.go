package store

import "errors"

// Sentinel errors for store invariant violations. Callers match them
// with errors.Is; the HTTP layer maps them to client-facing statuses.
var (
	// ErrDuplicateRule means a create or update would leave two rules
	// with the same days_before offset.
	ErrDuplicateRule = errors.New("rule with that days_before already exists")

	// ErrRuleNotFound means the referenced rule id does not exist.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrFriendNotFound means the referenced friend id does not exist.
	ErrFriendNotFound = errors.New("friend not found")
)
