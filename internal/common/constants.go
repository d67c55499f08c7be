package common

// Book condition values accepted on listings.
const (
	ConditionNew     = "New"
	ConditionLikeNew = "LikeNew"
	ConditionGood    = "Good"
	ConditionFair    = "Fair"
	ConditionPoor    = "Poor"
)

// Derived lending states. Never persisted, computed from dueDate/returnedAt.
const (
	LendingBorrowed = "Borrowed"
	LendingOverdue  = "Overdue"
	LendingReturned = "Returned"
)

// Listings may not predate this year.
const MinListingYear = 1900
