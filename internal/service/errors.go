package service

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrLendingNotFound = errors.New("lending record not found")

	ErrInvalidYear     = errors.New("year must be between 1900 and the current year")
	ErrInvalidPrice    = errors.New("price can't be negative")
	ErrInvalidDueDate  = errors.New("due date must be in the future")
	ErrAlreadyReturned = errors.New("lending record is already marked returned")
)
