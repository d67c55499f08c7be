package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model. State (Borrowed/Overdue/Returned) is derived from
// DueDate/ReturnedAt on read, same rule as bid status.
type Lending struct {
	Id         uuid.UUID  `json:"id" db:"id"`
	ListingId  uuid.UUID  `json:"listingId" db:"listing_id"`
	Lender     string     `json:"lender" db:"lender"`
	Borrower   string     `json:"borrower" db:"borrower"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnedAt *time.Time `json:"returnedAt" db:"returned_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateLendingInput struct {
	ListingId string    // given
	Lender    string    // given
	Borrower  string    // given
	DueDate   time.Time // given
}

// controller model
type LendingOutputModel struct {
	Id         string `json:"id"`
	ListingId  string `json:"listingId"`
	Lender     string `json:"lender"`
	Borrower   string `json:"borrower"`
	DueDate    string `json:"dueDate"`
	ReturnedAt string `json:"returnedAt,omitempty"`
	State      string `json:"state"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}
