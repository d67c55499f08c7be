package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Listing struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Category    string          `json:"category" db:"category"`
	Author      string          `json:"author" db:"author"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Year        int             `json:"year" db:"year"`
	Condition   string          `json:"condition" db:"condition"`
	Description string          `json:"description" db:"description"`
	Photos      []string        `json:"photos" db:"photos"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateListingInput struct {
	Name        string          // given
	Category    string          // given
	Author      string          // given
	Price       decimal.Decimal // given
	Year        int             // given
	Condition   string          // given
	Description string          // given
	Photos      []string        // given, external URLs
	// Id UUID sets automatically
	// CreatedAt / UpdatedAt set automatically
}

// service + repo input model for edits; empty fields keep previous values
type EditListingInput struct {
	Name        string
	Category    string
	Author      string
	Price       *decimal.Decimal
	Year        *int
	Condition   string
	Description string
	Photos      []string
}

// controller model
type ListingOutputModel struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Author      string   `json:"author"`
	Price       string   `json:"price"`
	Year        int      `json:"year"`
	Condition   string   `json:"condition"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}
