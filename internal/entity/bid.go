package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. Status is intentionally absent: it is derived from
// StartDate/EndDate against the request clock on every read path.
type Bid struct {
	Id        uuid.UUID `json:"id" db:"id"`
	ListingId uuid.UUID `json:"listingId" db:"listing_id"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	Location  string    `json:"location" db:"location"`
	SubBids   []SubBid  `json:"subBids"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Append-only sub-bid log entry.
type SubBid struct {
	Bidder   string          `json:"bidder" db:"bidder"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	PlacedAt time.Time       `json:"placedAt" db:"placed_at"`
}

// service + repo input model
type CreateBidInput struct {
	ListingId string    // given
	StartDate time.Time // given
	EndDate   time.Time // given
	Location  string    // given
	// Id UUID sets automatically
	// CreatedAt / UpdatedAt set automatically
}

// controller model
type BidOutputModel struct {
	Id        string              `json:"id"`
	ListingId string              `json:"listingId"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Location  string              `json:"location"`
	Status    string              `json:"status"`
	SubBids   []SubBidOutputModel `json:"subBids"`
	CreatedAt string              `json:"createdAt"`
	UpdatedAt string              `json:"updatedAt"`
}

type SubBidOutputModel struct {
	Bidder   string `json:"bidder"`
	Amount   string `json:"amount"`
	PlacedAt string `json:"placedAt"`
}
