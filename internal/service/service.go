package service

import (
	"context"

	"github.com/shopspring/decimal"

	"bookhive-api/internal/cache"
	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Listing interface {
	CreateListing(ctx context.Context, input *entity.CreateListingInput) (*entity.ListingOutputModel, error)
	GetListingById(ctx context.Context, listingId string) (*entity.ListingOutputModel, error)
	GetListings(ctx context.Context, pg *entity.PaginationInput) ([]entity.ListingOutputModel, error)
	EditListingById(ctx context.Context, listingId string, input *entity.EditListingInput) (*entity.ListingOutputModel, error)
	DeleteListingById(ctx context.Context, listingId string) error
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error)
	GetBids(ctx context.Context, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetListingBids(ctx context.Context, listingId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	EditBidById(ctx context.Context, bidId string, patch *lifecycle.UpdatePatch) (*entity.BidOutputModel, error)
	DeleteBidById(ctx context.Context, bidId string) error

	PlaceSubBid(ctx context.Context, bidId string, bidder string, amount decimal.Decimal) (*entity.BidOutputModel, error)
	GetHighestSubBid(ctx context.Context, bidId string) (*entity.SubBidOutputModel, error)
}

type Lending interface {
	CreateLending(ctx context.Context, input *entity.CreateLendingInput) (*entity.LendingOutputModel, error)
	GetLendingById(ctx context.Context, lendingId string) (*entity.LendingOutputModel, error)
	GetLendings(ctx context.Context, pg *entity.PaginationInput) ([]entity.LendingOutputModel, error)
	ReturnLendingById(ctx context.Context, lendingId string) (*entity.LendingOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Listing     Listing
	Bid         Bid
	Lending     Lending
}

// NewServices wires services over the repositories. highestBids may be nil,
// in which case the bid service reduces the sub-bid log on every read.
func NewServices(repos *repo.Repositories, highestBids *cache.HighestBidCache) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Listing:     NewListingService(repos),
		Bid:         NewBidService(repos, highestBids),
		Lending:     NewLendingService(repos),
	}
}
