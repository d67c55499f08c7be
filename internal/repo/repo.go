package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/repo/pgdb"
	"bookhive-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

type Listing interface {
	CreateListing(ctx context.Context, input *entity.CreateListingInput) (uuid.UUID, error)
	GetListingById(ctx context.Context, id string) (*entity.Listing, error)
	GetListings(ctx context.Context, pg *entity.PaginationInput) ([]entity.Listing, error)
	EditListingById(ctx context.Context, id string, input *entity.EditListingInput) error
	DeleteListingById(ctx context.Context, id string) error
	DoesListingExistById(ctx context.Context, id string) (bool, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetBids(ctx context.Context, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetListingBids(ctx context.Context, listingId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	UpdateBidById(ctx context.Context, id string, data *lifecycle.UpdateData) error
	DeleteBidById(ctx context.Context, id string) error
	AppendSubBid(ctx context.Context, bidId string, subBid *entity.SubBid) error
	GetSubBids(ctx context.Context, bidId string) ([]entity.SubBid, error)
}

type Lending interface {
	CreateLending(ctx context.Context, input *entity.CreateLendingInput) (uuid.UUID, error)
	GetLendingById(ctx context.Context, id string) (*entity.Lending, error)
	GetLendings(ctx context.Context, pg *entity.PaginationInput) ([]entity.Lending, error)
	MarkLendingReturned(ctx context.Context, id string, returnedAt time.Time) error
}

type Repositories struct {
	Diagnostics
	Listing
	Bid
	Lending
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Listing:     pgdb.NewListingRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Lending:     pgdb.NewLendingRepo(p),
	}
}
