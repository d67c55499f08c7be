package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"bookhive-api/internal/cache"
	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/repo"
	"bookhive-api/internal/repo/repo_errors"
)

type BidService struct {
	bidRepo     repo.Bid
	listingRepo repo.Listing
	highestBids *cache.HighestBidCache
	now         func() time.Time
}

func NewBidService(repos *repo.Repositories, highestBids *cache.HighestBidCache) *BidService {
	return &BidService{
		bidRepo:     repos.Bid,
		listingRepo: repos.Listing,
		highestBids: highestBids,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	now := s.now()

	exists, err := s.listingRepo.DoesListingExistById(ctx, input.ListingId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrListingNotFound
	}

	if err := lifecycle.ValidateCreate(input.StartDate, input.EndDate, input.Location, now); err != nil {
		return nil, err
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBid(bid, now), nil
}

func (s *BidService) GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return mapBid(bid, s.now()), nil
}

func (s *BidService) GetBids(ctx context.Context, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetBids(ctx, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids, s.now()), nil
}

// Pass-through read, no lifecycle logic. Unknown listings yield an empty
// list rather than 404.
func (s *BidService) GetListingBids(ctx context.Context, listingId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetListingBids(ctx, listingId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids, s.now()), nil
}

// EditBidById runs the full validation pipeline against a freshly read row
// and one clock reading, then applies the resolved field set in one write.
func (s *BidService) EditBidById(ctx context.Context, bidId string, patch *lifecycle.UpdatePatch) (*entity.BidOutputModel, error) {
	now := s.now()

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	data, err := lifecycle.ValidateUpdate(bid, patch, now)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.UpdateBidById(ctx, bidId, data); err != nil {
		return nil, err
	}

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return mapBid(bid, now), nil
}

func (s *BidService) DeleteBidById(ctx context.Context, bidId string) error {
	now := s.now()

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBidNotFound
		}

		return err
	}

	if err := lifecycle.ValidateDelete(bid, now); err != nil {
		return err
	}

	if err := s.bidRepo.DeleteBidById(ctx, bidId); err != nil {
		return err
	}

	if s.highestBids != nil {
		s.highestBids.Invalidate(ctx, bidId)
	}

	return nil
}

func (s *BidService) PlaceSubBid(ctx context.Context, bidId string, bidder string, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	now := s.now()

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	subBid, err := lifecycle.PlaceSubBid(bid, bidder, amount, now)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.AppendSubBid(ctx, bidId, subBid); err != nil {
		return nil, err
	}

	if s.highestBids != nil {
		s.highestBids.Record(ctx, bidId, subBid)
	}

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return mapBid(bid, now), nil
}

// GetHighestSubBid returns nil when the log is empty. The cached entry, when
// present, equals the database reduction; a miss recomputes and repopulates.
func (s *BidService) GetHighestSubBid(ctx context.Context, bidId string) (*entity.SubBidOutputModel, error) {
	if s.highestBids != nil {
		if cached, ok := s.highestBids.Get(ctx, bidId); ok {
			return mapSubBid(cached), nil
		}
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	highest := lifecycle.HighestSubBid(bid.SubBids)
	if highest == nil {
		return nil, nil
	}

	if s.highestBids != nil {
		s.highestBids.Set(ctx, bidId, highest)
	}

	return mapSubBid(highest), nil
}
