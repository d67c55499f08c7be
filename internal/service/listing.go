package service

import (
	"context"
	"errors"
	"time"

	"bookhive-api/internal/common"
	"bookhive-api/internal/entity"
	"bookhive-api/internal/repo"
	"bookhive-api/internal/repo/repo_errors"
)

type ListingService struct {
	listingRepo repo.Listing
	now         func() time.Time
}

func NewListingService(repos *repo.Repositories) *ListingService {
	return &ListingService{
		listingRepo: repos.Listing,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Year has a dynamic upper bound, so it is checked here rather than with a
// validator tag.
func (s *ListingService) validateYear(year int) error {
	if year < common.MinListingYear || year > s.now().Year() {
		return ErrInvalidYear
	}

	return nil
}

func (s *ListingService) CreateListing(ctx context.Context, input *entity.CreateListingInput) (*entity.ListingOutputModel, error) {
	if err := s.validateYear(input.Year); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	id, err := s.listingRepo.CreateListing(ctx, input)
	if err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetListingById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapListing(listing), nil
}

func (s *ListingService) GetListingById(ctx context.Context, listingId string) (*entity.ListingOutputModel, error) {
	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	return mapListing(listing), nil
}

func (s *ListingService) GetListings(ctx context.Context, pg *entity.PaginationInput) ([]entity.ListingOutputModel, error) {
	listings, err := s.listingRepo.GetListings(ctx, pg)
	if err != nil {
		return nil, err
	}

	return mapListings(listings), nil
}

func (s *ListingService) EditListingById(ctx context.Context, listingId string, input *entity.EditListingInput) (*entity.ListingOutputModel, error) {
	if input.Year != nil {
		if err := s.validateYear(*input.Year); err != nil {
			return nil, err
		}
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	err := s.listingRepo.EditListingById(ctx, listingId, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		return nil, err
	}

	return mapListing(listing), nil
}

func (s *ListingService) DeleteListingById(ctx context.Context, listingId string) error {
	err := s.listingRepo.DeleteListingById(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrListingNotFound
		}

		return err
	}

	return nil
}
