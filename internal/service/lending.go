package service

import (
	"context"
	"errors"
	"time"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/repo"
	"bookhive-api/internal/repo/repo_errors"
)

type LendingService struct {
	lendingRepo repo.Lending
	listingRepo repo.Listing
	now         func() time.Time
}

func NewLendingService(repos *repo.Repositories) *LendingService {
	return &LendingService{
		lendingRepo: repos.Lending,
		listingRepo: repos.Listing,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *LendingService) CreateLending(ctx context.Context, input *entity.CreateLendingInput) (*entity.LendingOutputModel, error) {
	now := s.now()

	exists, err := s.listingRepo.DoesListingExistById(ctx, input.ListingId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrListingNotFound
	}

	if !input.DueDate.After(now) {
		return nil, ErrInvalidDueDate
	}

	id, err := s.lendingRepo.CreateLending(ctx, input)
	if err != nil {
		return nil, err
	}

	lending, err := s.lendingRepo.GetLendingById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapLending(lending, now), nil
}

func (s *LendingService) GetLendingById(ctx context.Context, lendingId string) (*entity.LendingOutputModel, error) {
	lending, err := s.lendingRepo.GetLendingById(ctx, lendingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLendingNotFound
		}

		return nil, err
	}

	return mapLending(lending, s.now()), nil
}

func (s *LendingService) GetLendings(ctx context.Context, pg *entity.PaginationInput) ([]entity.LendingOutputModel, error) {
	lendings, err := s.lendingRepo.GetLendings(ctx, pg)
	if err != nil {
		return nil, err
	}

	return mapLendings(lendings, s.now()), nil
}

func (s *LendingService) ReturnLendingById(ctx context.Context, lendingId string) (*entity.LendingOutputModel, error) {
	now := s.now()

	lending, err := s.lendingRepo.GetLendingById(ctx, lendingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLendingNotFound
		}

		return nil, err
	}

	if lending.ReturnedAt != nil {
		return nil, ErrAlreadyReturned
	}

	if err := s.lendingRepo.MarkLendingReturned(ctx, lendingId, now); err != nil {
		return nil, err
	}

	lending, err = s.lendingRepo.GetLendingById(ctx, lendingId)
	if err != nil {
		return nil, err
	}

	return mapLending(lending, now), nil
}
