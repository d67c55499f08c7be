package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookhive-api/internal/common"
	"bookhive-api/internal/entity"
)

func newListingServiceForTest() *ListingService {
	return &ListingService{
		listingRepo: &fakeListingRepo{existing: map[string]bool{}},
		now:         func() time.Time { return testNow },
	}
}

func TestCreateListingYearBounds(t *testing.T) {
	s := newListingServiceForTest()

	base := entity.CreateListingInput{
		Name:      "The Go Programming Language",
		Category:  "Programming",
		Author:    "Donovan, Kernighan",
		Price:     decimal.NewFromInt(30),
		Condition: common.ConditionGood,
	}

	tooOld := base
	tooOld.Year = common.MinListingYear - 1
	_, err := s.CreateListing(context.Background(), &tooOld)
	require.ErrorIs(t, err, ErrInvalidYear)

	future := base
	future.Year = testNow.Year() + 1
	_, err = s.CreateListing(context.Background(), &future)
	require.ErrorIs(t, err, ErrInvalidYear)
}

func TestCreateListingNegativePrice(t *testing.T) {
	s := newListingServiceForTest()

	_, err := s.CreateListing(context.Background(), &entity.CreateListingInput{
		Name:      "Some Book",
		Category:  "Fiction",
		Author:    "Anon",
		Price:     decimal.NewFromInt(-1),
		Year:      2020,
		Condition: common.ConditionFair,
	})
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestEditListingValidatesPatchedFieldsOnly(t *testing.T) {
	s := newListingServiceForTest()

	badYear := common.MinListingYear - 5
	_, err := s.EditListingById(context.Background(), "some-id", &entity.EditListingInput{Year: &badYear})
	require.ErrorIs(t, err, ErrInvalidYear)

	badPrice := decimal.NewFromInt(-10)
	_, err = s.EditListingById(context.Background(), "some-id", &entity.EditListingInput{Price: &badPrice})
	require.ErrorIs(t, err, ErrInvalidPrice)
}
