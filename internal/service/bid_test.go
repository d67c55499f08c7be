package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/repo"
	"bookhive-api/internal/repo/repo_errors"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeBidRepo struct {
	bids map[string]*entity.Bid

	createdInput *entity.CreateBidInput
	createdId    uuid.UUID

	updatedId   string
	updatedData *lifecycle.UpdateData

	deletedId string

	appendedId  string
	appendedSub *entity.SubBid
}

var _ repo.Bid = (*fakeBidRepo)(nil)

func newFakeBidRepo(bids ...*entity.Bid) *fakeBidRepo {
	f := &fakeBidRepo{bids: make(map[string]*entity.Bid), createdId: uuid.New()}
	for _, b := range bids {
		f.bids[b.Id.String()] = b
	}
	return f
}

func (f *fakeBidRepo) CreateBid(_ context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	f.createdInput = input
	listingId, _ := uuid.Parse(input.ListingId)
	f.bids[f.createdId.String()] = &entity.Bid{
		Id:        f.createdId,
		ListingId: listingId,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Location:  input.Location,
		SubBids:   []entity.SubBid{},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	return f.createdId, nil
}

func (f *fakeBidRepo) GetBidById(_ context.Context, id string) (*entity.Bid, error) {
	b, ok := f.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	cp := *b
	cp.SubBids = append([]entity.SubBid(nil), b.SubBids...)
	return &cp, nil
}

func (f *fakeBidRepo) GetBids(_ context.Context, _ *entity.PaginationInput) ([]entity.Bid, error) {
	out := make([]entity.Bid, 0, len(f.bids))
	for _, b := range f.bids {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBidRepo) GetListingBids(_ context.Context, listingId string, _ *entity.PaginationInput) ([]entity.Bid, error) {
	out := make([]entity.Bid, 0)
	for _, b := range f.bids {
		if b.ListingId.String() == listingId {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBidRepo) UpdateBidById(_ context.Context, id string, data *lifecycle.UpdateData) error {
	f.updatedId, f.updatedData = id, data
	b, ok := f.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	b.Location, b.StartDate, b.EndDate, b.UpdatedAt = data.Location, data.StartDate, data.EndDate, data.UpdatedAt
	return nil
}

func (f *fakeBidRepo) DeleteBidById(_ context.Context, id string) error {
	f.deletedId = id
	if _, ok := f.bids[id]; !ok {
		return repo_errors.ErrNotFound
	}
	delete(f.bids, id)
	return nil
}

func (f *fakeBidRepo) AppendSubBid(_ context.Context, bidId string, subBid *entity.SubBid) error {
	f.appendedId, f.appendedSub = bidId, subBid
	b, ok := f.bids[bidId]
	if !ok {
		return repo_errors.ErrNotFound
	}
	b.SubBids = append(b.SubBids, *subBid)
	return nil
}

func (f *fakeBidRepo) GetSubBids(_ context.Context, bidId string) ([]entity.SubBid, error) {
	b, ok := f.bids[bidId]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	return append([]entity.SubBid(nil), b.SubBids...), nil
}

type fakeListingRepo struct {
	existing map[string]bool
}

var _ repo.Listing = (*fakeListingRepo)(nil)

func (f *fakeListingRepo) CreateListing(_ context.Context, _ *entity.CreateListingInput) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (f *fakeListingRepo) GetListingById(_ context.Context, _ string) (*entity.Listing, error) {
	return nil, repo_errors.ErrNotFound
}
func (f *fakeListingRepo) GetListings(_ context.Context, _ *entity.PaginationInput) ([]entity.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) EditListingById(_ context.Context, _ string, _ *entity.EditListingInput) error {
	return nil
}
func (f *fakeListingRepo) DeleteListingById(_ context.Context, _ string) error {
	return nil
}
func (f *fakeListingRepo) DoesListingExistById(_ context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

func newBidServiceForTest(bidRepo *fakeBidRepo, listingRepo *fakeListingRepo) *BidService {
	return &BidService{
		bidRepo:     bidRepo,
		listingRepo: listingRepo,
		now:         func() time.Time { return testNow },
	}
}

func testBid(start, end time.Time, subBids ...entity.SubBid) *entity.Bid {
	return &entity.Bid{
		Id:        uuid.New(),
		ListingId: uuid.New(),
		StartDate: start,
		EndDate:   end,
		Location:  "Central Library",
		SubBids:   subBids,
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
}

func TestCreateBidUnknownListing(t *testing.T) {
	bidRepo := newFakeBidRepo()
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{existing: map[string]bool{}})

	_, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ListingId: uuid.New().String(),
		StartDate: testNow.Add(time.Hour),
		EndDate:   testNow.Add(2 * time.Hour),
		Location:  "Park gate",
	})
	require.ErrorIs(t, err, ErrListingNotFound)
	require.Nil(t, bidRepo.createdInput)
}

func TestCreateBidInvalidWindow(t *testing.T) {
	listingId := uuid.New().String()
	bidRepo := newFakeBidRepo()
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{existing: map[string]bool{listingId: true}})

	_, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ListingId: listingId,
		StartDate: testNow.Add(2 * time.Hour),
		EndDate:   testNow.Add(time.Hour),
		Location:  "Park gate",
	})
	require.ErrorIs(t, err, lifecycle.ErrInvalidWindow)
	require.Nil(t, bidRepo.createdInput)
}

func TestCreateBid(t *testing.T) {
	listingId := uuid.New().String()
	bidRepo := newFakeBidRepo()
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{existing: map[string]bool{listingId: true}})

	out, err := s.CreateBid(context.Background(), &entity.CreateBidInput{
		ListingId: listingId,
		StartDate: testNow.Add(time.Hour),
		EndDate:   testNow.Add(2 * time.Hour),
		Location:  "Park gate",
	})
	require.NoError(t, err)
	require.Equal(t, string(lifecycle.StatusNotStarted), out.Status)
	require.Equal(t, listingId, out.ListingId)
	require.Empty(t, out.SubBids)
}

func TestEditBidExpired(t *testing.T) {
	bid := testBid(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	location := "X"
	_, err := s.EditBidById(context.Background(), bid.Id.String(), &lifecycle.UpdatePatch{Location: &location})
	require.ErrorIs(t, err, lifecycle.ErrBidExpired)
	require.Nil(t, bidRepo.updatedData)
}

func TestEditBid(t *testing.T) {
	bid := testBid(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	location := "Main square"
	out, err := s.EditBidById(context.Background(), bid.Id.String(), &lifecycle.UpdatePatch{Location: &location})
	require.NoError(t, err)
	require.Equal(t, "Main square", out.Location)
	require.Equal(t, string(lifecycle.StatusActive), out.Status)
	require.Equal(t, testNow, bidRepo.updatedData.UpdatedAt)
	// untouched fields keep their stored values
	require.Equal(t, bid.StartDate, bidRepo.updatedData.StartDate)
	require.Equal(t, bid.EndDate, bidRepo.updatedData.EndDate)
}

func TestDeleteBidExpired(t *testing.T) {
	bid := testBid(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	err := s.DeleteBidById(context.Background(), bid.Id.String())
	require.ErrorIs(t, err, lifecycle.ErrBidExpired)
	require.Empty(t, bidRepo.deletedId)
}

func TestDeleteBid(t *testing.T) {
	bid := testBid(testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	require.NoError(t, s.DeleteBidById(context.Background(), bid.Id.String()))
	require.Equal(t, bid.Id.String(), bidRepo.deletedId)
}

func TestPlaceSubBidNotActiveLeavesLogUntouched(t *testing.T) {
	notStarted := testBid(testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	expired := testBid(testNow.Add(-2*time.Hour), testNow.Add(-time.Hour))
	bidRepo := newFakeBidRepo(notStarted, expired)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	var notActive *lifecycle.NotActiveError

	_, err := s.PlaceSubBid(context.Background(), notStarted.Id.String(), "alice", decimal.NewFromInt(50))
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, lifecycle.StatusNotStarted, notActive.Status)

	_, err = s.PlaceSubBid(context.Background(), expired.Id.String(), "alice", decimal.NewFromInt(50))
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, lifecycle.StatusExpired, notActive.Status)

	require.Nil(t, bidRepo.appendedSub)
	require.Empty(t, bidRepo.bids[notStarted.Id.String()].SubBids)
	require.Empty(t, bidRepo.bids[expired.Id.String()].SubBids)
}

func TestPlaceSubBidActive(t *testing.T) {
	bid := testBid(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	out, err := s.PlaceSubBid(context.Background(), bid.Id.String(), "alice", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.Len(t, out.SubBids, 1)
	require.Equal(t, "alice", out.SubBids[0].Bidder)
	require.Equal(t, "50", out.SubBids[0].Amount)
	require.Equal(t, testNow, bidRepo.appendedSub.PlacedAt)

	highest, err := s.GetHighestSubBid(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.Equal(t, "alice", highest.Bidder)
}

func TestGetHighestSubBidEmpty(t *testing.T) {
	bid := testBid(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	s := newBidServiceForTest(newFakeBidRepo(bid), &fakeListingRepo{})

	highest, err := s.GetHighestSubBid(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.Nil(t, highest)
}

func TestGetHighestSubBidTieKeepsFirst(t *testing.T) {
	bid := testBid(testNow.Add(-time.Hour), testNow.Add(time.Hour),
		entity.SubBid{Bidder: "alice", Amount: decimal.NewFromInt(30), PlacedAt: testNow.Add(-30 * time.Minute)},
		entity.SubBid{Bidder: "bob", Amount: decimal.NewFromInt(30), PlacedAt: testNow.Add(-10 * time.Minute)},
	)
	s := newBidServiceForTest(newFakeBidRepo(bid), &fakeListingRepo{})

	highest, err := s.GetHighestSubBid(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.Equal(t, "alice", highest.Bidder)
}

func TestGetBidByIdNotFound(t *testing.T) {
	s := newBidServiceForTest(newFakeBidRepo(), &fakeListingRepo{})

	_, err := s.GetBidById(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrBidNotFound)
}

func TestGetBidByIdDerivesStatusFromClock(t *testing.T) {
	bid := testBid(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	bidRepo := newFakeBidRepo(bid)
	s := newBidServiceForTest(bidRepo, &fakeListingRepo{})

	out, err := s.GetBidById(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.Equal(t, string(lifecycle.StatusActive), out.Status)

	// Same stored row, later clock: the derived status follows the clock.
	s.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	out, err = s.GetBidById(context.Background(), bid.Id.String())
	require.NoError(t, err)
	require.Equal(t, string(lifecycle.StatusExpired), out.Status)
}
