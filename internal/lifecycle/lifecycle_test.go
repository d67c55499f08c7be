package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookhive-api/internal/entity"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func bidWindow(start, end time.Time) *entity.Bid {
	return &entity.Bid{
		StartDate: start,
		EndDate:   end,
		Location:  "Central Library",
	}
}

func notStartedBid() *entity.Bid {
	return bidWindow(now.Add(1*time.Hour), now.Add(2*time.Hour))
}

func activeBid() *entity.Bid {
	return bidWindow(now.Add(-1*time.Hour), now.Add(1*time.Hour))
}

func expiredBid() *entity.Bid {
	return bidWindow(now.Add(-2*time.Hour), now.Add(-1*time.Hour))
}

func strptr(s string) *string       { return &s }
func timeptr(t time.Time) *time.Time { return &t }

func TestDeriveStatusPartition(t *testing.T) {
	start := now.Add(-1 * time.Hour)
	end := now.Add(1 * time.Hour)

	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{"well before start", start.Add(-24 * time.Hour), StatusNotStarted},
		{"just before start", start.Add(-time.Nanosecond), StatusNotStarted},
		{"inside window", now, StatusActive},
		{"just before end", end.Add(-time.Nanosecond), StatusActive},
		{"well after end", end.Add(24 * time.Hour), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(start, end, tt.at); got != tt.want {
				t.Fatalf("DeriveStatus at %v: want %s, got %s", tt.at, tt.want, got)
			}
		})
	}
}

// Pins the half-open [start, end) convention: the instant the window opens is
// Active, the instant it closes is already Expired.
func TestDeriveStatusBoundaries(t *testing.T) {
	start := now
	end := now.Add(1 * time.Hour)

	require.Equal(t, StatusActive, DeriveStatus(start, end, start))
	require.Equal(t, StatusExpired, DeriveStatus(start, end, end))
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		location string
		wantErr  error
	}{
		{"valid future window", now.Add(time.Hour), now.Add(2 * time.Hour), "Park gate", nil},
		{"starts right now", now, now.Add(time.Hour), "Park gate", nil},
		{"start equals end", now.Add(time.Hour), now.Add(time.Hour), "Park gate", ErrInvalidWindow},
		{"start after end", now.Add(2 * time.Hour), now.Add(time.Hour), "Park gate", ErrInvalidWindow},
		{"start in the past", now.Add(-time.Minute), now.Add(time.Hour), "Park gate", ErrStartInPast},
		{"blank location", now.Add(time.Hour), now.Add(2 * time.Hour), "   ", ErrInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.start, tt.end, tt.location, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateUpdateExpiredBidRejectsEverything(t *testing.T) {
	bid := expiredBid()

	patches := []*UpdatePatch{
		{},
		{Location: strptr("X")},
		{StartDate: timeptr(now.Add(time.Hour)), EndDate: timeptr(now.Add(2 * time.Hour))},
	}
	for _, patch := range patches {
		_, err := ValidateUpdate(bid, patch, now)
		require.ErrorIs(t, err, ErrBidExpired)
	}
}

func TestValidateUpdateEmptyPatch(t *testing.T) {
	_, err := ValidateUpdate(activeBid(), &UpdatePatch{}, now)
	require.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestValidateUpdateLocation(t *testing.T) {
	bid := activeBid()

	_, err := ValidateUpdate(bid, &UpdatePatch{Location: strptr("  ")}, now)
	require.ErrorIs(t, err, ErrInvalidLocation)

	data, err := ValidateUpdate(bid, &UpdatePatch{Location: strptr("  Main square  ")}, now)
	require.NoError(t, err)
	require.Equal(t, "Main square", data.Location)
	require.Equal(t, bid.StartDate, data.StartDate)
	require.Equal(t, bid.EndDate, data.EndDate)
	require.Equal(t, now, data.UpdatedAt)
}

func TestValidateUpdateEffectiveWindow(t *testing.T) {
	bid := notStartedBid()

	// Patched end collides with the stored start.
	_, err := ValidateUpdate(bid, &UpdatePatch{EndDate: timeptr(bid.StartDate)}, now)
	require.ErrorIs(t, err, ErrInvalidWindow)

	// Both sides patched to a valid window.
	data, err := ValidateUpdate(bid, &UpdatePatch{
		StartDate: timeptr(now.Add(3 * time.Hour)),
		EndDate:   timeptr(now.Add(4 * time.Hour)),
	}, now)
	require.NoError(t, err)
	require.Equal(t, now.Add(3*time.Hour), data.StartDate)
	require.Equal(t, now.Add(4*time.Hour), data.EndDate)
}

func TestValidateUpdateCannotDeferActiveStart(t *testing.T) {
	bid := activeBid()

	_, err := ValidateUpdate(bid, &UpdatePatch{StartDate: timeptr(now.Add(5 * time.Hour)), EndDate: timeptr(now.Add(6 * time.Hour))}, now)
	require.ErrorIs(t, err, ErrCannotDeferActiveStart)

	// Moving the start backwards is fine.
	data, err := ValidateUpdate(bid, &UpdatePatch{StartDate: timeptr(now.Add(-2 * time.Hour))}, now)
	require.NoError(t, err)
	require.Equal(t, now.Add(-2*time.Hour), data.StartDate)

	// A not-started bid may be deferred freely.
	_, err = ValidateUpdate(notStartedBid(), &UpdatePatch{StartDate: timeptr(now.Add(90 * time.Minute))}, now)
	require.NoError(t, err)
}

func TestValidateDelete(t *testing.T) {
	require.NoError(t, ValidateDelete(notStartedBid(), now))
	require.NoError(t, ValidateDelete(activeBid(), now))
	require.ErrorIs(t, ValidateDelete(expiredBid(), now), ErrBidExpired)
}

func TestPlaceSubBidValidation(t *testing.T) {
	bid := activeBid()

	_, err := PlaceSubBid(bid, "  ", decimal.NewFromInt(10), now)
	require.ErrorIs(t, err, ErrInvalidSubBid)

	_, err = PlaceSubBid(bid, "alice", decimal.NewFromInt(-1), now)
	require.ErrorIs(t, err, ErrInvalidSubBid)

	sb, err := PlaceSubBid(bid, " alice ", decimal.Zero, now)
	require.NoError(t, err)
	require.Equal(t, "alice", sb.Bidder)
	require.True(t, sb.Amount.IsZero())
	require.Equal(t, now, sb.PlacedAt)
}

func TestPlaceSubBidOnlyWhileActive(t *testing.T) {
	amount := decimal.NewFromInt(50)

	_, err := PlaceSubBid(notStartedBid(), "alice", amount, now)
	var notActive *NotActiveError
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, StatusNotStarted, notActive.Status)
	require.Contains(t, notActive.Error(), "not started")

	_, err = PlaceSubBid(expiredBid(), "alice", amount, now)
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, StatusExpired, notActive.Status)
	require.Contains(t, notActive.Error(), "expired")

	sb, err := PlaceSubBid(activeBid(), "alice", amount, now)
	require.NoError(t, err)
	require.True(t, amount.Equal(sb.Amount))
}

func TestHighestSubBid(t *testing.T) {
	require.Nil(t, HighestSubBid(nil))
	require.Nil(t, HighestSubBid([]entity.SubBid{}))

	single := []entity.SubBid{{Bidder: "alice", Amount: decimal.NewFromInt(50)}}
	require.Equal(t, &single[0], HighestSubBid(single))

	subBids := []entity.SubBid{
		{Bidder: "alice", Amount: decimal.NewFromInt(30)},
		{Bidder: "bob", Amount: decimal.NewFromInt(70)},
		{Bidder: "carol", Amount: decimal.NewFromInt(70)},
		{Bidder: "dave", Amount: decimal.NewFromInt(10)},
	}
	highest := HighestSubBid(subBids)
	require.Equal(t, "bob", highest.Bidder)
}

// Two equal amounts: the first one placed wins.
func TestHighestSubBidTieKeepsFirst(t *testing.T) {
	subBids := []entity.SubBid{
		{Bidder: "alice", Amount: decimal.NewFromInt(30), PlacedAt: now},
		{Bidder: "bob", Amount: decimal.NewFromInt(30), PlacedAt: now.Add(time.Minute)},
	}
	require.Equal(t, "alice", HighestSubBid(subBids).Bidder)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "not started", Label(StatusNotStarted))
	require.Equal(t, "active", Label(StatusActive))
	require.Equal(t, "expired", Label(StatusExpired))
}
