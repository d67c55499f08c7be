package service

import (
	"time"

	"bookhive-api/internal/common"
	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
)

func mapListing(l *entity.Listing) *entity.ListingOutputModel {
	return &entity.ListingOutputModel{
		Id:          l.Id.String(),
		Name:        l.Name,
		Category:    l.Category,
		Author:      l.Author,
		Price:       l.Price.String(),
		Year:        l.Year,
		Condition:   l.Condition,
		Description: l.Description,
		Photos:      l.Photos,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
}

func mapListings(listings []entity.Listing) []entity.ListingOutputModel {
	s := make([]entity.ListingOutputModel, 0)
	for _, listing := range listings {
		s = append(s, *mapListing(&listing))
	}

	return s
}

// mapBid derives the status from the same clock reading the rest of the
// request used; the stored row carries no status at all.
func mapBid(b *entity.Bid, now time.Time) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        b.Id.String(),
		ListingId: b.ListingId.String(),
		StartDate: b.StartDate.Format(time.RFC3339),
		EndDate:   b.EndDate.Format(time.RFC3339),
		Location:  b.Location,
		Status:    string(lifecycle.DeriveStatus(b.StartDate, b.EndDate, now)),
		SubBids:   mapSubBids(b.SubBids),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func mapBids(bids []entity.Bid, now time.Time) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid, now))
	}

	return s
}

func mapSubBid(sb *entity.SubBid) *entity.SubBidOutputModel {
	return &entity.SubBidOutputModel{
		Bidder:   sb.Bidder,
		Amount:   sb.Amount.String(),
		PlacedAt: sb.PlacedAt.Format(time.RFC3339),
	}
}

func mapSubBids(subBids []entity.SubBid) []entity.SubBidOutputModel {
	s := make([]entity.SubBidOutputModel, 0)
	for i := range subBids {
		s = append(s, *mapSubBid(&subBids[i]))
	}

	return s
}

func lendingState(l *entity.Lending, now time.Time) string {
	if l.ReturnedAt != nil {
		return common.LendingReturned
	}
	if now.After(l.DueDate) {
		return common.LendingOverdue
	}

	return common.LendingBorrowed
}

func mapLending(l *entity.Lending, now time.Time) *entity.LendingOutputModel {
	out := &entity.LendingOutputModel{
		Id:        l.Id.String(),
		ListingId: l.ListingId.String(),
		Lender:    l.Lender,
		Borrower:  l.Borrower,
		DueDate:   l.DueDate.Format(time.RFC3339),
		State:     lendingState(l, now),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
		UpdatedAt: l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ReturnedAt != nil {
		out.ReturnedAt = l.ReturnedAt.Format(time.RFC3339)
	}

	return out
}

func mapLendings(lendings []entity.Lending, now time.Time) []entity.LendingOutputModel {
	s := make([]entity.LendingOutputModel, 0)
	for _, lending := range lendings {
		s = append(s, *mapLending(&lending, now))
	}

	return s
}
