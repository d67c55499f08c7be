// Package lifecycle is the single source of truth for what can happen to a
// bid at a given moment. Everything here is a pure function of the bid's
// stored window and the caller's clock; callers read the clock once per
// request and thread the same instant through every check.
package lifecycle

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookhive-api/internal/entity"
)

// Status of a bid window. Derived, never stored.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusActive     Status = "Active"
	StatusExpired    Status = "Expired"
)

var (
	ErrInvalidWindow          = errors.New("startDate must be strictly before endDate")
	ErrStartInPast            = errors.New("startDate can't be in the past")
	ErrEmptyUpdate            = errors.New("no fields to update")
	ErrInvalidLocation        = errors.New("location can't be blank")
	ErrCannotDeferActiveStart = errors.New("can't move an active bid's start into the future")
	ErrBidExpired             = errors.New("bid is expired")
	ErrInvalidSubBid          = errors.New("sub-bid needs a bidder and a non-negative amount")
)

// NotActiveError rejects sub-bid placement outside the active window. It
// carries the actual status so the HTTP layer can echo a machine-readable
// discriminator next to the message.
type NotActiveError struct {
	Status Status
}

func (e *NotActiveError) Error() string {
	return "bid is " + Label(e.Status) + ", sub-bids can only be placed while it is active"
}

// Label returns the human form of a status used in messages.
func Label(s Status) string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusExpired:
		return "expired"
	default:
		return "active"
	}
}

// DeriveStatus maps a window and a clock reading onto exactly one status.
// The window is half-open: a bid is Active iff startDate <= now < endDate,
// so now == endDate is already Expired.
func DeriveStatus(startDate, endDate, now time.Time) Status {
	if now.Before(startDate) {
		return StatusNotStarted
	}
	if now.Before(endDate) {
		return StatusActive
	}

	return StatusExpired
}

// CanMutate reports whether field updates and deletion are still permitted.
// Expired bids are read-only.
func CanMutate(startDate, endDate, now time.Time) bool {
	return DeriveStatus(startDate, endDate, now) != StatusExpired
}

// ValidateCreate checks a new bid's window and location. startDate == now is
// allowed, so a bid may start the moment it is created.
func ValidateCreate(startDate, endDate time.Time, location string, now time.Time) error {
	if !startDate.Before(endDate) {
		return ErrInvalidWindow
	}
	if startDate.Before(now) {
		return ErrStartInPast
	}
	if strings.TrimSpace(location) == "" {
		return ErrInvalidLocation
	}

	return nil
}

// UpdatePatch is the allow-list of editable bid fields. Nil means "keep the
// stored value"; anything else a caller sends never reaches this type.
type UpdatePatch struct {
	Location  *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (p *UpdatePatch) empty() bool {
	return p.Location == nil && p.StartDate == nil && p.EndDate == nil
}

// UpdateData is the fully-resolved field set to persist after a successful
// validation, with UpdatedAt already bumped to the request clock.
type UpdateData struct {
	Location  string
	StartDate time.Time
	EndDate   time.Time
	UpdatedAt time.Time
}

// ValidateUpdate runs the update pipeline in order, short-circuiting on the
// first failure:
//  1. the bid must not be expired
//  2. the patch must touch at least one allowed field
//  3. a patched location must be non-blank
//  4. the effective window (patched or stored value per side) must be valid
//  5. an active bid's start may not be pushed past now
//
// On success it returns the effective values for all three fields; nothing
// has been applied yet, the caller persists the result in one write.
func ValidateUpdate(bid *entity.Bid, patch *UpdatePatch, now time.Time) (*UpdateData, error) {
	if !CanMutate(bid.StartDate, bid.EndDate, now) {
		return nil, ErrBidExpired
	}

	if patch.empty() {
		return nil, ErrEmptyUpdate
	}

	data := &UpdateData{
		Location:  bid.Location,
		StartDate: bid.StartDate,
		EndDate:   bid.EndDate,
		UpdatedAt: now,
	}

	if patch.Location != nil {
		trimmed := strings.TrimSpace(*patch.Location)
		if trimmed == "" {
			return nil, ErrInvalidLocation
		}
		data.Location = trimmed
	}

	if patch.StartDate != nil {
		data.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		data.EndDate = *patch.EndDate
	}
	if !data.StartDate.Before(data.EndDate) {
		return nil, ErrInvalidWindow
	}

	if patch.StartDate != nil &&
		DeriveStatus(bid.StartDate, bid.EndDate, now) == StatusActive &&
		patch.StartDate.After(now) {
		return nil, ErrCannotDeferActiveStart
	}

	return data, nil
}

// ValidateDelete gates deletion on the same rule as updates: anything goes
// until the bid expires.
func ValidateDelete(bid *entity.Bid, now time.Time) error {
	if !CanMutate(bid.StartDate, bid.EndDate, now) {
		return ErrBidExpired
	}

	return nil
}

// PlaceSubBid validates a sub-bid against the bid's current status and
// returns the entry to append. The sub-bid log itself is append-only; this
// never mutates the bid.
func PlaceSubBid(bid *entity.Bid, bidder string, amount decimal.Decimal, now time.Time) (*entity.SubBid, error) {
	if strings.TrimSpace(bidder) == "" || amount.IsNegative() {
		return nil, ErrInvalidSubBid
	}

	status := DeriveStatus(bid.StartDate, bid.EndDate, now)
	if status != StatusActive {
		return nil, &NotActiveError{Status: status}
	}

	return &entity.SubBid{
		Bidder:   strings.TrimSpace(bidder),
		Amount:   amount,
		PlacedAt: now,
	}, nil
}

// HighestSubBid reduces the sub-bid log to the entry with the maximal amount.
// Strict-greater comparison carries the running maximum forward, so on ties
// the leftmost (earliest appended) entry wins. Returns nil on an empty log.
func HighestSubBid(subBids []entity.SubBid) *entity.SubBid {
	if len(subBids) == 0 {
		return nil
	}

	highest := &subBids[0]
	for i := 1; i < len(subBids); i++ {
		if subBids[i].Amount.GreaterThan(highest.Amount) {
			highest = &subBids[i]
		}
	}

	return highest
}
