package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/repo/repo_errors"
	"bookhive-api/pkg/postgres"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "id, listing_id, start_date, end_date, location, created_at, updated_at"

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("listing_id", "start_date", "end_date", "location").
		Values(input.ListingId, input.StartDate, input.EndDate, input.Location).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId)
	if err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("id = ?", id).
		ToSql()

	var bid entity.Bid
	row := r.Database.QueryRowContext(ctx, getBidSql, args...)
	err := row.Scan(&bid.Id, &bid.ListingId, &bid.StartDate, &bid.EndDate, &bid.Location,
		&bid.CreatedAt, &bid.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	subBids, err := r.GetSubBids(ctx, id)
	if err != nil {
		return nil, err
	}
	bid.SubBids = subBids

	return &bid, nil
}

func (r *BidRepo) GetBids(ctx context.Context, pg *entity.PaginationInput) ([]entity.Bid, error) {
	getBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		OrderBy("start_date ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(ctx, getBidsSql, args...)
}

func (r *BidRepo) GetListingBids(ctx context.Context, listingId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	getBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("listing_id = ?", listingId).
		OrderBy("start_date ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(ctx, getBidsSql, args...)
}

func (r *BidRepo) queryBids(ctx context.Context, query string, args ...interface{}) ([]entity.Bid, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		if err := rows.Scan(&bid.Id, &bid.ListingId, &bid.StartDate, &bid.EndDate, &bid.Location,
			&bid.CreatedAt, &bid.UpdatedAt); err != nil {
			return bids, err
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	for i := range bids {
		subBids, err := r.GetSubBids(ctx, bids[i].Id.String())
		if err != nil {
			return bids, err
		}
		bids[i].SubBids = subBids
	}

	return bids, nil
}

// UpdateBidById writes an already validated field set in a single statement.
func (r *BidRepo) UpdateBidById(ctx context.Context, id string, data *lifecycle.UpdateData) error {
	updateBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("location", data.Location).
		Set("start_date", data.StartDate).
		Set("end_date", data.EndDate).
		Set("updated_at", data.UpdatedAt).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateBidSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *BidRepo) DeleteBidById(ctx context.Context, id string) error {
	deleteBidSql, args, _ := r.SqlBuilder.
		Delete("bid").
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteBidSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// AppendSubBid inserts one row into the append-only sub_bid log and bumps the
// parent's updated_at in the same transaction. Existing rows are never
// touched; concurrent appends are serialized by the database.
func (r *BidRepo) AppendSubBid(ctx context.Context, bidId string, subBid *entity.SubBid) error {
	uuidForm, err := uuid.Parse(bidId)
	if err != nil {
		return err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	appendSubBidSql, args, _ := r.SqlBuilder.
		Insert("sub_bid").
		Columns("bid_id", "bidder", "amount", "placed_at").
		Values(uuidForm, subBid.Bidder, subBid.Amount, subBid.PlacedAt).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(appendSubBidSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	touchBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("updated_at", subBid.PlacedAt).
		Where("id = ?", uuidForm).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(touchBidSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetSubBids returns the log in append order, which the highest-bid
// reduction relies on for leftmost-wins ties.
func (r *BidRepo) GetSubBids(ctx context.Context, bidId string) ([]entity.SubBid, error) {
	getSubBidsSql, args, _ := r.SqlBuilder.
		Select("bidder, amount, placed_at").
		From("sub_bid").
		Where("bid_id = ?", bidId).
		OrderBy("id ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getSubBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subBids := make([]entity.SubBid, 0)
	for rows.Next() {
		var subBid entity.SubBid
		if err := rows.Scan(&subBid.Bidder, &subBid.Amount, &subBid.PlacedAt); err != nil {
			return subBids, err
		}
		subBids = append(subBids, subBid)
	}
	if err = rows.Err(); err != nil {
		return subBids, err
	}

	return subBids, nil
}
