package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/repo/repo_errors"
	"bookhive-api/pkg/postgres"
)

type LendingRepo struct {
	*postgres.Postgres
}

func NewLendingRepo(pgdb *postgres.Postgres) *LendingRepo {
	return &LendingRepo{pgdb}
}

const lendingColumns = "id, listing_id, lender, borrower, due_date, returned_at, created_at, updated_at"

func (r *LendingRepo) CreateLending(ctx context.Context, input *entity.CreateLendingInput) (uuid.UUID, error) {
	createLendingSql, args, _ := r.SqlBuilder.
		Insert("lending").
		Columns("listing_id", "lender", "borrower", "due_date").
		Values(input.ListingId, input.Lender, input.Borrower, input.DueDate).
		Suffix("RETURNING id").
		ToSql()

	var lendingId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createLendingSql, args...).Scan(&lendingId)
	if err != nil {
		return uuid.Nil, err
	}

	return lendingId, nil
}

func (r *LendingRepo) GetLendingById(ctx context.Context, id string) (*entity.Lending, error) {
	getLendingSql, args, _ := r.SqlBuilder.
		Select(lendingColumns).
		From("lending").
		Where("id = ?", id).
		ToSql()

	var lending entity.Lending
	row := r.Database.QueryRowContext(ctx, getLendingSql, args...)
	err := row.Scan(&lending.Id, &lending.ListingId, &lending.Lender, &lending.Borrower,
		&lending.DueDate, &lending.ReturnedAt, &lending.CreatedAt, &lending.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &lending, nil
}

func (r *LendingRepo) GetLendings(ctx context.Context, pg *entity.PaginationInput) ([]entity.Lending, error) {
	getLendingsSql, args, _ := r.SqlBuilder.
		Select(lendingColumns).
		From("lending").
		OrderBy("due_date ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getLendingsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lendings := make([]entity.Lending, 0)
	for rows.Next() {
		var lending entity.Lending
		if err := rows.Scan(&lending.Id, &lending.ListingId, &lending.Lender, &lending.Borrower,
			&lending.DueDate, &lending.ReturnedAt, &lending.CreatedAt, &lending.UpdatedAt); err != nil {
			return lendings, err
		}
		lendings = append(lendings, lending)
	}
	if err = rows.Err(); err != nil {
		return lendings, err
	}

	return lendings, nil
}

func (r *LendingRepo) MarkLendingReturned(ctx context.Context, id string, returnedAt time.Time) error {
	markReturnedSql, args, _ := r.SqlBuilder.
		Update("lending").
		Set("returned_at", returnedAt).
		Set("updated_at", returnedAt).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, markReturnedSql, args...)
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
