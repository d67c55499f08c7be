package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/repo/repo_errors"
	"bookhive-api/pkg/postgres"
)

type ListingRepo struct {
	*postgres.Postgres
}

func NewListingRepo(pgdb *postgres.Postgres) *ListingRepo {
	return &ListingRepo{pgdb}
}

const listingColumns = "id, name, category, author, price, year, condition, description, photos, created_at, updated_at"

func (r *ListingRepo) CreateListing(ctx context.Context, input *entity.CreateListingInput) (uuid.UUID, error) {
	createListingSql, args, _ := r.SqlBuilder.
		Insert("book_listing").
		Columns("name", "category", "author", "price", "year", "condition", "description", "photos").
		Values(input.Name, input.Category, input.Author, input.Price, input.Year, input.Condition, input.Description, pq.Array(input.Photos)).
		Suffix("RETURNING id").
		ToSql()

	var listingId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createListingSql, args...).Scan(&listingId)
	if err != nil {
		return uuid.Nil, err
	}

	return listingId, nil
}

func (r *ListingRepo) GetListingById(ctx context.Context, id string) (*entity.Listing, error) {
	getListingSql, args, _ := r.SqlBuilder.
		Select(listingColumns).
		From("book_listing").
		Where("id = ?", id).
		ToSql()

	var listing entity.Listing
	row := r.Database.QueryRowContext(ctx, getListingSql, args...)
	err := row.Scan(&listing.Id, &listing.Name, &listing.Category, &listing.Author, &listing.Price,
		&listing.Year, &listing.Condition, &listing.Description, pq.Array(&listing.Photos),
		&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &listing, nil
}

func (r *ListingRepo) GetListings(ctx context.Context, pg *entity.PaginationInput) ([]entity.Listing, error) {
	getListingsSql, args, _ := r.SqlBuilder.
		Select(listingColumns).
		From("book_listing").
		OrderBy("name ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getListingsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]entity.Listing, 0)
	for rows.Next() {
		var listing entity.Listing
		if err := rows.Scan(&listing.Id, &listing.Name, &listing.Category, &listing.Author, &listing.Price,
			&listing.Year, &listing.Condition, &listing.Description, pq.Array(&listing.Photos),
			&listing.CreatedAt, &listing.UpdatedAt); err != nil {
			return listings, err
		}
		listings = append(listings, listing)
	}
	if err = rows.Err(); err != nil {
		return listings, err
	}

	return listings, nil
}

// Empty / nil fields keep their stored values.
func (r *ListingRepo) EditListingById(ctx context.Context, id string, input *entity.EditListingInput) error {
	builder := r.SqlBuilder.
		Update("book_listing").
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id)

	if input.Name != "" {
		builder = builder.Set("name", input.Name)
	}
	if input.Category != "" {
		builder = builder.Set("category", input.Category)
	}
	if input.Author != "" {
		builder = builder.Set("author", input.Author)
	}
	if input.Price != nil {
		builder = builder.Set("price", *input.Price)
	}
	if input.Year != nil {
		builder = builder.Set("year", *input.Year)
	}
	if input.Condition != "" {
		builder = builder.Set("condition", input.Condition)
	}
	if input.Description != "" {
		builder = builder.Set("description", input.Description)
	}
	if input.Photos != nil {
		builder = builder.Set("photos", pq.Array(input.Photos))
	}

	editListingSql, args, _ := builder.ToSql()

	result, err := r.Database.ExecContext(ctx, editListingSql, args...)
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

func (r *ListingRepo) DeleteListingById(ctx context.Context, id string) error {
	deleteListingSql, args, _ := r.SqlBuilder.
		Delete("book_listing").
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteListingSql, args...)
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

func (r *ListingRepo) DoesListingExistById(ctx context.Context, id string) (bool, error) {
	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("book_listing").
		Where("id = ?", id).
		ToSql()

	var one int
	err := r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
