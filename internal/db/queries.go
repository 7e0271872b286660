package db

import (
	"context"
	"database/sql"
	"fmt"
)

const listGames = `SELECT g.id, g.title, g.description, g.star_rating,
       c.id, c.name, p.id, p.name
FROM games g
LEFT JOIN categories c ON g.category_id = c.id
LEFT JOIN publishers p ON g.publisher_id = p.id
ORDER BY g.id`

const listCategories = `SELECT id, name, description FROM categories ORDER BY id`

const listPublishers = `SELECT id, name, description FROM publishers ORDER BY id`

// DBTX is the subset of *sql.DB and *sql.Tx used by Queries
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Queries runs the catalog read queries
type Queries struct {
	db DBTX
}

// New creates Queries over a database or transaction
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// GameRow is one row of the games listing joined with its category and publisher
type GameRow struct {
	ID            int64
	Title         string
	Description   sql.NullString
	StarRating    sql.NullFloat64
	CategoryID    sql.NullInt64
	CategoryName  sql.NullString
	PublisherID   sql.NullInt64
	PublisherName sql.NullString
}

// FacetRow is one row of the categories or publishers table
type FacetRow struct {
	ID          int64
	Name        string
	Description sql.NullString
}

// ListGames returns every game ordered by id
func (q *Queries) ListGames(ctx context.Context) ([]GameRow, error) {
	rows, err := q.db.QueryContext(ctx, listGames)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var items []GameRow
	for rows.Next() {
		var i GameRow
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.StarRating,
			&i.CategoryID,
			&i.CategoryName,
			&i.PublisherID,
			&i.PublisherName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return items, nil
}

// ListCategories returns every category ordered by id
func (q *Queries) ListCategories(ctx context.Context) ([]FacetRow, error) {
	return q.listFacets(ctx, listCategories)
}

// ListPublishers returns every publisher ordered by id
func (q *Queries) ListPublishers(ctx context.Context) ([]FacetRow, error) {
	return q.listFacets(ctx, listPublishers)
}

func (q *Queries) listFacets(ctx context.Context, query string) ([]FacetRow, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query facets: %w", err)
	}
	defer rows.Close()

	var items []FacetRow
	for rows.Next() {
		var i FacetRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Description); err != nil {
			return nil, fmt.Errorf("failed to scan facet: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read facets: %w", err)
	}
	return items, nil
}
