package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/sofiko-bakery/consultant-bot/internal/errors"
)

// PostgresCatalog serves the assortment from a PostgreSQL database.
//
// Expected schema:
//
//	courses(id text primary key, name text, description text, duration text, price bigint, position int)
//	bakery_items(id text primary key, name text, price bigint, position int)
type PostgresCatalog struct {
	db  *sql.DB
	log *slog.Logger
}

// NewPostgres creates a SQL-backed catalog.
func NewPostgres(db *sql.DB, log *slog.Logger) *PostgresCatalog {
	if log == nil {
		log = slog.Default()
	}

	return &PostgresCatalog{
		db:  db,
		log: log,
	}
}

// Course returns the course with the given id, or ErrNotFound.
func (c *PostgresCatalog) Course(ctx context.Context, id string) (*Course, error) {
	const query = `
		SELECT id, name, description, duration, price
		FROM courses
		WHERE id = $1
	`

	row := c.db.QueryRowContext(ctx, query, id)

	var course Course
	if err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Duration,
		&course.Price,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		c.log.Error("failed to fetch course", slog.String("course_id", id), slog.Any("error", err))
		return nil, apperrors.NewDatabaseError(fmt.Errorf("select course: %w", err))
	}

	return &course, nil
}

// Item returns the bakery item with the given id, or ErrNotFound.
func (c *PostgresCatalog) Item(ctx context.Context, id string) (*Item, error) {
	const query = `
		SELECT id, name, price
		FROM bakery_items
		WHERE id = $1
	`

	row := c.db.QueryRowContext(ctx, query, id)

	var item Item
	if err := row.Scan(&item.ID, &item.Name, &item.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		c.log.Error("failed to fetch bakery item", slog.String("item_id", id), slog.Any("error", err))
		return nil, apperrors.NewDatabaseError(fmt.Errorf("select bakery item: %w", err))
	}

	return &item, nil
}

// Courses returns all courses ordered by their display position.
func (c *PostgresCatalog) Courses(ctx context.Context) ([]Course, error) {
	const query = `
		SELECT id, name, description, duration, price
		FROM courses
		ORDER BY position
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		c.log.Error("failed to list courses", slog.Any("error", err))
		return nil, apperrors.NewDatabaseError(fmt.Errorf("select courses: %w", err))
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.Duration,
			&course.Price,
		); err != nil {
			return nil, apperrors.NewDatabaseError(fmt.Errorf("scan course: %w", err))
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("iterate courses: %w", err))
	}

	return courses, nil
}

// Items returns all bakery items ordered by their display position.
func (c *PostgresCatalog) Items(ctx context.Context) ([]Item, error) {
	const query = `
		SELECT id, name, price
		FROM bakery_items
		ORDER BY position
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		c.log.Error("failed to list bakery items", slog.Any("error", err))
		return nil, apperrors.NewDatabaseError(fmt.Errorf("select bakery items: %w", err))
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, apperrors.NewDatabaseError(fmt.Errorf("scan bakery item: %w", err))
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("iterate bakery items: %w", err))
	}

	return items, nil
}
