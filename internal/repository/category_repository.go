package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/storage"
	"videepat_foods/internal/storage/postgresql"
)

const categoriesTable = "categories"

var categoryColumns = []string{
	"id", "name", "slug", "description", "media_url", "media_type", "is_active", "created_at", "updated_at",
}

type CategoryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	const op = "repository.category_repository.CreateCategory"

	now := time.Now().UTC()
	query, args, err := r.sb.Insert(categoriesTable).
		Columns(categoryColumns...).
		Values(uuid.NewString(), c.Name, c.Slug, c.Description, c.MediaURL, c.MediaType, c.IsActive, now, now).
		Suffix("RETURNING " + strings.Join(categoryColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return models.Category{}, fmt.Errorf("%s: %w", op, storage.ErrCategoryExists)
		}
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id string) (models.Category, error) {
	const op = "repository.category_repository.GetCategoryByID"

	query, args, err := r.sb.Select(categoryColumns...).
		From(categoriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Category{}, fmt.Errorf("%s: %w", op, storage.ErrCategoryNotFound)
		}
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *CategoryRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	const op = "repository.category_repository.ListCategories"

	builder := r.sb.Select(categoryColumns...).From(categoriesTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.MediaURL,
		&c.MediaType,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
