package repository

import (
	"context"
	"encoding/json"
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

const pagesTable = "pages"

var pageColumns = []string{
	"id", "name", "slug", "meta_title", "meta_description", "layout",
	"is_active", "status", "sections", "version", "created_at", "updated_at",
}

type PageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPageRepository(db *pgxpool.Pool) *PageRepo {
	return &PageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreatePage вставляет страницу с новым id. Дубликат slug -> storage.ErrSlugExists.
func (r *PageRepo) CreatePage(ctx context.Context, page models.Page) (models.Page, error) {
	const op = "repository.page_repository.CreatePage"

	sections, err := json.Marshal(nonNilSections(page.Sections))
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	page.ID = uuid.NewString()
	if page.Version < 1 {
		page.Version = 1
	}
	now := time.Now().UTC()

	query, args, err := r.sb.Insert(pagesTable).
		Columns(pageColumns...).
		Values(
			page.ID, page.Name, page.Slug, page.MetaTitle, page.MetaDescription, page.Layout,
			page.IsActive, page.Status, sections, page.Version, now, now,
		).
		Suffix("RETURNING " + strings.Join(pageColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanPage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return models.Page{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// UpdatePage заменяет документ целиком и увеличивает version.
// expectedVersion > 0 включает оптимистичную проверку.
func (r *PageRepo) UpdatePage(ctx context.Context, page models.Page, expectedVersion int) (models.Page, error) {
	const op = "repository.page_repository.UpdatePage"

	sections, err := json.Marshal(nonNilSections(page.Sections))
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	where := sq.And{sq.Eq{"id": page.ID}}
	if expectedVersion > 0 {
		where = append(where, sq.Eq{"version": expectedVersion})
	}

	query, args, err := r.sb.Update(pagesTable).
		Set("name", page.Name).
		Set("slug", page.Slug).
		Set("meta_title", page.MetaTitle).
		Set("meta_description", page.MetaDescription).
		Set("layout", page.Layout).
		Set("is_active", page.IsActive).
		Set("status", page.Status).
		Set("sections", sections).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(where).
		Suffix("RETURNING " + strings.Join(pageColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanPage(r.db.QueryRow(ctx, query, args...))
	switch {
	case err == nil:
		return updated, nil
	case postgresql.IsUniqueViolation(err):
		return models.Page{}, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	case !errors.Is(err, pgx.ErrNoRows):
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	// строки нет: либо страницы нет, либо версия устарела
	if _, err := r.GetPageByID(ctx, page.ID); err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.Page{}, fmt.Errorf("%s: %w", op, storage.ErrVersionConflict)
}

func (r *PageRepo) GetPageByID(ctx context.Context, id string) (models.Page, error) {
	const op = "repository.page_repository.GetPageByID"

	return r.getOne(ctx, op, sq.Eq{"id": id})
}

// GetPageBySlug matches the stored slug exactly; callers normalise first.
func (r *PageRepo) GetPageBySlug(ctx context.Context, slug string) (models.Page, error) {
	const op = "repository.page_repository.GetPageBySlug"

	return r.getOne(ctx, op, sq.Eq{"slug": slug})
}

func (r *PageRepo) getOne(ctx context.Context, op string, where sq.Sqlizer) (models.Page, error) {
	query, args, err := r.sb.Select(pageColumns...).
		From(pagesTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	page, err := scanPage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Page{}, fmt.Errorf("%s: %w", op, storage.ErrPageNotFound)
		}
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (r *PageRepo) ListPages(ctx context.Context) ([]models.Page, error) {
	const op = "repository.page_repository.ListPages"

	query, args, err := r.sb.Select(pageColumns...).
		From(pagesTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	pages := make([]models.Page, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}

// SlugTaken reports whether another page already uses slug.
func (r *PageRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const op = "repository.page_repository.SlugTaken"

	builder := r.sb.Select("COUNT(*)").From(pagesTable).Where(sq.Eq{"slug": slug})
	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return count > 0, nil
}

func (r *PageRepo) DeletePage(ctx context.Context, id string) error {
	const op = "repository.page_repository.DeletePage"

	query, args, err := r.sb.Delete(pagesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPageNotFound)
	}

	return nil
}

func scanPage(row pgx.Row) (models.Page, error) {
	var (
		page     models.Page
		sections []byte
	)

	err := row.Scan(
		&page.ID,
		&page.Name,
		&page.Slug,
		&page.MetaTitle,
		&page.MetaDescription,
		&page.Layout,
		&page.IsActive,
		&page.Status,
		&sections,
		&page.Version,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return models.Page{}, err
	}

	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &page.Sections); err != nil {
			return models.Page{}, fmt.Errorf("decode sections: %w", err)
		}
	}
	for i := range page.Sections {
		page.Sections[i].Order = i
	}

	return page, nil
}

func nonNilSections(s []models.Section) []models.Section {
	if s == nil {
		return []models.Section{}
	}
	return s
}
