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
)

const heroTable = "hero"

var heroColumns = []string{
	"id", "title", "subtitle", "description", "background_image", "cta_text", "cta_link",
	"secondary_cta_text", "secondary_cta_link", "is_active", "created_at", "updated_at",
}

type HeroRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewHeroRepository(db *pgxpool.Pool) *HeroRepo {
	return &HeroRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetHero returns the oldest hero row; the storefront has a single one.
func (r *HeroRepo) GetHero(ctx context.Context) (models.Hero, error) {
	const op = "repository.hero_repository.GetHero"

	query, args, err := r.sb.Select(heroColumns...).
		From(heroTable).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	h, err := scanHero(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Hero{}, fmt.Errorf("%s: %w", op, storage.ErrHeroNotFound)
		}
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	return h, nil
}

// SaveHero inserts the hero when it has no id yet and replaces it otherwise.
func (r *HeroRepo) SaveHero(ctx context.Context, h models.Hero) (models.Hero, error) {
	const op = "repository.hero_repository.SaveHero"

	now := time.Now().UTC()

	var (
		query string
		args  []interface{}
		err   error
	)
	if h.ID == "" {
		query, args, err = r.sb.Insert(heroTable).
			Columns(heroColumns...).
			Values(
				uuid.NewString(), h.Title, h.Subtitle, h.Description, h.BackgroundImage, h.CTAText, h.CTALink,
				h.SecondaryCTAText, h.SecondaryCTALink, h.IsActive, now, now,
			).
			Suffix("RETURNING " + strings.Join(heroColumns, ", ")).
			ToSql()
	} else {
		query, args, err = r.sb.Update(heroTable).
			Set("title", h.Title).
			Set("subtitle", h.Subtitle).
			Set("description", h.Description).
			Set("background_image", h.BackgroundImage).
			Set("cta_text", h.CTAText).
			Set("cta_link", h.CTALink).
			Set("secondary_cta_text", h.SecondaryCTAText).
			Set("secondary_cta_link", h.SecondaryCTALink).
			Set("is_active", h.IsActive).
			Set("updated_at", now).
			Where(sq.Eq{"id": h.ID}).
			Suffix("RETURNING " + strings.Join(heroColumns, ", ")).
			ToSql()
	}
	if err != nil {
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanHero(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Hero{}, fmt.Errorf("%s: %w", op, storage.ErrHeroNotFound)
		}
		return models.Hero{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func scanHero(row pgx.Row) (models.Hero, error) {
	var h models.Hero
	err := row.Scan(
		&h.ID,
		&h.Title,
		&h.Subtitle,
		&h.Description,
		&h.BackgroundImage,
		&h.CTAText,
		&h.CTALink,
		&h.SecondaryCTAText,
		&h.SecondaryCTALink,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	return h, err
}
