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
)

const storiesTable = "stories"

var storyColumns = []string{
	"id", "title", "subtitle", "thumbnail_image", "hero_image", "short_excerpt",
	"is_active", "full_story_content", "created_at", "updated_at",
}

type StoryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewStoryRepository(db *pgxpool.Pool) *StoryRepo {
	return &StoryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StoryRepo) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	const op = "repository.story_repository.CreateStory"

	content, err := marshalStoryContent(story.Content)
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	query, args, err := r.sb.Insert(storiesTable).
		Columns(storyColumns...).
		Values(
			uuid.NewString(), story.Title, story.Subtitle, story.ThumbnailImage, story.HeroImage,
			story.ShortExcerpt, story.IsActive, content, now, now,
		).
		Suffix("RETURNING " + strings.Join(storyColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanStory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// UpdateStory заменяет историю целиком (last write wins).
func (r *StoryRepo) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	const op = "repository.story_repository.UpdateStory"

	content, err := marshalStoryContent(story.Content)
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Update(storiesTable).
		Set("title", story.Title).
		Set("subtitle", story.Subtitle).
		Set("thumbnail_image", story.ThumbnailImage).
		Set("hero_image", story.HeroImage).
		Set("short_excerpt", story.ShortExcerpt).
		Set("is_active", story.IsActive).
		Set("full_story_content", content).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": story.ID}).
		Suffix("RETURNING " + strings.Join(storyColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanStory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Story{}, fmt.Errorf("%s: %w", op, storage.ErrStoryNotFound)
		}
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *StoryRepo) GetStoryByID(ctx context.Context, id string) (models.Story, error) {
	const op = "repository.story_repository.GetStoryByID"

	query, args, err := r.sb.Select(storyColumns...).
		From(storiesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	story, err := scanStory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Story{}, fmt.Errorf("%s: %w", op, storage.ErrStoryNotFound)
		}
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	return story, nil
}

// ListStories returns stories newest first. activeOnly hides drafts from the storefront.
func (r *StoryRepo) ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error) {
	const op = "repository.story_repository.ListStories"

	builder := r.sb.Select(storyColumns...).From(storiesTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	stories := make([]models.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stories, nil
}

func (r *StoryRepo) DeleteStory(ctx context.Context, id string) error {
	const op = "repository.story_repository.DeleteStory"

	query, args, err := r.sb.Delete(storiesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrStoryNotFound)
	}

	return nil
}

func scanStory(row pgx.Row) (models.Story, error) {
	var (
		story   models.Story
		content []byte
	)

	err := row.Scan(
		&story.ID,
		&story.Title,
		&story.Subtitle,
		&story.ThumbnailImage,
		&story.HeroImage,
		&story.ShortExcerpt,
		&story.IsActive,
		&content,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if err != nil {
		return models.Story{}, err
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &story.Content); err != nil {
			return models.Story{}, fmt.Errorf("decode story content: %w", err)
		}
	}

	return story, nil
}

func marshalStoryContent(c []models.StoryContent) ([]byte, error) {
	if c == nil {
		c = []models.StoryContent{}
	}
	return json.Marshal(c)
}
