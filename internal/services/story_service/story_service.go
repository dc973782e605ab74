package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/metrics"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

type Invalidator interface {
	InvalidateStory(ctx context.Context, id string)
}

type StoryService struct {
	log   *slog.Logger
	repo  repository.StoryRepository
	cache Invalidator
}

func NewStoryService(log *slog.Logger, repo repository.StoryRepository, cache Invalidator) *StoryService {
	return &StoryService{log: log, repo: repo, cache: cache}
}

func (s *StoryService) ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error) {
	const op = "story_service.ListStories"

	stories, err := s.repo.ListStories(ctx, activeOnly)
	if err != nil {
		s.log.Error("failed to list stories", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stories, nil
}

func (s *StoryService) GetStory(ctx context.Context, id string) (models.Story, error) {
	const op = "story_service.GetStory"

	story, err := s.repo.GetStoryByID(ctx, id)
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	return story, nil
}

// GetActiveStory returns the story only when it is visible on the storefront.
func (s *StoryService) GetActiveStory(ctx context.Context, id string) (models.Story, error) {
	const op = "story_service.GetActiveStory"

	story, err := s.repo.GetStoryByID(ctx, id)
	if err != nil {
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}
	if !story.IsActive {
		return models.Story{}, fmt.Errorf("%s: %w", op, storage.ErrStoryNotFound)
	}

	return story, nil
}

func (s *StoryService) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	const op = "story_service.CreateStory"
	log := s.log.With(slog.String("op", op), slog.String("title", story.Title))

	if err := prepare(&story); err != nil {
		log.Warn("invalid story", sl.Err(err))
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateStory(ctx, story)
	if err != nil {
		log.Error("failed to create story", sl.Err(err))
		metrics.ContentSaves.WithLabelValues("story", "error").Inc()
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ContentSaves.WithLabelValues("story", "created").Inc()
	log.Info("story created", slog.String("story_id", created.ID))

	return created, nil
}

// UpdateStory replaces the whole story; the last write wins.
func (s *StoryService) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	const op = "story_service.UpdateStory"
	log := s.log.With(slog.String("op", op), slog.String("story_id", story.ID))

	if err := prepare(&story); err != nil {
		log.Warn("invalid story", sl.Err(err))
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateStory(ctx, story)
	if err != nil {
		log.Error("failed to update story", sl.Err(err))
		metrics.ContentSaves.WithLabelValues("story", "error").Inc()
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, updated.ID)
	metrics.ContentSaves.WithLabelValues("story", "updated").Inc()
	log.Info("story updated")

	return updated, nil
}

func (s *StoryService) DeleteStory(ctx context.Context, id string) error {
	const op = "story_service.DeleteStory"

	if err := s.repo.DeleteStory(ctx, id); err != nil {
		s.log.Error("failed to delete story", slog.String("op", op), slog.String("story_id", id), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("story deleted", slog.String("op", op), slog.String("story_id", id))

	return nil
}

// prepare проверяет обязательные поля теми же правилами, что и редактор,
// и выдаёт блокам без id локальные идентификаторы.
func prepare(story *models.Story) error {
	story.Title = strings.TrimSpace(story.Title)
	story.ShortExcerpt = strings.TrimSpace(story.ShortExcerpt)

	if err := editor.LoadStory(*story).Validate(); err != nil {
		return err
	}

	if story.Content == nil {
		story.Content = []models.StoryContent{}
	}
	for i := range story.Content {
		blk := &story.Content[i]
		if !models.ValidStoryBlockType(blk.Type) {
			return fmt.Errorf("%w: %q", editor.ErrInvalidBlockType, blk.Type)
		}
		if blk.ID == "" {
			blk.ID = models.NewLocalID(models.PrefixStory)
		}
	}

	return nil
}

func (s *StoryService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.InvalidateStory(ctx, id)
	}
}
