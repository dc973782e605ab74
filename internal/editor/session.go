package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
)

type PageSaver interface {
	CreatePage(ctx context.Context, page models.Page) (models.Page, error)
	UpdatePage(ctx context.Context, page models.Page) (models.Page, error)
}

type StorySaver interface {
	CreateStory(ctx context.Context, story models.Story) (models.Story, error)
	UpdateStory(ctx context.Context, story models.Story) (models.Story, error)
}

// saveGuard allows one outstanding save at a time.
type saveGuard struct {
	busy atomic.Bool
}

func (g *saveGuard) acquire() bool { return g.busy.CompareAndSwap(false, true) }

func (g *saveGuard) release() { g.busy.Store(false) }

func (g *saveGuard) Saving() bool { return g.busy.Load() }

// PageSession граница сохранения: локальная валидация, защита от
// параллельных сохранений, create или replace через PageSaver.
type PageSession struct {
	saveGuard
	log    *slog.Logger
	Editor *PageEditor
	saver  PageSaver
}

func NewPageSession(log *slog.Logger, editor *PageEditor, saver PageSaver) *PageSession {
	return &PageSession{log: log, Editor: editor, saver: saver}
}

// Save validates locally, then creates or replaces the page. On failure the
// in-memory tree is left as it was so the caller can retry.
func (s *PageSession) Save(ctx context.Context) (models.Page, error) {
	const op = "editor.PageSession.Save"

	log := s.log.With(
		slog.String("op", op),
		slog.String("page_id", s.Editor.ID()),
	)

	if err := s.Editor.Validate(); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return models.Page{}, err
	}

	if !s.acquire() {
		log.Warn("save rejected, another save is in flight")
		return models.Page{}, ErrSaveInProgress
	}
	defer s.release()

	page := s.Editor.Snapshot()

	var (
		saved models.Page
		err   error
	)
	if s.Editor.IsNew() {
		saved, err = s.saver.CreatePage(ctx, page)
	} else {
		saved, err = s.saver.UpdatePage(ctx, page)
	}
	if err != nil {
		log.Error("failed to save page", sl.Err(err))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	s.Editor.adopt(saved)
	log.Info("page saved", slog.String("saved_id", saved.ID), slog.Int("version", saved.Version))

	return saved, nil
}

type StorySession struct {
	saveGuard
	log    *slog.Logger
	Editor *StoryEditor
	saver  StorySaver
}

func NewStorySession(log *slog.Logger, editor *StoryEditor, saver StorySaver) *StorySession {
	return &StorySession{log: log, Editor: editor, saver: saver}
}

func (s *StorySession) Save(ctx context.Context) (models.Story, error) {
	const op = "editor.StorySession.Save"

	log := s.log.With(
		slog.String("op", op),
		slog.String("story_id", s.Editor.ID()),
	)

	if err := s.Editor.Validate(); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return models.Story{}, err
	}

	if !s.acquire() {
		log.Warn("save rejected, another save is in flight")
		return models.Story{}, ErrSaveInProgress
	}
	defer s.release()

	story := s.Editor.Snapshot()

	var (
		saved models.Story
		err   error
	)
	if s.Editor.IsNew() {
		saved, err = s.saver.CreateStory(ctx, story)
	} else {
		saved, err = s.saver.UpdateStory(ctx, story)
	}
	if err != nil {
		log.Error("failed to save story", sl.Err(err))
		return models.Story{}, fmt.Errorf("%s: %w", op, err)
	}

	s.Editor.adopt(saved)
	log.Info("story saved", slog.String("saved_id", saved.ID))

	return saved, nil
}
