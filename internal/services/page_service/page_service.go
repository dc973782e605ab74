package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/lib/slug"
	"videepat_foods/internal/metrics"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

var (
	ErrInvalidSlug    = errors.New("slug may contain only lowercase letters, digits and dashes")
	ErrInvalidLayout  = errors.New("invalid layout")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrUnknownBlock   = errors.New("unknown block type")
	ErrDuplicateBlock = errors.New("duplicate section or block id")
)

// Invalidator сбрасывает отрисованные копии страниц после записи.
type Invalidator interface {
	InvalidatePage(ctx context.Context, slug string)
}

type PageService struct {
	log   *slog.Logger
	repo  repository.PageRepository
	reg   *registry.Registry
	cache Invalidator
}

func NewPageService(log *slog.Logger, repo repository.PageRepository, reg *registry.Registry, cache Invalidator) *PageService {
	if reg == nil {
		reg = registry.Default()
	}
	return &PageService{log: log, repo: repo, reg: reg, cache: cache}
}

func (s *PageService) ListPages(ctx context.Context) ([]models.Page, error) {
	const op = "page_service.ListPages"

	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		s.log.Error("failed to list pages", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}

func (s *PageService) GetPage(ctx context.Context, id string) (models.Page, error) {
	const op = "page_service.GetPage"

	page, err := s.repo.GetPageByID(ctx, id)
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// GetPublishedBySlug находит страницу для витрины. Неактивные и черновики не отдаются.
func (s *PageService) GetPublishedBySlug(ctx context.Context, raw string) (models.Page, error) {
	const op = "page_service.GetPublishedBySlug"

	page, err := s.repo.GetPageBySlug(ctx, slug.Normalize(raw))
	if err != nil {
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}
	if !page.IsActive || page.Status != models.PageStatusPublished {
		return models.Page{}, fmt.Errorf("%s: %w", op, storage.ErrPageNotFound)
	}

	return page, nil
}

// CreatePage validates the tree, fills defaults and stores the page as version 1.
func (s *PageService) CreatePage(ctx context.Context, page models.Page) (models.Page, error) {
	const op = "page_service.CreatePage"
	log := s.log.With(slog.String("op", op), slog.String("name", page.Name))

	if err := s.prepare(&page); err != nil {
		log.Warn("invalid page", sl.Err(err))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}
	page.ID = ""
	page.Version = 1

	if err := s.ensureSlugFree(ctx, page.Slug, ""); err != nil {
		log.Warn("slug rejected", slog.String("slug", page.Slug), sl.Err(err))
		metrics.ContentSaves.WithLabelValues("page", "conflict").Inc()
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreatePage(ctx, page)
	if err != nil {
		log.Error("failed to create page", sl.Err(err))
		metrics.ContentSaves.WithLabelValues("page", saveResult(err)).Inc()
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, created.Slug)
	metrics.ContentSaves.WithLabelValues("page", "created").Inc()
	log.Info("page created", slog.String("page_id", created.ID), slog.String("slug", created.Slug))

	return created, nil
}

// UpdatePage replaces the stored page. A non-zero version must match the
// stored one, otherwise storage.ErrVersionConflict is returned.
func (s *PageService) UpdatePage(ctx context.Context, page models.Page) (models.Page, error) {
	const op = "page_service.UpdatePage"
	log := s.log.With(slog.String("op", op), slog.String("page_id", page.ID))

	existing, err := s.repo.GetPageByID(ctx, page.ID)
	if err != nil {
		log.Warn("page not found", sl.Err(err))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.prepare(&page); err != nil {
		log.Warn("invalid page", sl.Err(err))
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.ensureSlugFree(ctx, page.Slug, page.ID); err != nil {
		log.Warn("slug rejected", slog.String("slug", page.Slug), sl.Err(err))
		metrics.ContentSaves.WithLabelValues("page", "conflict").Inc()
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdatePage(ctx, page, page.Version)
	if err != nil {
		log.Error("failed to update page", slog.Int("version", page.Version), sl.Err(err))
		metrics.ContentSaves.WithLabelValues("page", saveResult(err)).Inc()
		return models.Page{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, existing.Slug)
	if updated.Slug != existing.Slug {
		s.invalidate(ctx, updated.Slug)
	}
	metrics.ContentSaves.WithLabelValues("page", "updated").Inc()
	log.Info("page updated", slog.Int("version", updated.Version))

	return updated, nil
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	const op = "page_service.DeletePage"
	log := s.log.With(slog.String("op", op), slog.String("page_id", id))

	existing, err := s.repo.GetPageByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeletePage(ctx, id); err != nil {
		log.Error("failed to delete page", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, existing.Slug)
	log.Info("page deleted")

	return nil
}

// prepare normalises a page coming from a client and checks the tree
// against the block registry.
func (s *PageService) prepare(page *models.Page) error {
	page.Name = strings.TrimSpace(page.Name)
	if page.Name == "" {
		return editor.ErrNameRequired
	}

	if page.Slug == "" {
		page.Slug = slug.Make(page.Name)
	} else {
		page.Slug = slug.Normalize(page.Slug)
	}
	if !slug.Valid(page.Slug) {
		return ErrInvalidSlug
	}

	if page.MetaTitle == "" {
		page.MetaTitle = page.Name
	}
	if page.MetaDescription == "" {
		page.MetaDescription = "Description for " + page.Name
	}
	if page.Layout == "" {
		page.Layout = models.PageLayoutDefault
	}
	if !models.ValidPageLayout(page.Layout) {
		return fmt.Errorf("%w: %q", ErrInvalidLayout, page.Layout)
	}
	if page.Status == "" {
		page.Status = models.PageStatusPublished
	}
	if !models.ValidPageStatus(page.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, page.Status)
	}

	if page.Sections == nil {
		page.Sections = []models.Section{}
	}

	seen := make(map[string]struct{})
	claim := func(id string) error {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateBlock, id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for i := range page.Sections {
		sec := &page.Sections[i]
		if sec.ID == "" {
			sec.ID = models.NewLocalID(models.PrefixSection)
		}
		if err := claim(sec.ID); err != nil {
			return err
		}
		if sec.Layout == "" {
			sec.Layout = models.SectionLayoutBoxed
		}
		if !models.ValidSectionLayout(sec.Layout) {
			return fmt.Errorf("%w: %q", ErrInvalidLayout, sec.Layout)
		}
		sec.Order = i
		if sec.Blocks == nil {
			sec.Blocks = []models.Block{}
		}

		for j := range sec.Blocks {
			blk := &sec.Blocks[j]
			if blk.ID == "" {
				blk.ID = models.NewLocalID(models.PrefixBlock)
			}
			if err := claim(blk.ID); err != nil {
				return err
			}
			if _, ok := s.reg.Definition(blk.Type); !ok {
				return fmt.Errorf("%w: %q", ErrUnknownBlock, blk.Type)
			}
			if blk.Content == nil {
				payload, err := s.reg.DefaultPayload(blk.Type)
				if err != nil {
					return err
				}
				blk.Content = payload
			}
		}
	}

	return nil
}

func (s *PageService) ensureSlugFree(ctx context.Context, pageSlug, excludeID string) error {
	taken, err := s.repo.SlugTaken(ctx, pageSlug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return storage.ErrSlugExists
	}
	return nil
}

func (s *PageService) invalidate(ctx context.Context, pageSlug string) {
	if s.cache != nil {
		s.cache.InvalidatePage(ctx, pageSlug)
	}
}

func saveResult(err error) string {
	switch {
	case errors.Is(err, storage.ErrVersionConflict), errors.Is(err, storage.ErrSlugExists):
		return "conflict"
	}
	return "error"
}
