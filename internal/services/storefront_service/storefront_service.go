package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/logger/sl"
	"videepat_foods/internal/lib/slug"
	"videepat_foods/internal/metrics"
	"videepat_foods/internal/render"
	"videepat_foods/internal/repository"
	"videepat_foods/internal/storage"
)

const (
	homeKey    = "home"
	storiesKey = "stories"
)

type PageSource interface {
	GetPublishedBySlug(ctx context.Context, slug string) (models.Page, error)
}

type StorySource interface {
	GetActiveStory(ctx context.Context, id string) (models.Story, error)
	ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error)
}

type CatalogSource interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	GetHero(ctx context.Context) (models.Hero, error)
}

// Rendered готовый фрагмент витрины вместе с мета-данными для <head>.
type Rendered struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	HTML        template.HTML `json:"html"`
}

// Home данные главной страницы
type Home struct {
	Hero       models.Hero
	Categories []models.Category
	Products   []models.Product
}

// StorefrontService отдаёт отрисованные страницы и истории.
// Кэш двухуровневый: L1 в памяти процесса, L2 в redis (общий для инстансов).
type StorefrontService struct {
	log      *slog.Logger
	pages    PageSource
	stories  StorySource
	catalog  CatalogSource
	renderer *render.Renderer
	l1       *cache.Cache
	l2       repository.RenderCache
	ttl      time.Duration
}

func NewStorefrontService(
	log *slog.Logger,
	pages PageSource,
	stories StorySource,
	catalog CatalogSource,
	renderer *render.Renderer,
	l2 repository.RenderCache,
	ttl time.Duration,
) *StorefrontService {
	return &StorefrontService{
		log:      log,
		pages:    pages,
		stories:  stories,
		catalog:  catalog,
		renderer: renderer,
		l1:       cache.New(ttl, 2*ttl),
		l2:       l2,
		ttl:      ttl,
	}
}

// RenderPage renders a published page by slug for the given device.
func (s *StorefrontService) RenderPage(ctx context.Context, raw string, device render.Device) (Rendered, error) {
	const op = "storefront_service.RenderPage"

	pageSlug := slug.Normalize(raw)
	if pageSlug == "" {
		return Rendered{}, fmt.Errorf("%s: %w", op, storage.ErrPageNotFound)
	}

	r, err := s.cached(ctx, pageKey(pageSlug, device), func() (Rendered, error) {
		page, err := s.pages.GetPublishedBySlug(ctx, pageSlug)
		if err != nil {
			return Rendered{}, err
		}

		var products []models.Product
		if hasProductList(page) {
			products, err = s.catalog.ListProducts(ctx, repository.ProductFilter{ActiveOnly: true})
			if err != nil {
				return Rendered{}, err
			}
		}

		title := page.MetaTitle
		if title == "" {
			title = page.Name
		}

		return Rendered{
			Title:       title,
			Description: page.MetaDescription,
			HTML:        s.renderer.Page(page, render.View{Device: device, Catalog: products}),
		}, nil
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

func (s *StorefrontService) RenderStory(ctx context.Context, id string) (Rendered, error) {
	const op = "storefront_service.RenderStory"

	r, err := s.cached(ctx, storyKey(id), func() (Rendered, error) {
		story, err := s.stories.GetActiveStory(ctx, id)
		if err != nil {
			return Rendered{}, err
		}

		return Rendered{
			Title:       story.Title,
			Description: story.ShortExcerpt,
			HTML:        s.renderer.Story(story),
		}, nil
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

// StoryList renders the cards of all active stories.
func (s *StorefrontService) StoryList(ctx context.Context) (Rendered, error) {
	const op = "storefront_service.StoryList"

	r, err := s.cached(ctx, storiesKey, func() (Rendered, error) {
		stories, err := s.stories.ListStories(ctx, true)
		if err != nil {
			return Rendered{}, err
		}

		return Rendered{
			Title:       "Our Stories",
			Description: "Stories from the village behind our products",
			HTML:        s.renderer.StoryCards(stories),
		}, nil
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

// Home loads hero, categories and products in parallel.
func (s *StorefrontService) Home(ctx context.Context) (Home, error) {
	const op = "storefront_service.Home"

	if v, ok := s.l1.Get(homeKey); ok {
		metrics.RenderCacheHits.WithLabelValues("l1").Inc()
		return v.(Home), nil
	}

	var home Home
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := s.catalog.GetHero(gctx)
		home.Hero = h
		return err
	})
	g.Go(func() error {
		c, err := s.catalog.ListCategories(gctx, true)
		home.Categories = c
		return err
	})
	g.Go(func() error {
		p, err := s.catalog.ListProducts(gctx, repository.ProductFilter{ActiveOnly: true})
		home.Products = p
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("failed to load home", slog.String("op", op), sl.Err(err))
		return Home{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RenderCacheMisses.Inc()
	s.l1.Set(homeKey, home, cache.DefaultExpiration)

	return home, nil
}

func (s *StorefrontService) InvalidatePage(ctx context.Context, pageSlug string) {
	s.drop(ctx, "page:"+pageSlug+":")
}

func (s *StorefrontService) InvalidateStory(ctx context.Context, id string) {
	s.drop(ctx, storyKey(id))
	s.drop(ctx, storiesKey)
}

// InvalidateCatalog drops the home page and every rendered page, since any
// page may hold a product list.
func (s *StorefrontService) InvalidateCatalog(ctx context.Context) {
	s.drop(ctx, homeKey)
	s.drop(ctx, "page:")
}

func (s *StorefrontService) cached(ctx context.Context, key string, build func() (Rendered, error)) (Rendered, error) {
	log := s.log.With(slog.String("key", key))

	if v, ok := s.l1.Get(key); ok {
		metrics.RenderCacheHits.WithLabelValues("l1").Inc()
		return v.(Rendered), nil
	}

	if s.l2 != nil {
		raw, err := s.l2.GetRendered(ctx, key)
		switch {
		case err == nil:
			var r Rendered
			uerr := json.Unmarshal([]byte(raw), &r)
			if uerr == nil {
				metrics.RenderCacheHits.WithLabelValues("l2").Inc()
				s.l1.Set(key, r, cache.DefaultExpiration)
				return r, nil
			}
			log.Warn("corrupt render cache entry", sl.Err(uerr))
		case !errors.Is(err, storage.ErrCacheMiss):
			log.Warn("render cache unavailable", sl.Err(err))
		}
	}

	metrics.RenderCacheMisses.Inc()
	r, err := build()
	if err != nil {
		return Rendered{}, err
	}

	s.l1.Set(key, r, cache.DefaultExpiration)
	if s.l2 != nil {
		b, err := json.Marshal(r)
		if err == nil {
			err = s.l2.SetRendered(ctx, key, string(b), s.ttl)
		}
		if err != nil {
			log.Warn("failed to store rendered page", sl.Err(err))
		}
	}

	return r, nil
}

func (s *StorefrontService) drop(ctx context.Context, prefix string) {
	for key := range s.l1.Items() {
		if strings.HasPrefix(key, prefix) {
			s.l1.Delete(key)
		}
	}

	if s.l2 != nil {
		if err := s.l2.DeleteRendered(ctx, prefix); err != nil {
			s.log.Warn("failed to invalidate render cache", slog.String("prefix", prefix), sl.Err(err))
		}
	}
}

func pageKey(pageSlug string, d render.Device) string {
	return "page:" + pageSlug + ":" + string(d)
}

func storyKey(id string) string {
	return "story:" + id
}

func hasProductList(page models.Page) bool {
	for _, sec := range page.Sections {
		for _, blk := range sec.Blocks {
			if blk.Type == models.BlockProductList {
				return true
			}
		}
	}
	return false
}
