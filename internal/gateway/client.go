// Package gateway is the HTTP client of the content API. Editor sessions use
// it as their PageSaver and StorySaver.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/sl"
)

var ErrNotFound = errors.New("resource not found")

// APIError ответ сервера со статусом вне 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Client struct {
	log        *slog.Logger
	baseURL    string
	token      string
	httpClient *http.Client
}

var (
	_ editor.PageSaver  = (*Client)(nil)
	_ editor.StorySaver = (*Client)(nil)
)

func New(log *slog.Logger, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("gateway base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("gateway base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		log:        log,
		baseURL:    base,
		token:      opts.Token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) ListPages(ctx context.Context) ([]models.Page, error) {
	return list(ctx, c, "/api/pages/", setPageID)
}

func (c *Client) GetPage(ctx context.Context, id string) (models.Page, error) {
	return one[models.Page](ctx, c, http.MethodGet, "/api/pages/"+url.PathEscape(id)+"/", nil, setPageID)
}

func (c *Client) CreatePage(ctx context.Context, page models.Page) (models.Page, error) {
	return one(ctx, c, http.MethodPost, "/api/pages/", page, setPageID)
}

// UpdatePage replaces the stored page. The version field travels with the
// body, so a stale copy gets a 409.
func (c *Client) UpdatePage(ctx context.Context, page models.Page) (models.Page, error) {
	if page.ID == "" {
		return models.Page{}, errors.New("gateway.UpdatePage: page id is required")
	}
	return one(ctx, c, http.MethodPut, "/api/pages/"+url.PathEscape(page.ID)+"/", page, setPageID)
}

func (c *Client) DeletePage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/pages/"+url.PathEscape(id)+"/", nil, nil)
}

func (c *Client) ListStories(ctx context.Context) ([]models.Story, error) {
	return list(ctx, c, "/api/stories/", setStoryID)
}

func (c *Client) GetStory(ctx context.Context, id string) (models.Story, error) {
	return one[models.Story](ctx, c, http.MethodGet, "/api/stories/"+url.PathEscape(id)+"/", nil, setStoryID)
}

func (c *Client) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	return one(ctx, c, http.MethodPost, "/api/stories/", story, setStoryID)
}

func (c *Client) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	if story.ID == "" {
		return models.Story{}, errors.New("gateway.UpdateStory: story id is required")
	}
	return one(ctx, c, http.MethodPut, "/api/stories/"+url.PathEscape(story.ID)+"/", story, setStoryID)
}

func (c *Client) DeleteStory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/stories/"+url.PathEscape(id)+"/", nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	return list(ctx, c, "/api/products/", func(p *models.Product, id string) { p.ID = id })
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list(ctx, c, "/api/categories/", func(cat *models.Category, id string) { cat.ID = id })
}

func (c *Client) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	return list(ctx, c, "/api/coupons/", func(cp *models.Coupon, id string) { cp.ID = id })
}

func (c *Client) GetHero(ctx context.Context) (models.Hero, error) {
	return one[models.Hero](ctx, c, http.MethodGet, "/api/hero/", nil, setHeroID)
}

func (c *Client) UpdateHero(ctx context.Context, hero models.Hero) (models.Hero, error) {
	return one(ctx, c, http.MethodPut, "/api/hero/", hero, setHeroID)
}

func setPageID(p *models.Page, id string)   { p.ID = id }
func setStoryID(s *models.Story, id string) { s.ID = id }
func setHeroID(h *models.Hero, id string)   { h.ID = id }

// ids читает оба варианта идентификатора: старые клиенты отдают _id.
type ids struct {
	ID    string `json:"id"`
	AltID string `json:"_id"`
}

func one[T any](ctx context.Context, c *Client, method, path string, body any, setID func(*T, string)) (T, error) {
	var out T
	var raw json.RawMessage
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return out, err
	}

	if err := decode(raw, &out, setID); err != nil {
		return out, fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}

	return out, nil
}

func list[T any](ctx context.Context, c *Client, path string, setID func(*T, string)) ([]T, error) {
	var raws []json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raws); err != nil {
		return nil, err
	}

	out := make([]T, len(raws))
	for i, raw := range raws {
		if err := decode(raw, &out[i], setID); err != nil {
			return nil, fmt.Errorf("gateway: decode %s item %d: %w", path, i, err)
		}
	}

	return out, nil
}

func decode[T any](raw json.RawMessage, out *T, setID func(*T, string)) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	var id ids
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	setID(out, models.CanonicalID(id.ID, id.AltID))

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "gateway.Client.do"
	log := c.log.With(slog.String("op", op), slog.String("method", method), slog.String("path", path))

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		log.Warn("api returned error", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}

	return nil
}

func errorMessage(data []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		for _, m := range []string{payload.Error, payload.Message, payload.Details} {
			if m = strings.TrimSpace(m); m != "" {
				return m
			}
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(status)
}
