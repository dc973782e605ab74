package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/transport/http/dto/response"
)

// ListPages godoc
// @Summary Список страниц
// @Description Все страницы конструктора, новые первыми.
// @Tags pages
// @Produce json
// @Success 200 {array} response.PageResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pages/ [get]
func (r *Routers) ListPages(c echo.Context) error {
	const op = "http.routers.ListPages"
	log := r.log.With(slog.String("op", op))

	pages, err := r.PageService.ListPages(c.Request().Context())
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.List(pages, response.Page))
}

// GetPage godoc
// @Summary Получение страницы
// @Tags pages
// @Produce json
// @Param id path string true "ID страницы"
// @Success 200 {object} response.PageResponse
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Router /api/pages/{id}/ [get]
func (r *Routers) GetPage(c echo.Context) error {
	const op = "http.routers.GetPage"
	log := r.log.With(slog.String("op", op), slog.String("page_id", c.Param("id")))

	page, err := r.PageService.GetPage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Page(page))
}

// CreatePage godoc
// @Summary Создание страницы
// @Description Slug и мета-поля выводятся из названия, если не заданы.
// @Tags pages
// @Accept json
// @Produce json
// @Param request body models.Page true "Страница"
// @Success 201 {object} response.PageResponse
// @Failure 400 {object} response.ErrorResponse "Невалидная страница или занятый slug"
// @Router /api/pages/ [post]
func (r *Routers) CreatePage(c echo.Context) error {
	const op = "http.routers.CreatePage"
	log := r.log.With(slog.String("op", op))

	var page models.Page
	if err := c.Bind(&page); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", bindDetails(err)))
	}
	page.ID = ""

	created, err := r.PageService.CreatePage(c.Request().Context(), page)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Page(created))
}

// UpdatePage godoc
// @Summary Замена страницы
// @Description Полная замена дерева. Ненулевая version проверяется: устаревшая копия получает 409.
// @Tags pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param request body models.Page true "Страница"
// @Success 200 {object} response.PageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Конфликт версий"
// @Router /api/pages/{id}/ [put]
func (r *Routers) UpdatePage(c echo.Context) error {
	const op = "http.routers.UpdatePage"
	log := r.log.With(slog.String("op", op), slog.String("page_id", c.Param("id")))

	var page models.Page
	if err := c.Bind(&page); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", bindDetails(err)))
	}
	page.ID = c.Param("id")

	updated, err := r.PageService.UpdatePage(c.Request().Context(), page)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Page(updated))
}

// DeletePage godoc
// @Summary Удаление страницы
// @Tags pages
// @Param id path string true "ID страницы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/pages/{id}/ [delete]
func (r *Routers) DeletePage(c echo.Context) error {
	const op = "http.routers.DeletePage"
	log := r.log.With(slog.String("op", op), slog.String("page_id", c.Param("id")))

	if err := r.PageService.DeletePage(c.Request().Context(), c.Param("id")); err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Message("Page deleted"))
}

// ListStories godoc
// @Summary Список историй
// @Tags stories
// @Produce json
// @Param active query bool false "Только активные"
// @Success 200 {array} response.StoryResponse
// @Router /api/stories/ [get]
func (r *Routers) ListStories(c echo.Context) error {
	const op = "http.routers.ListStories"
	log := r.log.With(slog.String("op", op))

	stories, err := r.StoryService.ListStories(c.Request().Context(), c.QueryParam("active") == "true")
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.List(stories, response.Story))
}

// GetStory godoc
// @Summary Получение истории
// @Tags stories
// @Produce json
// @Param id path string true "ID истории"
// @Success 200 {object} response.StoryResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/stories/{id}/ [get]
func (r *Routers) GetStory(c echo.Context) error {
	const op = "http.routers.GetStory"
	log := r.log.With(slog.String("op", op), slog.String("story_id", c.Param("id")))

	story, err := r.StoryService.GetStory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Story(story))
}

// CreateStory godoc
// @Summary Создание истории
// @Tags stories
// @Accept json
// @Produce json
// @Param request body models.Story true "История"
// @Success 201 {object} response.StoryResponse
// @Failure 400 {object} response.ErrorResponse "Не заполнены обязательные поля"
// @Router /api/stories/ [post]
func (r *Routers) CreateStory(c echo.Context) error {
	const op = "http.routers.CreateStory"
	log := r.log.With(slog.String("op", op))

	var story models.Story
	if err := c.Bind(&story); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", bindDetails(err)))
	}
	story.ID = ""

	created, err := r.StoryService.CreateStory(c.Request().Context(), story)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.Story(created))
}

// UpdateStory godoc
// @Summary Замена истории
// @Tags stories
// @Accept json
// @Produce json
// @Param id path string true "ID истории"
// @Param request body models.Story true "История"
// @Success 200 {object} response.StoryResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/stories/{id}/ [put]
func (r *Routers) UpdateStory(c echo.Context) error {
	const op = "http.routers.UpdateStory"
	log := r.log.With(slog.String("op", op), slog.String("story_id", c.Param("id")))

	var story models.Story
	if err := c.Bind(&story); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", bindDetails(err)))
	}
	story.ID = c.Param("id")

	updated, err := r.StoryService.UpdateStory(c.Request().Context(), story)
	if err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Story(updated))
}

// DeleteStory godoc
// @Summary Удаление истории
// @Tags stories
// @Param id path string true "ID истории"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/stories/{id}/ [delete]
func (r *Routers) DeleteStory(c echo.Context) error {
	const op = "http.routers.DeleteStory"
	log := r.log.With(slog.String("op", op), slog.String("story_id", c.Param("id")))

	if err := r.StoryService.DeleteStory(c.Request().Context(), c.Param("id")); err != nil {
		return r.apiError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Message("Story deleted"))
}
