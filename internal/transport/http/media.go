package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/storage/filestorage"
	"videepat_foods/internal/transport/http/dto/response"
)

// UploadMedia godoc
// @Summary Загрузка изображения или видео
// @Description Файл сохраняется на сервере, в блок страницы кладётся возвращённый url.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение или видео"
// @Success 201 {object} filestorage.Stored
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Router /api/media/ [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"
	log := r.log.With(slog.String("op", op))

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("no file in request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	stored, err := r.MediaStore.Save(c.Request().Context(), file)
	if err != nil {
		if errors.Is(err, filestorage.ErrTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("too_large", filestorage.ErrTooLarge.Error()))
		}
		return r.apiError(c, log, err)
	}

	log.Info("media uploaded", slog.String("path", stored.Path), slog.Int64("size", stored.Size))
	return c.JSON(http.StatusCreated, stored)
}
