package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"videepat_foods/internal/domain/models"
)

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("only images and videos can be uploaded")
	ErrInvalidPath     = errors.New("invalid media path")
)

// Stored описывает сохранённый файл. URL можно сразу класть в блок страницы.
type Stored struct {
	URL  string           `json:"url"`
	Path string           `json:"path"`
	Kind models.MediaKind `json:"media_type"`
	MIME string           `json:"mime"`
	Size int64            `json:"size"`
}

// LocalFileStorage хранит загрузки редактора на диске и раздаёт их по baseURL.
type LocalFileStorage struct {
	baseDir string // например ./uploads
	baseURL string // например /uploads
	maxSize int64
}

func New(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	const op = "filestorage.New"

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Save определяет тип по содержимому, а не по имени файла, и кладёт файл
// в <kind>/<uuid><ext>. Имя от клиента не используется.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader) (Stored, error) {
	const op = "filestorage.Save"

	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return Stored{}, fmt.Errorf("%s: %w: %d bytes", op, ErrTooLarge, file.Size)
	}

	src, err := file.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return Stored{}, fmt.Errorf("%s: %w", op, err)
	}
	kind, ok := mediaKind(mt)
	if !ok {
		return Stored{}, fmt.Errorf("%s: %w: %s", op, ErrUnsupportedType, mt.String())
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stored{}, fmt.Errorf("%s: %w", op, err)
	}

	rel := path.Join(string(kind), uuid.NewString()+mt.Extension())
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Stored{}, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return Stored{}, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(full)
			return Stored{}, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(full)
		return Stored{}, ctx.Err()
	}

	return Stored{
		URL:  s.baseURL + "/" + rel,
		Path: rel,
		Kind: kind,
		MIME: mt.String(),
		Size: size,
	}, nil
}

// Delete удаляет файл по относительному пути из Stored.Path.
func (s *LocalFileStorage) Delete(_ context.Context, rel string) error {
	const op = "filestorage.Delete"

	clean := path.Clean("/" + rel)[1:]
	if clean == "" || clean != rel {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidPath, rel)
	}

	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(clean))); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *LocalFileStorage) Dir() string {
	return s.baseDir
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func mediaKind(mt *mimetype.MIME) (models.MediaKind, bool) {
	// svg может нести скрипты, а раздаётся с того же origin
	if mt.Is("image/svg+xml") {
		return "", false
	}
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "image/"):
			return models.MediaKindImage, true
		case strings.HasPrefix(m.String(), "video/"):
			return models.MediaKindVideo, true
		}
	}
	return "", false
}
