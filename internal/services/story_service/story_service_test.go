package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/editor"
	"videepat_foods/internal/lib/logger/handlers/slogdiscard"
	"videepat_foods/internal/storage"
)

type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	args := m.Called(ctx, story)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryRepository) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	args := m.Called(ctx, story)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryRepository) GetStoryByID(ctx context.Context, id string) (models.Story, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Story), args.Error(1)
}

func (m *MockStoryRepository) ListStories(ctx context.Context, activeOnly bool) ([]models.Story, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryRepository) DeleteStory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateStory(ctx context.Context, id string) {
	m.Called(ctx, id)
}

func validStory() models.Story {
	body := "It began with one buffalo."
	return models.Story{
		Title:          "Roots",
		ThumbnailImage: "thumb.jpg",
		HeroImage:      "hero.jpg",
		ShortExcerpt:   "How it began",
		IsActive:       true,
		Content:        []models.StoryContent{{Type: models.StoryText, Content: &body}},
	}
}

func TestStoryService_CreateStory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		story     func() models.Story
		mockSetup func(repo *MockStoryRepository)
		wantErr   error
	}{
		{
			name:  "success assigns block ids",
			story: validStory,
			mockSetup: func(repo *MockStoryRepository) {
				repo.On("CreateStory", ctx, mock.MatchedBy(func(s models.Story) bool {
					return len(s.Content) == 1 && s.Content[0].ID != ""
				})).Return(models.Story{ID: "st1"}, nil).Once()
			},
		},
		{
			name: "missing thumbnail",
			story: func() models.Story {
				s := validStory()
				s.ThumbnailImage = ""
				return s
			},
			mockSetup: func(*MockStoryRepository) {},
			wantErr:   editor.ErrThumbnailRequired,
		},
		{
			name: "blank title",
			story: func() models.Story {
				s := validStory()
				s.Title = "  "
				return s
			},
			mockSetup: func(*MockStoryRepository) {},
			wantErr:   editor.ErrTitleRequired,
		},
		{
			name: "unknown block type",
			story: func() models.Story {
				s := validStory()
				s.Content = append(s.Content, models.StoryContent{Type: "quote"})
				return s
			},
			mockSetup: func(*MockStoryRepository) {},
			wantErr:   editor.ErrInvalidBlockType,
		},
		{
			name:  "repository error",
			story: validStory,
			mockSetup: func(repo *MockStoryRepository) {
				repo.On("CreateStory", ctx, mock.Anything).Return(models.Story{}, errors.New("db down")).Once()
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockStoryRepository)
			tt.mockSetup(repo)

			service := NewStoryService(slogdiscard.NewDiscardLogger(), repo, nil)
			created, err := service.CreateStory(ctx, tt.story())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "st1", created.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestStoryService_UpdateAndDeleteInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStoryRepository)
	inv := new(MockInvalidator)

	story := validStory()
	story.ID = "st1"

	repo.On("UpdateStory", ctx, mock.Anything).Return(story, nil).Once()
	repo.On("DeleteStory", ctx, "st1").Return(nil).Once()
	inv.On("InvalidateStory", ctx, "st1").Twice()

	service := NewStoryService(slogdiscard.NewDiscardLogger(), repo, inv)
	_, err := service.UpdateStory(ctx, story)
	require.NoError(t, err)
	require.NoError(t, service.DeleteStory(ctx, "st1"))

	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestStoryService_GetActiveStory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStoryRepository)
	repo.On("GetStoryByID", ctx, "hidden").Return(models.Story{ID: "hidden", IsActive: false}, nil).Once()
	repo.On("GetStoryByID", ctx, "shown").Return(models.Story{ID: "shown", IsActive: true}, nil).Once()

	service := NewStoryService(slogdiscard.NewDiscardLogger(), repo, nil)

	_, err := service.GetActiveStory(ctx, "hidden")
	assert.ErrorIs(t, err, storage.ErrStoryNotFound)

	got, err := service.GetActiveStory(ctx, "shown")
	require.NoError(t, err)
	assert.Equal(t, "shown", got.ID)
}
