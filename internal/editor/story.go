package editor

import (
	"fmt"
	"strconv"
	"strings"

	"videepat_foods/internal/domain/models"
)

// StoryPatch частичное обновление блока истории; nil поля не меняются
type StoryPatch struct {
	Content *string
	URL     *string
	Caption *string
}

type StoryEditor struct {
	story models.Story
	index map[string]int
}

// NewStory starts an empty, active story.
func NewStory() *StoryEditor {
	return &StoryEditor{
		story: models.Story{IsActive: true, Content: []models.StoryContent{}},
		index: make(map[string]int),
	}
}

// LoadStory starts a session over a deep copy; blocks without ids get local ones.
func LoadStory(story models.Story) *StoryEditor {
	e := &StoryEditor{story: story.Clone(), index: make(map[string]int)}
	if e.story.Content == nil {
		e.story.Content = []models.StoryContent{}
	}
	for i := range e.story.Content {
		if e.story.Content[i].ID == "" {
			e.story.Content[i].ID = models.NewLocalID(models.PrefixStory)
		}
	}
	e.reindexFrom(0)

	return e
}

func (e *StoryEditor) reindexFrom(i int) {
	for ; i < len(e.story.Content); i++ {
		e.index[e.story.Content[i].ID] = i
	}
}

func (e *StoryEditor) ID() string { return e.story.ID }

func (e *StoryEditor) IsNew() bool { return e.story.ID == "" }

func (e *StoryEditor) BlockIDs() []string {
	ids := make([]string, len(e.story.Content))
	for i, c := range e.story.Content {
		ids[i] = c.ID
	}
	return ids
}

// AddBlock inserts a block of type t at index, or appends when index is nil
// or past the end. Returns the new block id.
func (e *StoryEditor) AddBlock(t models.StoryBlockType, index *int) (string, error) {
	if !models.ValidStoryBlockType(t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlockType, t)
	}

	blk := models.NewStoryContent(t)
	at := len(e.story.Content)
	if index != nil {
		at = clamp(*index, 0, len(e.story.Content))
	}

	content := e.story.Content
	content = append(content[:at], append([]models.StoryContent{blk}, content[at:]...)...)
	e.story.Content = content
	e.reindexFrom(at)

	return blk.ID, nil
}

func (e *StoryEditor) UpdateBlock(id string, patch StoryPatch) error {
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	blk := &e.story.Content[i]
	if patch.Content != nil {
		v := *patch.Content
		blk.Content = &v
	}
	if patch.URL != nil {
		v := *patch.URL
		blk.URL = &v
	}
	if patch.Caption != nil {
		v := *patch.Caption
		blk.Caption = &v
	}
	return nil
}

func (e *StoryEditor) RemoveBlock(id string) error {
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	e.story.Content = append(e.story.Content[:i], e.story.Content[i+1:]...)
	delete(e.index, id)
	e.reindexFrom(i)

	return nil
}

func (e *StoryEditor) MoveBlock(id string, to int) error {
	from, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	ids := e.BlockIDs()
	ids = append(ids[:from], ids[from+1:]...)
	to = clamp(to, 0, len(ids))
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)

	return e.ReorderBlocks(ids)
}

// ReorderBlocks replaces the block order; ids must be a permutation of the current ids.
func (e *StoryEditor) ReorderBlocks(ids []string) error {
	if !isPermutation(e.BlockIDs(), ids) {
		return ErrNotPermutation
	}

	reordered := make([]models.StoryContent, len(ids))
	for i, id := range ids {
		reordered[i] = e.story.Content[e.index[id]]
	}
	e.story.Content = reordered
	e.reindexFrom(0)

	return nil
}

// SetField sets one of the story's own fields by its wire name.
func (e *StoryEditor) SetField(field, value string) error {
	switch field {
	case "title":
		e.story.Title = value
	case "subtitle":
		e.story.Subtitle = value
	case "thumbnailImage":
		e.story.ThumbnailImage = value
	case "heroImage":
		e.story.HeroImage = value
	case "shortExcerpt":
		e.story.ShortExcerpt = value
	case "is_active":
		active, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: is_active %q", models.ErrInvalidValue, value)
		}
		e.story.IsActive = active
	default:
		return fmt.Errorf("%w: story has no field %q", models.ErrUnknownField, field)
	}
	return nil
}

// Validate checks required fields in the order the editor reports them.
func (e *StoryEditor) Validate() error {
	switch {
	case strings.TrimSpace(e.story.Title) == "":
		return ErrTitleRequired
	case e.story.ThumbnailImage == "":
		return ErrThumbnailRequired
	case e.story.HeroImage == "":
		return ErrHeroRequired
	case e.story.ShortExcerpt == "":
		return ErrExcerptRequired
	}
	return nil
}

func (e *StoryEditor) Snapshot() models.Story {
	return e.story.Clone()
}

func (e *StoryEditor) adopt(saved models.Story) {
	if saved.ID != "" {
		e.story.ID = saved.ID
	}
	e.story.CreatedAt = saved.CreatedAt
	e.story.UpdatedAt = saved.UpdatedAt
}
