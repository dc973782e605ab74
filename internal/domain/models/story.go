package models

import (
	"encoding/json"
	"time"
)

type StoryBlockType string

const (
	StoryText       StoryBlockType = "text"
	StoryImage      StoryBlockType = "image"
	StoryVideo      StoryBlockType = "video"
	StoryHeading    StoryBlockType = "heading"
	StorySubheading StoryBlockType = "subheading"
)

func ValidStoryBlockType(t StoryBlockType) bool {
	switch t {
	case StoryText, StoryImage, StoryVideo, StoryHeading, StorySubheading:
		return true
	}
	return false
}

// IsMedia reports whether the block carries url and caption instead of text.
func (t StoryBlockType) IsMedia() bool {
	return t == StoryImage || t == StoryVideo
}

// Story история бренда: карточка в списке и полный текст из блоков
type Story struct {
	ID             string         `json:"id,omitempty"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle"`
	ThumbnailImage string         `json:"thumbnailImage"`
	HeroImage      string         `json:"heroImage"`
	ShortExcerpt   string         `json:"shortExcerpt"`
	IsActive       bool           `json:"is_active"`
	Content        []StoryContent `json:"fullStoryContent"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}

// StoryContent блок истории. Content заполнен у текстовых типов,
// URL и Caption у image/video.
type StoryContent struct {
	ID      string         `json:"id"`
	Type    StoryBlockType `json:"type"`
	Content *string        `json:"content,omitempty"`
	URL     *string        `json:"url,omitempty"`
	Caption *string        `json:"caption,omitempty"`
}

// NewStoryContent returns a block of type t with the fields of its kind
// initialised to empty strings.
func NewStoryContent(t StoryBlockType) StoryContent {
	c := StoryContent{ID: NewLocalID(PrefixStory), Type: t}
	if t.IsMedia() {
		c.URL, c.Caption = new(string), new(string)
	} else {
		c.Content = new(string)
	}
	return c
}

// Text returns the value of a possibly absent field.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Story) UnmarshalJSON(data []byte) error {
	type plain Story
	wire := struct {
		plain
		AltID string `json:"_id,omitempty"`
	}{plain: plain{IsActive: true}}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Story(wire.plain)
	s.ID = CanonicalID(s.ID, wire.AltID)
	return nil
}

func (c *StoryContent) UnmarshalJSON(data []byte) error {
	type plain StoryContent
	wire := struct {
		plain
		AltID string `json:"_id,omitempty"`
	}{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*c = StoryContent(wire.plain)
	c.ID = CanonicalID(c.ID, wire.AltID)
	return nil
}

func (s Story) Clone() Story {
	out := s
	if s.Content != nil {
		out.Content = make([]StoryContent, len(s.Content))
		for i, c := range s.Content {
			out.Content[i] = c.Clone()
		}
	}
	return out
}

func (c StoryContent) Clone() StoryContent {
	out := c
	out.Content = cloneString(c.Content)
	out.URL = cloneString(c.URL)
	out.Caption = cloneString(c.Caption)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
