package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type PageLayout string

const (
	PageLayoutDefault PageLayout = "default"
	PageLayoutLanding PageLayout = "landing"
	PageLayoutMinimal PageLayout = "minimal"
)

type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

type SectionLayout string

const (
	SectionLayoutFull  SectionLayout = "full"
	SectionLayoutBoxed SectionLayout = "boxed"
	SectionLayoutSplit SectionLayout = "split"
)

// Page страница витрины: упорядоченный набор секций
type Page struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Layout          PageLayout `json:"layout"`
	IsActive        bool       `json:"is_active"`
	Status          PageStatus `json:"status"`
	Sections        []Section  `json:"sections"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
}

// Section владеет своими блоками. Order дублирует позицию в Page.Sections.
type Section struct {
	ID     string        `json:"id"`
	Layout SectionLayout `json:"layout"`
	Styles SectionStyles `json:"styles"`
	Blocks []Block       `json:"blocks"`
	Order  int           `json:"order"`
}

// SectionStyles is the closed set of style keys a section understands.
// BackgroundColor and BackgroundImage paint the section, Padding is a CSS
// padding shorthand ("64px 0").
type SectionStyles struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	Padding         string `json:"padding,omitempty"`
}

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// BlockStyles is the closed set of style keys a block understands.
type BlockStyles struct {
	TextAlign       TextAlign `json:"textAlign,omitempty"`
	Color           string    `json:"color,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

type AnimationType string

const (
	AnimationNone    AnimationType = "none"
	AnimationFade    AnimationType = "fade"
	AnimationSlideUp AnimationType = "slide_up"
	AnimationZoom    AnimationType = "zoom"
)

// Animation entrance transition. Delay in seconds.
type Animation struct {
	Type  AnimationType `json:"type,omitempty"`
	Delay float64       `json:"delay,omitempty"`
}

// Enabled reports whether the block has an entrance transition at all.
func (a Animation) Enabled() bool {
	return a.Type != "" && a.Type != AnimationNone
}

type Visibility struct {
	Mobile  bool `json:"mobile"`
	Tablet  bool `json:"tablet"`
	Desktop bool `json:"desktop"`
}

func DefaultVisibility() Visibility {
	return Visibility{Mobile: true, Tablet: true, Desktop: true}
}

// Block единица контента. Форма Content определяется Type.
type Block struct {
	ID         string      `json:"id"`
	Type       BlockType   `json:"type"`
	Content    Payload     `json:"content"`
	Styles     BlockStyles `json:"styles"`
	Animation  Animation   `json:"animations"`
	Visibility Visibility  `json:"visibility"`
}

type blockWire struct {
	ID         string          `json:"id"`
	AltID      string          `json:"_id,omitempty"`
	Type       BlockType       `json:"type"`
	Content    json.RawMessage `json:"content"`
	Styles     BlockStyles     `json:"styles"`
	Animation  Animation       `json:"animations"`
	Visibility Visibility      `json:"visibility"`
}

// UnmarshalJSON decodes the content payload into the struct selected by type.
// Blocks of an unknown type decode with a nil Content.
// A missing visibility object means visible everywhere.
func (b *Block) UnmarshalJSON(data []byte) error {
	wire := blockWire{Visibility: DefaultVisibility()}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	// неизвестный тип не ломает страницу: блок остаётся без Content
	// и рендерится заглушкой
	payload, err := NewPayload(wire.Type)
	if err != nil {
		payload = nil
	} else if len(wire.Content) > 0 && string(wire.Content) != "null" {
		if err := json.Unmarshal(wire.Content, payload); err != nil {
			return fmt.Errorf("block %s content: %w", wire.Type, err)
		}
	}

	*b = Block{
		ID:         CanonicalID(wire.ID, wire.AltID),
		Type:       wire.Type,
		Content:    payload,
		Styles:     wire.Styles,
		Animation:  wire.Animation,
		Visibility: wire.Visibility,
	}
	return nil
}

func (s *Section) UnmarshalJSON(data []byte) error {
	type plain Section
	wire := struct {
		plain
		AltID string `json:"_id,omitempty"`
	}{plain: plain{Layout: SectionLayoutBoxed}}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Section(wire.plain)
	s.ID = CanonicalID(s.ID, wire.AltID)
	return nil
}

// Clone returns a deep copy: sections, blocks and payloads are not shared.
func (p Page) Clone() Page {
	out := p
	if p.Sections != nil {
		out.Sections = make([]Section, len(p.Sections))
		for i, sec := range p.Sections {
			out.Sections[i] = sec.Clone()
		}
	}
	return out
}

func (s Section) Clone() Section {
	out := s
	if s.Blocks != nil {
		out.Blocks = make([]Block, len(s.Blocks))
		for i, blk := range s.Blocks {
			out.Blocks[i] = blk.Clone()
		}
	}
	return out
}

func (b Block) Clone() Block {
	out := b
	if b.Content != nil {
		out.Content = b.Content.Clone()
	}
	return out
}

// CanonicalID выбирает идентификатор из пары id/_id
func CanonicalID(id, altID string) string {
	if id != "" {
		return id
	}
	return altID
}

func ValidPageLayout(l PageLayout) bool {
	switch l {
	case PageLayoutDefault, PageLayoutLanding, PageLayoutMinimal:
		return true
	}
	return false
}

func ValidSectionLayout(l SectionLayout) bool {
	switch l {
	case SectionLayoutFull, SectionLayoutBoxed, SectionLayoutSplit:
		return true
	}
	return false
}

func ValidPageStatus(s PageStatus) bool {
	return s == PageStatusDraft || s == PageStatusPublished
}
