package editor

import (
	"fmt"
	"strings"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
	"videepat_foods/internal/lib/slug"
)

const (
	defaultPageName       = "New Page"
	defaultSectionPadding = "40px 0"
)

type blockPos struct {
	section int
	block   int
}

// PageEditor держит одну страницу в памяти на время сессии редактирования.
// Индексы sections/blocks ведутся инкрементально, поиск по id за O(1).
type PageEditor struct {
	reg       *registry.Registry
	page      models.Page
	sections  map[string]int
	blocks    map[string]blockPos
	selection Selection
}

// NewPage starts an unsaved page seeded with one boxed section holding a text block.
func NewPage(reg *registry.Registry) *PageEditor {
	e := newPageEditor(reg)
	e.page = models.Page{
		Name:     defaultPageName,
		Layout:   models.PageLayoutDefault,
		IsActive: true,
		Sections: []models.Section{{
			ID:     models.NewLocalID(models.PrefixSection),
			Layout: models.SectionLayoutBoxed,
			Styles: models.SectionStyles{BackgroundColor: "transparent", Padding: "64px 0"},
			Blocks: []models.Block{{
				ID:   models.NewLocalID(models.PrefixBlock),
				Type: models.BlockText,
				Content: &models.TextPayload{
					Heading: "Welcome to Videepat Foods",
					Body:    "Fresh from our village to your table.",
				},
				Styles:     models.BlockStyles{TextAlign: models.AlignCenter},
				Animation:  models.Animation{Type: models.AnimationFade},
				Visibility: models.DefaultVisibility(),
			}},
		}},
	}
	e.reindexFrom(0)

	return e
}

// Load starts a session over a deep copy of a persisted page.
// Sections and blocks that arrive without an id get a local one.
func Load(reg *registry.Registry, page models.Page) *PageEditor {
	e := newPageEditor(reg)
	e.page = page.Clone()

	for i := range e.page.Sections {
		sec := &e.page.Sections[i]
		if sec.ID == "" {
			sec.ID = models.NewLocalID(models.PrefixSection)
		}
		if sec.Layout == "" {
			sec.Layout = models.SectionLayoutBoxed
		}
		sec.Order = i
		for j := range sec.Blocks {
			blk := &sec.Blocks[j]
			if blk.ID == "" {
				blk.ID = models.NewLocalID(models.PrefixBlock)
			}
			if blk.Content == nil {
				if payload, err := models.NewPayload(blk.Type); err == nil {
					blk.Content = payload
				}
			}
		}
	}
	e.reindexFrom(0)

	return e
}

func newPageEditor(reg *registry.Registry) *PageEditor {
	if reg == nil {
		reg = registry.Default()
	}
	return &PageEditor{
		reg:      reg,
		sections: make(map[string]int),
		blocks:   make(map[string]blockPos),
	}
}

// reindexFrom rewrites order and index entries for sections at position i and later.
func (e *PageEditor) reindexFrom(i int) {
	for si := i; si < len(e.page.Sections); si++ {
		sec := &e.page.Sections[si]
		sec.Order = si
		e.sections[sec.ID] = si
		e.reindexBlocks(si, 0)
	}
}

func (e *PageEditor) reindexBlocks(si, from int) {
	blocks := e.page.Sections[si].Blocks
	for bi := from; bi < len(blocks); bi++ {
		e.blocks[blocks[bi].ID] = blockPos{section: si, block: bi}
	}
}

func (e *PageEditor) ID() string { return e.page.ID }

func (e *PageEditor) IsNew() bool { return e.page.ID == "" }

func (e *PageEditor) Name() string { return e.page.Name }

func (e *PageEditor) Selection() Selection { return e.selection }

func (e *PageEditor) Registry() *registry.Registry { return e.reg }

// Sections returns a deep copy of the current section sequence.
func (e *PageEditor) Sections() []models.Section {
	out := make([]models.Section, len(e.page.Sections))
	for i, sec := range e.page.Sections {
		out[i] = sec.Clone()
	}
	return out
}

func (e *PageEditor) SectionIDs() []string {
	ids := make([]string, len(e.page.Sections))
	for i, sec := range e.page.Sections {
		ids[i] = sec.ID
	}
	return ids
}

func (e *PageEditor) SetName(name string) {
	e.page.Name = name
}

func (e *PageEditor) SetLayout(layout models.PageLayout) error {
	if !models.ValidPageLayout(layout) {
		return fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}
	e.page.Layout = layout
	return nil
}

// SetMeta overrides the title and description derived from the page name.
// Empty values fall back to the derived ones on snapshot.
func (e *PageEditor) SetMeta(title, description string) {
	e.page.MetaTitle = title
	e.page.MetaDescription = description
}

func (e *PageEditor) SetActive(active bool) {
	e.page.IsActive = active
}

// SetStatus switches between draft and published. A page that never had a
// status is published on save.
func (e *PageEditor) SetStatus(status models.PageStatus) error {
	if !models.ValidPageStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	e.page.Status = status
	return nil
}

// AddSection appends an empty boxed section and returns its id.
func (e *PageEditor) AddSection() string {
	sec := models.Section{
		ID:     models.NewLocalID(models.PrefixSection),
		Layout: models.SectionLayoutBoxed,
		Styles: models.SectionStyles{Padding: defaultSectionPadding},
		Blocks: []models.Block{},
		Order:  len(e.page.Sections),
	}
	e.page.Sections = append(e.page.Sections, sec)
	e.sections[sec.ID] = sec.Order

	return sec.ID
}

// DeleteSection removes the section with its blocks. Selection is cleared
// when it pointed at the section or one of its blocks.
func (e *PageEditor) DeleteSection(id string) error {
	si, ok := e.sections[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}

	for _, blk := range e.page.Sections[si].Blocks {
		delete(e.blocks, blk.ID)
		if e.selection.Kind == BlockSelected && e.selection.ID == blk.ID {
			e.selection = Selection{}
		}
	}
	if e.selection.Kind == SectionSelected && e.selection.ID == id {
		e.selection = Selection{}
	}

	delete(e.sections, id)
	e.page.Sections = append(e.page.Sections[:si], e.page.Sections[si+1:]...)
	e.reindexFrom(si)

	return nil
}

// ReorderSections replaces the section order. ids must be a permutation
// of the current section ids.
func (e *PageEditor) ReorderSections(ids []string) error {
	if !isPermutation(e.SectionIDs(), ids) {
		return ErrNotPermutation
	}

	reordered := make([]models.Section, len(ids))
	for i, id := range ids {
		reordered[i] = e.page.Sections[e.sections[id]]
	}
	e.page.Sections = reordered
	e.reindexFrom(0)

	return nil
}

// MoveSection shifts one section to position to, clamped to the valid range.
func (e *PageEditor) MoveSection(id string, to int) error {
	from, ok := e.sections[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}

	ids := e.SectionIDs()
	ids = append(ids[:from], ids[from+1:]...)
	to = clamp(to, 0, len(ids))
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)

	return e.ReorderSections(ids)
}

// AddBlock appends a block with the registry default payload. The target
// section must exist and be the current selection.
func (e *PageEditor) AddBlock(sectionID string, t models.BlockType) (string, error) {
	si, ok := e.sections[sectionID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	if e.selection.Kind != SectionSelected || e.selection.ID != sectionID {
		return "", ErrSectionNotSelected
	}

	payload, err := e.reg.DefaultPayload(t)
	if err != nil {
		return "", err
	}

	blk := models.Block{
		ID:         models.NewLocalID(models.PrefixBlock),
		Type:       t,
		Content:    payload,
		Visibility: models.DefaultVisibility(),
	}

	sec := &e.page.Sections[si]
	sec.Blocks = append(sec.Blocks, blk)
	e.blocks[blk.ID] = blockPos{section: si, block: len(sec.Blocks) - 1}

	return blk.ID, nil
}

// UpdateBlockField replaces one payload field. A missing block is a no-op.
func (e *PageEditor) UpdateBlockField(blockID, field, value string) error {
	blk := e.block(blockID)
	if blk == nil || blk.Content == nil {
		return nil
	}
	return blk.Content.Set(field, value)
}

// UpdateSelectedBlockField mirrors the property panel: it edits the selected block.
func (e *PageEditor) UpdateSelectedBlockField(field, value string) error {
	if e.selection.Kind != BlockSelected {
		return nil
	}
	return e.UpdateBlockField(e.selection.ID, field, value)
}

// DeleteBlock removes exactly one block from the section.
func (e *PageEditor) DeleteBlock(sectionID, blockID string) error {
	si, ok := e.sections[sectionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	pos, ok := e.blocks[blockID]
	if !ok || pos.section != si {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}

	sec := &e.page.Sections[si]
	sec.Blocks = append(sec.Blocks[:pos.block], sec.Blocks[pos.block+1:]...)
	delete(e.blocks, blockID)
	e.reindexBlocks(si, pos.block)

	if e.selection.Kind == BlockSelected && e.selection.ID == blockID {
		e.selection = Selection{}
	}

	return nil
}

// MoveBlock reorders a block inside its section.
func (e *PageEditor) MoveBlock(blockID string, to int) error {
	pos, ok := e.blocks[blockID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}

	blocks := e.page.Sections[pos.section].Blocks
	blk := blocks[pos.block]
	blocks = append(blocks[:pos.block], blocks[pos.block+1:]...)
	to = clamp(to, 0, len(blocks))
	blocks = append(blocks[:to], append([]models.Block{blk}, blocks[to:]...)...)

	e.page.Sections[pos.section].Blocks = blocks
	e.reindexBlocks(pos.section, 0)

	return nil
}

func (e *PageEditor) SetSectionLayout(id string, layout models.SectionLayout) error {
	sec := e.section(id)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	if !models.ValidSectionLayout(layout) {
		return fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}
	sec.Layout = layout
	return nil
}

// SetSectionStyle sets one of backgroundColor, backgroundImage or padding.
func (e *PageEditor) SetSectionStyle(id, key, value string) error {
	sec := e.section(id)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}

	switch key {
	case "backgroundColor":
		sec.Styles.BackgroundColor = value
	case "backgroundImage":
		sec.Styles.BackgroundImage = value
	case "padding":
		sec.Styles.Padding = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStyle, key)
	}
	return nil
}

// SetBlockStyle sets one of textAlign, color or backgroundColor.
func (e *PageEditor) SetBlockStyle(id, key, value string) error {
	blk := e.block(id)
	if blk == nil {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	switch key {
	case "textAlign":
		switch models.TextAlign(value) {
		case models.AlignLeft, models.AlignCenter, models.AlignRight, "":
			blk.Styles.TextAlign = models.TextAlign(value)
		default:
			return fmt.Errorf("%w: textAlign %q", models.ErrInvalidValue, value)
		}
	case "color":
		blk.Styles.Color = value
	case "backgroundColor":
		blk.Styles.BackgroundColor = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStyle, key)
	}
	return nil
}

func (e *PageEditor) SetBlockAnimation(id string, anim models.Animation) error {
	blk := e.block(id)
	if blk == nil {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	switch anim.Type {
	case "", models.AnimationNone, models.AnimationFade, models.AnimationSlideUp, models.AnimationZoom:
	default:
		return fmt.Errorf("%w: animation %q", models.ErrInvalidValue, anim.Type)
	}
	if anim.Delay < 0 {
		anim.Delay = 0
	}
	blk.Animation = anim
	return nil
}

func (e *PageEditor) SetBlockVisibility(id string, v models.Visibility) error {
	blk := e.block(id)
	if blk == nil {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	blk.Visibility = v
	return nil
}

// Select makes exactly one element current. Unknown ids are rejected and
// leave the selection unchanged.
func (e *PageEditor) Select(kind SelectionKind, id string) error {
	switch kind {
	case SectionSelected:
		if _, ok := e.sections[id]; !ok {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
		}
	case BlockSelected:
		if _, ok := e.blocks[id]; !ok {
			return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
		}
	default:
		e.selection = Selection{}
		return nil
	}

	e.selection = Selection{Kind: kind, ID: id}
	return nil
}

func (e *PageEditor) ClearSelection() {
	e.selection = Selection{}
}

// SelectedBlock returns a copy of the selected block.
func (e *PageEditor) SelectedBlock() (models.Block, bool) {
	if e.selection.Kind != BlockSelected {
		return models.Block{}, false
	}
	blk := e.block(e.selection.ID)
	if blk == nil {
		return models.Block{}, false
	}
	return blk.Clone(), true
}

func (e *PageEditor) SelectedSection() (models.Section, bool) {
	if e.selection.Kind != SectionSelected {
		return models.Section{}, false
	}
	sec := e.section(e.selection.ID)
	if sec == nil {
		return models.Section{}, false
	}
	return sec.Clone(), true
}

// Block returns a copy of any block by id.
func (e *PageEditor) Block(id string) (models.Block, bool) {
	blk := e.block(id)
	if blk == nil {
		return models.Block{}, false
	}
	return blk.Clone(), true
}

// SelectedFields returns the property-panel fields for the selected block.
func (e *PageEditor) SelectedFields() []registry.Field {
	blk, ok := e.SelectedBlock()
	if !ok {
		return nil
	}
	return e.reg.Fields(blk.Type)
}

func (e *PageEditor) section(id string) *models.Section {
	si, ok := e.sections[id]
	if !ok {
		return nil
	}
	return &e.page.Sections[si]
}

func (e *PageEditor) block(id string) *models.Block {
	pos, ok := e.blocks[id]
	if !ok {
		return nil
	}
	return &e.page.Sections[pos.section].Blocks[pos.block]
}

func (e *PageEditor) Validate() error {
	if strings.TrimSpace(e.page.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Snapshot returns the page as it would be saved: a deep copy with slug
// and meta derived from the name. New pages start at version 1 and are
// published unless SetStatus chose otherwise; loaded pages keep their status.
func (e *PageEditor) Snapshot() models.Page {
	p := e.page.Clone()

	p.Slug = slug.Make(p.Name)
	if p.MetaTitle == "" {
		p.MetaTitle = p.Name
	}
	if p.MetaDescription == "" {
		p.MetaDescription = "Description for " + p.Name
	}
	if p.Layout == "" {
		p.Layout = models.PageLayoutDefault
	}
	if p.Status == "" {
		p.Status = models.PageStatusPublished
	}
	if p.ID == "" || p.Version == 0 {
		p.Version = 1
	}
	if p.Sections == nil {
		p.Sections = []models.Section{}
	}

	return p
}

// adopt takes server assigned identity and bookkeeping after a successful save.
// The section tree stays as edited locally.
func (e *PageEditor) adopt(saved models.Page) {
	if saved.ID != "" {
		e.page.ID = saved.ID
	}
	if saved.Version > 0 {
		e.page.Version = saved.Version
	}
	if saved.Slug != "" {
		e.page.Slug = saved.Slug
	}
	if saved.Status != "" {
		e.page.Status = saved.Status
	}
	e.page.CreatedAt = saved.CreatedAt
	e.page.UpdatedAt = saved.UpdatedAt
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
