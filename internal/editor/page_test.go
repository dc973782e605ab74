package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
)

func newEditor(t *testing.T) *PageEditor {
	t.Helper()
	return NewPage(registry.Default())
}

func TestNewPage_Seed(t *testing.T) {
	e := newEditor(t)

	sections := e.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, models.SectionLayoutBoxed, sections[0].Layout)
	require.Len(t, sections[0].Blocks, 1)
	assert.Equal(t, models.BlockText, sections[0].Blocks[0].Type)
	assert.Equal(t, NoSelection, e.Selection().Kind)
	assert.True(t, e.IsNew())
}

func TestAddSection_DeleteSection_RoundTrip(t *testing.T) {
	e := newEditor(t)
	first := e.AddSection()
	before := e.Sections()

	id := e.AddSection()
	require.Len(t, e.Sections(), len(before)+1)
	assert.Equal(t, len(before), e.Sections()[len(before)].Order)

	require.NoError(t, e.DeleteSection(id))
	assert.Equal(t, before, e.Sections())
	assert.Contains(t, e.SectionIDs(), first)
}

func TestAddSection_NotIdempotent(t *testing.T) {
	e := newEditor(t)
	a, b := e.AddSection(), e.AddSection()
	assert.NotEqual(t, a, b)
	assert.Len(t, e.SectionIDs(), 3)
}

func TestDeleteSection_ClearsSelection(t *testing.T) {
	t.Run("section selected", func(t *testing.T) {
		e := newEditor(t)
		id := e.AddSection()
		require.NoError(t, e.Select(SectionSelected, id))

		require.NoError(t, e.DeleteSection(id))
		assert.Equal(t, Selection{}, e.Selection())
	})

	t.Run("block inside selected", func(t *testing.T) {
		e := newEditor(t)
		id := e.AddSection()
		require.NoError(t, e.Select(SectionSelected, id))
		blk, err := e.AddBlock(id, models.BlockImage)
		require.NoError(t, err)
		require.NoError(t, e.Select(BlockSelected, blk))

		require.NoError(t, e.DeleteSection(id))
		assert.Equal(t, NoSelection, e.Selection().Kind)
		_, ok := e.Block(blk)
		assert.False(t, ok)
	})

	t.Run("other selection kept", func(t *testing.T) {
		e := newEditor(t)
		keep := e.AddSection()
		drop := e.AddSection()
		require.NoError(t, e.Select(SectionSelected, keep))

		require.NoError(t, e.DeleteSection(drop))
		assert.Equal(t, Selection{Kind: SectionSelected, ID: keep}, e.Selection())
	})

	t.Run("unknown id", func(t *testing.T) {
		e := newEditor(t)
		assert.ErrorIs(t, e.DeleteSection("nope"), ErrSectionNotFound)
	})
}

func TestDeleteSection_IndexStaysValid(t *testing.T) {
	e := newEditor(t)
	a := e.AddSection()
	b := e.AddSection()
	require.NoError(t, e.Select(SectionSelected, b))
	blk, err := e.AddBlock(b, models.BlockButton)
	require.NoError(t, err)

	require.NoError(t, e.DeleteSection(a))

	require.NoError(t, e.UpdateBlockField(blk, "text", "Order now"))
	got, ok := e.Block(blk)
	require.True(t, ok)
	assert.Equal(t, "Order now", got.Content.Get("text"))

	for i, sec := range e.Sections() {
		assert.Equal(t, i, sec.Order)
	}
}

func TestReorderSections(t *testing.T) {
	e := newEditor(t)
	e.AddSection()
	e.AddSection()
	ids := e.SectionIDs()

	reversed := []string{ids[2], ids[1], ids[0]}
	require.NoError(t, e.ReorderSections(reversed))
	assert.Equal(t, reversed, e.SectionIDs())
	assert.ElementsMatch(t, ids, e.SectionIDs())
	for i, sec := range e.Sections() {
		assert.Equal(t, i, sec.Order)
	}

	tests := []struct {
		name string
		ids  []string
	}{
		{"missing one", []string{ids[0], ids[1]}},
		{"extra one", []string{ids[0], ids[1], ids[2], "x"}},
		{"duplicate", []string{ids[0], ids[0], ids[1]}},
		{"unknown", []string{ids[0], ids[1], "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, e.ReorderSections(tt.ids), ErrNotPermutation)
			assert.Equal(t, reversed, e.SectionIDs())
		})
	}
}

func TestMoveSection(t *testing.T) {
	e := newEditor(t)
	e.AddSection()
	last := e.AddSection()

	require.NoError(t, e.MoveSection(last, 0))
	assert.Equal(t, last, e.SectionIDs()[0])

	require.NoError(t, e.MoveSection(last, 99))
	assert.Equal(t, last, e.SectionIDs()[2])
}

func TestAddBlock(t *testing.T) {
	e := newEditor(t)
	sec := e.AddSection()

	_, err := e.AddBlock(sec, models.BlockText)
	assert.ErrorIs(t, err, ErrSectionNotSelected)

	_, err = e.AddBlock("missing", models.BlockText)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	require.NoError(t, e.Select(SectionSelected, sec))

	_, err = e.AddBlock(sec, "carousel")
	assert.ErrorIs(t, err, models.ErrUnknownBlockType)

	id, err := e.AddBlock(sec, models.BlockText)
	require.NoError(t, err)

	blk, ok := e.Block(id)
	require.True(t, ok)
	want, _ := registry.Default().DefaultPayload(models.BlockText)
	assert.Equal(t, want, blk.Content)
	assert.Equal(t, models.DefaultVisibility(), blk.Visibility)
	assert.Equal(t, Selection{Kind: SectionSelected, ID: sec}, e.Selection())
}

func TestUpdateBlockField_OnlyThatField(t *testing.T) {
	e := newEditor(t)
	sec := e.AddSection()
	require.NoError(t, e.Select(SectionSelected, sec))
	target, _ := e.AddBlock(sec, models.BlockText)
	other, _ := e.AddBlock(sec, models.BlockText)

	before := e.Sections()
	require.NoError(t, e.UpdateBlockField(target, "heading", "X"))

	got, _ := e.Block(target)
	p := got.Content.(*models.TextPayload)
	assert.Equal(t, "X", p.Heading)
	assert.Equal(t, "Add your text here...", p.Body)
	assert.Equal(t, models.AlignLeft, p.Alignment)

	otherBlk, _ := e.Block(other)
	assert.Equal(t, "New Heading", otherBlk.Content.Get("heading"))

	after := e.Sections()
	assert.Equal(t, before[0], after[0])
}

func TestUpdateBlockField_MissingBlockIsNoop(t *testing.T) {
	e := newEditor(t)
	before := e.Sections()

	assert.NoError(t, e.UpdateBlockField("missing", "heading", "X"))
	assert.Equal(t, before, e.Sections())
}

func TestUpdateBlockField_UnknownField(t *testing.T) {
	e := newEditor(t)
	blk := e.Sections()[0].Blocks[0].ID
	assert.ErrorIs(t, e.UpdateBlockField(blk, "colour", "red"), models.ErrUnknownField)
}

func TestDeleteBlock(t *testing.T) {
	e := newEditor(t)
	sec := e.AddSection()
	require.NoError(t, e.Select(SectionSelected, sec))
	a, _ := e.AddBlock(sec, models.BlockText)
	b, _ := e.AddBlock(sec, models.BlockImage)
	c, _ := e.AddBlock(sec, models.BlockButton)
	require.NoError(t, e.Select(BlockSelected, b))

	require.NoError(t, e.DeleteBlock(sec, b))

	blocks := e.Sections()[1].Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, a, blocks[0].ID)
	assert.Equal(t, c, blocks[1].ID)
	assert.Equal(t, NoSelection, e.Selection().Kind)

	require.NoError(t, e.UpdateBlockField(c, "text", "Shop"))
	got, _ := e.Block(c)
	assert.Equal(t, "Shop", got.Content.Get("text"))

	assert.ErrorIs(t, e.DeleteBlock(sec, b), ErrBlockNotFound)
	first := e.SectionIDs()[0]
	assert.ErrorIs(t, e.DeleteBlock(first, c), ErrBlockNotFound)
}

func TestDeleteBlock_KeepsUnrelatedSelection(t *testing.T) {
	e := newEditor(t)
	sec := e.AddSection()
	require.NoError(t, e.Select(SectionSelected, sec))
	a, _ := e.AddBlock(sec, models.BlockText)
	b, _ := e.AddBlock(sec, models.BlockText)
	require.NoError(t, e.Select(BlockSelected, a))

	require.NoError(t, e.DeleteBlock(sec, b))
	assert.Equal(t, Selection{Kind: BlockSelected, ID: a}, e.Selection())
}

func TestMoveBlock(t *testing.T) {
	e := newEditor(t)
	sec := e.AddSection()
	require.NoError(t, e.Select(SectionSelected, sec))
	a, _ := e.AddBlock(sec, models.BlockText)
	b, _ := e.AddBlock(sec, models.BlockText)

	require.NoError(t, e.MoveBlock(b, 0))
	blocks := e.Sections()[1].Blocks
	assert.Equal(t, []string{b, a}, []string{blocks[0].ID, blocks[1].ID})

	require.NoError(t, e.UpdateBlockField(a, "heading", "moved"))
	got, _ := e.Block(a)
	assert.Equal(t, "moved", got.Content.Get("heading"))
}

func TestSelection(t *testing.T) {
	e := newEditor(t)
	sec := e.SectionIDs()[0]
	blk := e.Sections()[0].Blocks[0].ID

	assert.ErrorIs(t, e.Select(BlockSelected, "nope"), ErrBlockNotFound)
	assert.Equal(t, NoSelection, e.Selection().Kind)

	require.NoError(t, e.Select(SectionSelected, sec))
	got, ok := e.SelectedSection()
	require.True(t, ok)
	assert.Equal(t, sec, got.ID)
	_, ok = e.SelectedBlock()
	assert.False(t, ok)

	require.NoError(t, e.Select(BlockSelected, blk))
	b, ok := e.SelectedBlock()
	require.True(t, ok)
	assert.Equal(t, blk, b.ID)
	assert.NotEmpty(t, e.SelectedFields())

	require.NoError(t, e.UpdateSelectedBlockField("body", "panel edit"))
	b, _ = e.SelectedBlock()
	assert.Equal(t, "panel edit", b.Content.Get("body"))

	e.ClearSelection()
	assert.Equal(t, Selection{}, e.Selection())
}

func TestStylesAndVisibility(t *testing.T) {
	e := newEditor(t)
	sec := e.SectionIDs()[0]
	blk := e.Sections()[0].Blocks[0].ID

	require.NoError(t, e.SetSectionLayout(sec, models.SectionLayoutSplit))
	assert.ErrorIs(t, e.SetSectionLayout(sec, "grid"), ErrInvalidLayout)
	require.NoError(t, e.SetSectionStyle(sec, "backgroundColor", "#fef3c7"))
	assert.ErrorIs(t, e.SetSectionStyle(sec, "margin", "0"), ErrInvalidStyle)

	require.NoError(t, e.SetBlockStyle(blk, "textAlign", "right"))
	assert.ErrorIs(t, e.SetBlockStyle(blk, "textAlign", "justify"), models.ErrInvalidValue)
	require.NoError(t, e.SetBlockAnimation(blk, models.Animation{Type: models.AnimationSlideUp, Delay: -1}))
	require.NoError(t, e.SetBlockVisibility(blk, models.Visibility{Desktop: true}))

	got := e.Sections()[0]
	assert.Equal(t, models.SectionLayoutSplit, got.Layout)
	assert.Equal(t, "#fef3c7", got.Styles.BackgroundColor)
	assert.Equal(t, models.AlignRight, got.Blocks[0].Styles.TextAlign)
	assert.Equal(t, models.Animation{Type: models.AnimationSlideUp}, got.Blocks[0].Animation)
	assert.False(t, got.Blocks[0].Visibility.Mobile)
}

func TestSnapshot(t *testing.T) {
	e := newEditor(t)
	e.SetName("Summer Sale")

	p := e.Snapshot()
	assert.Equal(t, "summer-sale", p.Slug)
	assert.Equal(t, "Summer Sale", p.MetaTitle)
	assert.Equal(t, "Description for Summer Sale", p.MetaDescription)
	assert.Equal(t, models.PageStatusPublished, p.Status)
	assert.Equal(t, 1, p.Version)
	assert.True(t, p.IsActive)

	require.NoError(t, p.Sections[0].Blocks[0].Content.Set("heading", "mutated"))
	assert.NotEqual(t, "mutated", e.Sections()[0].Blocks[0].Content.Get("heading"))

	e.SetMeta("Custom", "")
	assert.Equal(t, "Custom", e.Snapshot().MetaTitle)
}

func TestSnapshot_Status(t *testing.T) {
	draft := Load(registry.Default(), models.Page{ID: "p1", Name: "Monsoon", Status: models.PageStatusDraft, Version: 2})
	draft.SetActive(false)
	assert.Equal(t, models.PageStatusDraft, draft.Snapshot().Status)

	require.NoError(t, draft.SetStatus(models.PageStatusPublished))
	assert.Equal(t, models.PageStatusPublished, draft.Snapshot().Status)

	e := newEditor(t)
	require.NoError(t, e.SetStatus(models.PageStatusDraft))
	assert.Equal(t, models.PageStatusDraft, e.Snapshot().Status)
	assert.ErrorIs(t, e.SetStatus("archived"), ErrInvalidStatus)
	assert.Equal(t, models.PageStatusDraft, e.Snapshot().Status)
}

func TestValidate(t *testing.T) {
	e := newEditor(t)
	e.SetName("   ")
	assert.ErrorIs(t, e.Validate(), ErrNameRequired)
	assert.EqualError(t, e.Validate(), "Page name is required")

	e.SetName("Festive")
	assert.NoError(t, e.Validate())
}

func TestLoad(t *testing.T) {
	persisted := models.Page{
		ID:      "p1",
		Name:    "Home",
		Version: 4,
		Sections: []models.Section{
			{ID: "s1", Order: 7, Blocks: []models.Block{{Type: models.BlockVideo}}},
		},
	}

	e := Load(registry.Default(), persisted)
	secs := e.Sections()

	assert.Equal(t, models.SectionLayoutBoxed, secs[0].Layout)
	assert.Equal(t, 0, secs[0].Order)
	assert.NotEmpty(t, secs[0].Blocks[0].ID)
	require.NotNil(t, secs[0].Blocks[0].Content)

	require.NoError(t, e.UpdateBlockField(secs[0].Blocks[0].ID, "url", "https://youtu.be/x"))
	assert.Nil(t, persisted.Sections[0].Blocks[0].Content)
	assert.Equal(t, 4, e.Snapshot().Version)
}
