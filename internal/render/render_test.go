package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
)

func textBlock(id, heading string) models.Block {
	return models.Block{
		ID:         id,
		Type:       models.BlockText,
		Content:    &models.TextPayload{Heading: heading, Body: "body", Alignment: models.AlignLeft},
		Visibility: models.DefaultVisibility(),
	}
}

func strPtr(v string) *string { return &v }

func TestBlock_Visibility(t *testing.T) {
	r := New(registry.Default())
	blk := textBlock("b1", "Desktop only")
	blk.Visibility = models.Visibility{Mobile: false, Tablet: false, Desktop: true}

	assert.Empty(t, string(r.Block(blk, View{Device: DeviceMobile})))
	assert.Empty(t, string(r.Block(blk, View{Device: DeviceTablet})))
	assert.Contains(t, string(r.Block(blk, View{Device: DeviceDesktop})), "Desktop only")
	// без устройства считаем desktop
	assert.Contains(t, string(r.Block(blk, View{})), "Desktop only")
}

func TestSection_LayoutClasses(t *testing.T) {
	r := New(registry.Default())

	tests := []struct {
		layout models.SectionLayout
		want   []string
	}{
		{models.SectionLayoutFull, []string{"section--full"}},
		{models.SectionLayoutBoxed, []string{"section--boxed", "container"}},
		{models.SectionLayoutSplit, []string{"section--split", "section__grid--split"}},
		{"", []string{"section--boxed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			out := string(r.Section(models.Section{ID: "s1", Layout: tt.layout}, View{}))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestSection_Styles(t *testing.T) {
	r := New(registry.Default())
	sec := models.Section{
		ID:     "s1",
		Layout: models.SectionLayoutFull,
		Styles: models.SectionStyles{
			BackgroundColor: "#fff8e1;} body{display:none",
			BackgroundImage: "javascript:alert(1)",
			Padding:         "64px 0",
		},
	}

	out := string(r.Section(sec, View{}))
	assert.Contains(t, out, "padding: 64px 0")
	assert.NotContains(t, out, "javascript")
	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, "background-image")
}

func TestBlock_Animation(t *testing.T) {
	r := New(registry.Default())

	blk := textBlock("b1", "Hello")
	blk.Animation = models.Animation{Type: models.AnimationFade, Delay: 0.3}
	out := string(r.Block(blk, View{}))
	assert.Contains(t, out, "animate-once")
	assert.Contains(t, out, `data-animate="fade"`)
	assert.Contains(t, out, `data-delay="0.3"`)

	blk.Animation = models.Animation{Type: models.AnimationNone}
	out = string(r.Block(blk, View{}))
	assert.NotContains(t, out, "animate-once")
	assert.NotContains(t, out, "data-animate")
}

func TestBlock_PlaceholderOnMissingContent(t *testing.T) {
	r := New(registry.Default())

	out := string(r.Block(models.Block{
		ID:         "b1",
		Type:       models.BlockImage,
		Content:    &models.ImagePayload{},
		Visibility: models.DefaultVisibility(),
	}, View{}))
	assert.Contains(t, out, "block--placeholder")

	out = string(r.Block(models.Block{ID: "b2", Type: "carousel", Visibility: models.DefaultVisibility()}, View{}))
	assert.Contains(t, out, "block--placeholder")
}

func TestBlock_HTMLSanitized(t *testing.T) {
	r := New(registry.Default())
	out := string(r.Block(models.Block{
		ID:         "b1",
		Type:       models.BlockHTML,
		Content:    &models.HTMLPayload{Markup: `<p onclick="x()">hi</p><script>alert(1)</script>`},
		Visibility: models.DefaultVisibility(),
	}, View{}))

	assert.Contains(t, out, "<p>hi</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}

func TestBlock_ProductListFromCatalog(t *testing.T) {
	r := New(registry.Default())
	catalog := []models.Product{
		{ID: "p1", Name: "Ghee", Price: 450, IsActive: true, CategoryIDs: []string{"dairy"}},
		{ID: "p2", Name: "Pickle", Price: 120, IsActive: true, CategoryIDs: []string{"pantry"}},
		{ID: "p3", Name: "Paneer", Price: 90, IsActive: false, CategoryIDs: []string{"dairy"}},
		{ID: "p4", Name: "Curd", Price: 60, IsActive: true, CategoryIDs: []string{"dairy"}},
	}

	out := string(r.Block(models.Block{
		ID:         "b1",
		Type:       models.BlockProductList,
		Content:    &models.ProductListPayload{Style: models.ProductListGrid, Limit: 1, CategoryID: "dairy"},
		Visibility: models.DefaultVisibility(),
	}, View{Catalog: catalog}))

	assert.Contains(t, out, "Ghee")
	assert.NotContains(t, out, "Pickle")
	assert.NotContains(t, out, "Paneer")
	assert.NotContains(t, out, "Curd")
}

func TestPage_SectionOrder(t *testing.T) {
	r := New(registry.Default())
	page := models.Page{
		ID:     "p1",
		Layout: models.PageLayoutLanding,
		Sections: []models.Section{
			{ID: "first", Layout: models.SectionLayoutBoxed, Blocks: []models.Block{textBlock("b1", "One")}},
			{ID: "second", Layout: models.SectionLayoutBoxed, Blocks: []models.Block{textBlock("b2", "Two")}},
		},
	}

	out := string(r.Page(page, View{Device: DeviceDesktop}))
	assert.True(t, strings.HasPrefix(out, `<main class="page page--landing"`))
	assert.Less(t, strings.Index(out, "One"), strings.Index(out, "Two"))
}

func TestStory_FloatAndClear(t *testing.T) {
	r := New(registry.Default())
	story := models.Story{
		ID:        "st1",
		Title:     "Harvest",
		HeroImage: "hero.jpg",
		IsActive:  true,
		Content: []models.StoryContent{
			{ID: "a", Type: models.StoryImage, URL: strPtr("farm.jpg"), Caption: strPtr("Fields")},
			{ID: "b", Type: models.StoryText, Content: strPtr("line one\nline two")},
			{ID: "c", Type: models.StoryHeading, Content: strPtr("Roots")},
			{ID: "d", Type: models.StoryVideo, URL: strPtr("https://www.youtube.com/watch?v=abc123")},
		},
	}

	out := string(r.Story(story))
	assert.Contains(t, out, "story-block--image animate-once story-block--float")
	assert.Contains(t, out, "story-block--heading animate-once story-block--clear")
	assert.Contains(t, out, "<p>line one</p><p>line two</p>")
	assert.Contains(t, out, "https://www.youtube.com/embed/abc123")
	assert.Contains(t, out, `data-delay="0.3"`)
	assert.True(t, strings.HasSuffix(out, `<div class="story__clear"></div></div></article>`))
}

func TestStoryCards_SkipsInactive(t *testing.T) {
	r := New(registry.Default())
	out := string(r.StoryCards([]models.Story{
		{ID: "s1", Title: "Visible", IsActive: true},
		{ID: "s2", Title: "Hidden", IsActive: false},
	}))
	assert.Contains(t, out, "Visible")
	assert.NotContains(t, out, "Hidden")
}

func TestDeviceFromUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want Device
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148", DeviceMobile},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", DeviceMobile},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", DeviceTablet},
		{"Mozilla/5.0 (Linux; Android 13; SM-X700) Safari/537.36", DeviceTablet},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", DeviceDesktop},
		{"", DeviceDesktop},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeviceFromUserAgent(tt.ua), tt.ua)
	}

	d, ok := ParseDevice(" Tablet ")
	assert.True(t, ok)
	assert.Equal(t, DeviceTablet, d)
	_, ok = ParseDevice("watch")
	assert.False(t, ok)
}

func TestViews_Execute(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = views.Execute(&buf, ViewHome, HomeData{
		Shell:    Shell{Title: "Home", CartCount: 2},
		Hero:     models.DefaultHero(),
		Products: []models.Product{{ID: "p1", Name: "Ghee", Price: 450, IsActive: true}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Fresh from Our Village")
	assert.Contains(t, out, "Cart (2)")
	assert.Contains(t, out, "Ghee")
	assert.Contains(t, out, "₹450")

	buf.Reset()
	require.NoError(t, views.Execute(&buf, ViewNotFound, Shell{Title: "Not found"}))
	assert.Contains(t, buf.String(), "Page not found")

	assert.Error(t, views.Execute(&buf, "missing", nil))
}
