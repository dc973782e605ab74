package registry

import (
	"encoding/json"
	"html/template"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videepat_foods/internal/domain/models"
)

type testContext struct {
	products []models.Product
}

func (c testContext) SanitizeHTML(in string) string {
	return bluemonday.UGCPolicy().Sanitize(in)
}

func (c testContext) Products(list models.ProductListPayload) []models.Product {
	if list.Limit > 0 && list.Limit < len(c.products) {
		return c.products[:list.Limit]
	}
	return c.products
}

func TestDefault_CoversEveryBlockType(t *testing.T) {
	reg := Default()

	assert.Equal(t, models.BlockTypes, reg.Types())

	for _, bt := range models.BlockTypes {
		def, ok := reg.Definition(bt)
		require.True(t, ok, bt)
		assert.NotNil(t, def.Default, bt)
		assert.NotEmpty(t, def.Fields, bt)
		assert.NotNil(t, def.Render, bt)

		payload, err := reg.DefaultPayload(bt)
		require.NoError(t, err)
		assert.Equal(t, bt, payload.BlockType())

		for _, f := range def.Fields {
			err := payload.Clone().Set(f.Key, payload.Get(f.Key))
			if bt == models.BlockFAQ && f.Key == "items" {
				continue
			}
			assert.NoError(t, err, "%s.%s", bt, f.Key)
		}
	}
}

func TestDefaultPayload_Text(t *testing.T) {
	payload, err := Default().DefaultPayload(models.BlockText)
	require.NoError(t, err)

	assert.Equal(t, &models.TextPayload{
		Heading:   "New Heading",
		Body:      "Add your text here...",
		Alignment: models.AlignLeft,
	}, payload)
}

func TestDefaultPayload_FreshCopies(t *testing.T) {
	reg := Default()

	a, _ := reg.DefaultPayload(models.BlockButton)
	require.NoError(t, a.Set("text", "Buy"))

	b, _ := reg.DefaultPayload(models.BlockButton)
	assert.Equal(t, "Click Here", b.Get("text"))
}

func TestDefaultPayload_Unknown(t *testing.T) {
	_, err := Default().DefaultPayload("carousel")
	assert.ErrorIs(t, err, models.ErrUnknownBlockType)
}

func TestRegister_Rejects(t *testing.T) {
	reg := New()
	render := func(Context, models.Block) template.HTML { return "" }
	fields := []Field{{Key: "url", Label: "URL", Kind: FieldURL}}

	err := reg.Register(Definition{Type: models.BlockVideo, Fields: fields, Render: render})
	assert.ErrorIs(t, err, ErrIncompleteDefinition)

	err = reg.Register(Definition{
		Type:    models.BlockVideo,
		Default: func() models.Payload { return &models.ImagePayload{} },
		Fields:  fields,
		Render:  render,
	})
	assert.ErrorIs(t, err, ErrIncompleteDefinition)

	ok := Definition{
		Type:    models.BlockVideo,
		Default: func() models.Payload { return &models.VideoPayload{} },
		Fields:  fields,
		Render:  render,
	}
	require.NoError(t, reg.Register(ok))
	assert.ErrorIs(t, reg.Register(ok), ErrDuplicateType)
}

func TestRender_Placeholders(t *testing.T) {
	reg := Default()
	ctx := testContext{}

	for _, bt := range []models.BlockType{models.BlockImage, models.BlockVideo, models.BlockProductList, models.BlockHTML, models.BlockFAQ} {
		payload, _ := models.NewPayload(bt)
		out := reg.Render(ctx, models.Block{ID: "b", Type: bt, Content: payload})
		assert.Contains(t, string(out), "block--placeholder", bt)
	}

	out := reg.Render(ctx, models.Block{ID: "b", Type: models.BlockImage})
	assert.Contains(t, string(out), "block--placeholder")
}

func TestRender_Text(t *testing.T) {
	out := Default().Render(testContext{}, models.Block{
		Type:    models.BlockText,
		Content: &models.TextPayload{Heading: "<Fresh>", Body: "line one\nline two\n\nsecond", Alignment: models.AlignCenter},
	})

	html := string(out)
	assert.Contains(t, html, "text-block--center")
	assert.Contains(t, html, "&lt;Fresh&gt;")
	assert.Contains(t, html, "line one<br />line two")
	assert.Equal(t, 2, strings.Count(html, "<p "))
}

func TestRender_HTMLSanitized(t *testing.T) {
	out := Default().Render(testContext{}, models.Block{
		Type:    models.BlockHTML,
		Content: &models.HTMLPayload{Markup: `<p onclick="x()">Hi</p><script>alert(1)</script>`},
	})

	html := string(out)
	assert.Contains(t, html, "<p>Hi</p>")
	assert.NotContains(t, html, "script")
	assert.NotContains(t, html, "onclick")
}

func TestRender_ProductList(t *testing.T) {
	sale := 80.0
	ctx := testContext{products: []models.Product{
		{ID: "p1", Name: "Mango Pickle", Price: 100, DiscountPrice: &sale, Images: []string{"m.jpg"}},
		{ID: "p2", Name: "Ghee", Price: 450},
	}}

	out := string(Default().Render(ctx, models.Block{
		Type:    models.BlockProductList,
		Content: &models.ProductListPayload{Style: models.ProductListCarousel, Limit: 1},
	}))

	assert.Contains(t, out, "product-list--carousel")
	assert.Contains(t, out, "Mango Pickle")
	assert.Contains(t, out, "₹80")
	assert.NotContains(t, out, "Ghee")
}

func TestRender_ButtonUnsafeLink(t *testing.T) {
	for _, link := range []string{
		"javascript:alert(1)",
		"java\tscript:alert(1)",
		"java\nscript:alert(1)",
		"\x01javascript:alert(1)",
	} {
		out := Default().Render(testContext{}, models.Block{
			Type:    models.BlockButton,
			Content: &models.ButtonPayload{Text: "Go", Link: link},
		})
		assert.Contains(t, string(out), `href="#"`, link)
		assert.NotContains(t, strings.ToLower(string(out)), "script:", link)
	}
}

func TestRender_UnknownType(t *testing.T) {
	var page models.Page
	require.NoError(t, json.Unmarshal([]byte(`{"sections":[{"id":"s1","blocks":[{"id":"b1","type":"carousel","content":{"slides":[]}}]}]}`), &page))

	out := Default().Render(testContext{}, page.Sections[0].Blocks[0])
	assert.Contains(t, string(out), "block--placeholder-carousel")
}

func TestEmbedURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"https://www.youtube.com/watch?v=abc123&t=42", "https://www.youtube.com/embed/abc123"},
		{"https://youtu.be/xyz", "https://www.youtube.com/embed/xyz"},
		{"https://cdn.example.com/clip.mp4", "https://cdn.example.com/clip.mp4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmbedURL(tt.in))
	}

	assert.Contains(t, string(VideoMarkup("https://www.youtube.com/watch?v=abc", "v")), "<iframe")
	assert.Contains(t, string(VideoMarkup("data:video/mp4;base64,AAAA", "v")), "<video")
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" JavaScript:alert(1)", "#"},
		{"java\tscript:alert(1)", "#"},
		{"java\nscript:alert(1)", "#"},
		{"java\r\nscript:alert(1)", "#"},
		{"\x01javascript:alert(1)", "#"},
		{"vbscript:msgbox(1)", "#"},
		{"data:text/html;base64,PHNjcmlwdD4=", "#"},
		{"ftp://files.example.com/a", "#"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"data:video/mp4;base64,AAAA", "data:video/mp4;base64,AAAA"},
		{"/products", "/products"},
		{"#offers", "#offers"},
		{"HTTPS://videepat.example/p/sale", "HTTPS://videepat.example/p/sale"},
		{"mailto:hello@videepat.example", "mailto:hello@videepat.example"},
		{"tel:+911234567890", "tel:+911234567890"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeURL(tt.in), "%q", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹250", FormatPrice(250))
	assert.Equal(t, "₹99.50", FormatPrice(99.5))
}
