package registry

import (
	"html/template"
	"net/url"
	"strings"

	"videepat_foods/internal/domain/models"
)

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func placeholder(t models.BlockType, label string) template.HTML {
	if label == "" {
		label = "Nothing to show"
	}
	return template.HTML(`<div class="block--placeholder block--placeholder-` + esc(string(t)) + `">` + esc(label) + `</div>`)
}

// paragraphs splits body text on blank lines and escapes each part.
// Single line breaks become <br>.
func paragraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")

	var out []string
	for _, part := range strings.Split(body, "\n\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lines := strings.Split(part, "\n")
		for i := range lines {
			lines[i] = esc(lines[i])
		}
		out = append(out, strings.Join(lines, "<br />"))
	}
	return out
}

// SafeURL returns u when it is relative or uses an allowed scheme,
// otherwise "#". Control characters are dropped first: browsers ignore
// them inside a scheme, so "java\tscript:" would still run.
// Media fields may hold inline data URIs; only image and video ones pass.
func SafeURL(u string) string {
	cleaned := strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, u))
	if cleaned == "" {
		return ""
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "#"
	}

	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return cleaned
	case "data":
		media := strings.ToLower(parsed.Opaque)
		if strings.HasPrefix(media, "image/") || strings.HasPrefix(media, "video/") {
			return cleaned
		}
	}
	return "#"
}

// EmbedURL turns a YouTube watch or short link into its embeddable form.
// Other URLs are returned unchanged.
func EmbedURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.Contains(u, "watch?v=") {
		u = strings.Replace(u, "watch?v=", "embed/", 1)
		if i := strings.Index(u, "&"); i >= 0 {
			u = u[:i]
		}
		return u
	}
	for _, short := range []string{"https://youtu.be/", "http://youtu.be/"} {
		if strings.HasPrefix(u, short) {
			return "https://www.youtube.com/embed/" + strings.TrimPrefix(u, short)
		}
	}
	return u
}

func isEmbed(u string) bool {
	return strings.Contains(u, "youtube.com/embed/") || strings.Contains(u, "player.vimeo.com/")
}

// VideoMarkup renders an iframe for hosted players and a <video> element otherwise.
func VideoMarkup(rawURL, class string) template.HTML {
	u := EmbedURL(rawURL)
	if isEmbed(u) {
		return template.HTML(`<div class="` + esc(class) + `"><iframe src="` + esc(SafeURL(u)) +
			`" title="video" frameborder="0" allow="accelerometer; encrypted-media; picture-in-picture" allowfullscreen></iframe></div>`)
	}
	return template.HTML(`<div class="` + esc(class) + `"><video src="` + esc(SafeURL(u)) + `" controls preload="metadata"></video></div>`)
}
