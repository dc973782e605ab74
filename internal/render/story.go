package render

import (
	"html/template"
	"strconv"
	"strings"

	"videepat_foods/internal/content/registry"
	"videepat_foods/internal/domain/models"
)

// шаг задержки анимации между блоками истории, секунды
const storyDelayStep = 0.1

// Story renders the full story: hero header and the content blocks in
// document flow. Media blocks float left beside the following text,
// headings clear the float.
func (r *Renderer) Story(story models.Story) template.HTML {
	var sb strings.Builder

	sb.WriteString(`<article class="story" data-story-id="` + esc(story.ID) + `">`)
	sb.WriteString(`<header class="story__hero"`)
	if u := cssURL(story.HeroImage); u != "" {
		sb.WriteString(` style="background-image: url('` + esc(u) + `')"`)
	}
	sb.WriteString(`><div class="story__hero-inner">`)
	sb.WriteString(`<h1 class="story__title">` + esc(story.Title) + `</h1>`)
	if story.Subtitle != "" {
		sb.WriteString(`<p class="story__subtitle">` + esc(story.Subtitle) + `</p>`)
	}
	sb.WriteString(`</div></header>`)

	sb.WriteString(`<div class="story__body container">`)
	for idx, blk := range story.Content {
		sb.WriteString(string(r.storyBlock(blk, float64(idx)*storyDelayStep)))
	}
	sb.WriteString(`<div class="story__clear"></div>`)
	sb.WriteString(`</div></article>`)

	return template.HTML(sb.String())
}

func (r *Renderer) storyBlock(blk models.StoryContent, delay float64) template.HTML {
	classes := []string{"story-block", "story-block--" + string(blk.Type), "animate-once"}
	switch {
	case blk.Type.IsMedia():
		classes = append(classes, "story-block--float")
	case blk.Type == models.StoryHeading, blk.Type == models.StorySubheading:
		classes = append(classes, "story-block--clear")
	}

	var inner string
	switch blk.Type {
	case models.StoryHeading:
		inner = `<h2>` + esc(models.Text(blk.Content)) + `</h2>`
	case models.StorySubheading:
		inner = `<h3>` + esc(models.Text(blk.Content)) + `</h3>`
	case models.StoryText:
		var sb strings.Builder
		for _, line := range strings.Split(models.Text(blk.Content), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				sb.WriteString(`<p>` + esc(line) + `</p>`)
			}
		}
		inner = sb.String()
	case models.StoryImage:
		url := models.Text(blk.URL)
		if url == "" {
			inner = `<div class="block--placeholder">Image not set</div>`
			break
		}
		inner = `<figure><img src="` + esc(registry.SafeURL(url)) + `" alt="` + esc(models.Text(blk.Caption)) + `" loading="lazy" />` +
			caption(models.Text(blk.Caption)) + `</figure>`
	case models.StoryVideo:
		url := models.Text(blk.URL)
		if url == "" {
			inner = `<div class="block--placeholder">Video not set</div>`
			break
		}
		inner = `<figure>` + string(registry.VideoMarkup(url, "story-block__video")) + caption(models.Text(blk.Caption)) + `</figure>`
	default:
		inner = `<div class="block--placeholder">Unknown block</div>`
	}

	return template.HTML(`<div class="` + strings.Join(classes, " ") + `" data-animate="` + string(models.AnimationSlideUp) +
		`" data-delay="` + formatDelay(roundDelay(delay)) + `">` + inner + `</div>`)
}

func caption(text string) string {
	if text == "" {
		return ""
	}
	return `<figcaption>` + esc(text) + `</figcaption>`
}

// roundDelay removes float noise such as 0.30000000000000004.
func roundDelay(d float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(d, 'f', 2, 64), 64)
	return v
}

// StoryCards renders the story listing. Inactive stories are skipped.
func (r *Renderer) StoryCards(stories []models.Story) template.HTML {
	var sb strings.Builder
	sb.WriteString(`<div class="story-cards">`)
	for _, s := range stories {
		if !s.IsActive {
			continue
		}
		sb.WriteString(`<article class="story-card">`)
		sb.WriteString(`<a class="story-card__link" href="/stories/` + esc(s.ID) + `">`)
		if s.ThumbnailImage != "" {
			sb.WriteString(`<img class="story-card__image" src="` + esc(registry.SafeURL(s.ThumbnailImage)) + `" alt="` + esc(s.Title) + `" loading="lazy" />`)
		}
		sb.WriteString(`<h3 class="story-card__title">` + esc(s.Title) + `</h3>`)
		if s.ShortExcerpt != "" {
			sb.WriteString(`<p class="story-card__excerpt">` + esc(s.ShortExcerpt) + `</p>`)
		}
		sb.WriteString(`</a></article>`)
	}
	sb.WriteString(`</div>`)
	return template.HTML(sb.String())
}
