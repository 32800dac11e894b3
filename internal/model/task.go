package model

import "unicode/utf8"

// ImagePlaceholder is the image reference the API uses when no real image
// was uploaded. It is never rendered.
const ImagePlaceholder = "PLACEHOLDER_FOR_IMAGE"

// Output holds the four marketing assets returned for a generation
type Output struct {
	Tagline       string `json:"tagline"`
	PosterContent string `json:"poster_content"`
	EmailContent  string `json:"email_content"`
	VideoScript   string `json:"video_script"`
}

// Task is one generation request/response pair.
// Prompt, Audience and ImageReference echo what the user submitted;
// Output comes verbatim from the API.
type Task struct {
	ID             string
	Prompt         string
	Audience       string
	ImageReference string // data URL, empty when no image was attached
	Output         Output
}

// HasImage returns true if the task carries a renderable image
func (t Task) HasImage() bool {
	return t.ImageReference != "" && t.ImageReference != ImagePlaceholder
}

// Summary returns the prompt cut to max runes, with "..." appended when cut
func (t Task) Summary(max int) string {
	if utf8.RuneCountInString(t.Prompt) <= max {
		return t.Prompt
	}
	runes := []rune(t.Prompt)
	return string(runes[:max]) + "..."
}
