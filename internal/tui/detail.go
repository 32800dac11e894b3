package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/media"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// taskMarkdown lays a task out as a markdown document
func taskMarkdown(task model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", task.ID)
	fmt.Fprintf(&b, "**Product:** %s  \n**Audience:** %s  \n", task.Prompt, task.Audience)
	if task.HasImage() {
		fmt.Fprintf(&b, "**Image:** %s\n", media.Describe(task.ImageReference))
	} else {
		b.WriteString("**Image:** none\n")
	}

	section := func(title, body string) {
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}
	section("Tagline", task.Output.Tagline)
	section("Poster", task.Output.PosterContent)
	section("Email", task.Output.EmailContent)
	section("Video script", task.Output.VideoScript)
	return b.String()
}

// renderTask renders task for a pane of the given width. Plain markdown is
// returned when glamour fails.
func renderTask(task model.Task, width int) string {
	md := taskMarkdown(task)
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
