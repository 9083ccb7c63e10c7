package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/newsscreen/internal/newsapi"
)

const (
	missingKeyText = "Error: API Key is missing!"
	noImageText    = "No image available"
	minRowWidth    = 20
)

// View draws exactly one of: the missing-key error, the spinner, the fetch
// error, or the search bar followed by the result list.
func (s *Screen) View() string {
	switch st := s.state.(type) {
	case stateMissingKey:
		return errorStyle.Render(missingKeyText)
	case stateLoading:
		return s.spinner.View()
	case stateFailed:
		return errorStyle.Render("Error: " + st.message)
	}

	var body string
	if query := s.input.Value(); query != "" && len(s.articles()) == 0 {
		body = emptyStyle.Render(noResultsText(query))
	} else {
		body = s.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("News"),
		s.input.View(),
		buttonStyle.Render("Search"),
		"",
		body,
		s.help.View(s.keys),
	)
}

func noResultsText(query string) string {
	return `No articles found for "` + query + `"`
}

// renderRows stacks one card per article.
func renderRows(articles []newsapi.Article, width int) string {
	if len(articles) == 0 {
		return ""
	}
	rows := make([]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, renderArticle(a, width))
	}
	return strings.Join(rows, "\n")
}

// renderArticle draws the image line (or its placeholder), the title and the
// description inside a bordered card of the given total width.
func renderArticle(a newsapi.Article, width int) string {
	width = max(width, minRowWidth)
	// border takes 2 columns, padding another 2
	inner := width - 4

	var image string
	if a.HasImage() {
		image = rowImageStyle.Render(ansi.Truncate("Image: "+ansi.Strip(a.URLToImage), inner, "…"))
	} else {
		image = rowNoImageStyle.Render(noImageText)
	}

	lines := []string{
		image,
		rowTitleStyle.Width(inner).Render(ansi.Strip(a.Title)),
	}
	if a.Description != "" {
		lines = append(lines, rowDescStyle.Width(inner).Render(ansi.Strip(a.Description)))
	}
	return rowStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}
