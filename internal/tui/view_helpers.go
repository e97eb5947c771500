package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, clock, data, status, hotKeys string) string {
	var b strings.Builder

	header := titleStyle.Render(title)
	if clock != "" {
		gap := lipgloss.Width(uiDivider) - lipgloss.Width(header) - lipgloss.Width(clock)
		header += strings.Repeat(" ", max(gap, 1)) + clockStyle.Render(clock)
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")
	if status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(hotKeys))

	return appStyle.Render(b.String())
}

// renderPhoto is the caption of the background photo.
func renderPhoto(photo *models.Photo, favorite bool) string {
	if photo == nil {
		return "No photo yet. Press s to sync."
	}

	var b strings.Builder
	b.WriteString("Photo")
	if place := localized(photoLocationName(photo)); place != "" {
		b.WriteString(" · ")
		b.WriteString(place)
	}
	if photo.Author != nil {
		if name := localized(photo.Author.Name); name != "" {
			b.WriteString(" · by ")
			b.WriteString(name)
		}
	}
	if favorite {
		b.WriteString(" ")
		b.WriteString(favoriteStyle.Render("★"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fitText(valueOrDash(photo.URL), lipgloss.Width(uiDivider))))
	return b.String()
}

// renderContent is the devotional text with its head, tail and source.
func renderContent(content *models.Content) string {
	if content == nil {
		return "No content yet. Press s to sync."
	}

	lines := make([]string, 0, 4)
	if content.Head != "" {
		lines = append(lines, helpStyle.Render(content.Head))
	}
	lines = append(lines, lipgloss.NewStyle().Width(lipgloss.Width(uiDivider)).Render(content.Content))
	if content.Tail != "" {
		lines = append(lines, helpStyle.Render(content.Tail))
	}
	if content.Source != "" {
		lines = append(lines, "~ "+content.Source)
	}
	return strings.Join(lines, "\n")
}

// copyableContent is the plain text put on the clipboard.
func copyableContent(content *models.Content) string {
	if content == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{content.Head, content.Content, content.Tail} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	text := strings.Join(parts, "\n")
	if content.Source != "" && text != "" {
		text += "\n(" + content.Source + ")"
	}
	return text
}

func photoLocationName(photo *models.Photo) *models.LocalizedName {
	if photo.Location == nil {
		return nil
	}
	return photo.Location.Name
}

func localized(name *models.LocalizedName) string {
	if name == nil {
		return ""
	}
	if name.EN != "" {
		return name.EN
	}
	return name.AR
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
