package render

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/tmdb"
)

// ConsoleFormatter provides console output formatting for detail pages
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatPage renders the banner, the tab bar and the selected tab's content
func (f *ConsoleFormatter) FormatPage(p Page) string {
	var sb strings.Builder

	switch p.State {
	case detail.StateIdle.String():
		return "Nothing selected\n"
	case detail.StateLoading.String():
		fmt.Fprintf(&sb, "Loading %s...\n", p.Key)
		return sb.String()
	case detail.StateFailed.String():
		fmt.Fprintf(&sb, "Failed to load %s", p.Key)
		if p.Error != nil {
			fmt.Fprintf(&sb, " (%s): %s", p.Error.Kind, p.Error.Message)
		}
		sb.WriteString("\n")
		return sb.String()
	}

	if p.Banner != nil {
		f.formatBanner(&sb, p.Banner)
	}
	f.formatTabBar(&sb, p)

	switch {
	case p.Cast != nil:
		f.formatCast(&sb, p.Cast)
	case p.Facts != nil:
		f.formatFacts(&sb, p.Facts)
	case p.Gallery != nil:
		f.formatGallery(&sb, p.Gallery)
	case p.Videos != nil:
		f.formatVideos(&sb, p.Videos)
	case p.Recommendations != nil:
		f.formatRecommendations(&sb, p.Recommendations)
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatBanner(sb *strings.Builder, b *Banner) {
	sb.WriteString("\n")
	sb.WriteString(b.Title)
	if year := yearOf(b.Date); year != "" {
		fmt.Fprintf(sb, " (%s)", year)
	}
	sb.WriteString("\n")

	if b.Tagline != "" {
		fmt.Fprintf(sb, "%s\n", b.Tagline)
	}

	var parts []string
	if b.VoteAverage > 0 {
		parts = append(parts, fmt.Sprintf("Rating: %.1f", b.VoteAverage))
	}
	if b.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("Runtime: %dm", b.Runtime))
	}
	if b.Date != "" {
		parts = append(parts, fmt.Sprintf("Released: %s", b.Date))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s\n", strings.Join(parts, " | "))
	}
	if b.Overview != "" {
		fmt.Fprintf(sb, "\n%s\n", b.Overview)
	}
	fmt.Fprintf(sb, "Backdrop: %s\n", b.Backdrop)
	sb.WriteString("\n")
}

func (f *ConsoleFormatter) formatTabBar(sb *strings.Builder, p Page) {
	labels := make([]string, 0, len(p.Tabs))
	for i, label := range p.Tabs {
		if i == p.Tab {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	fmt.Fprintf(sb, "%s\n\n", strings.Join(labels, "  "))
}

func (f *ConsoleFormatter) formatCast(sb *strings.Builder, cast []CastCard) {
	if len(cast) == 0 {
		sb.WriteString("No cast information\n")
		return
	}
	for i, c := range cast {
		isLast := i == len(cast)-1
		fmt.Fprintf(sb, "%s── %s\n", branch(isLast), c.Name)
		indent := indentFor(isLast)
		if c.Character != "" {
			fmt.Fprintf(sb, "%sas %s\n", indent, c.Character)
		}
		fmt.Fprintf(sb, "%s%s\n", indent, c.Image)
	}
}

func (f *ConsoleFormatter) formatFacts(sb *strings.Builder, facts *detail.Facts) {
	var rows [][2]string
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, [2]string{label, value})
		}
	}

	add("Title", facts.Title)
	if facts.OriginalTitle != facts.Title {
		add("Original title", facts.OriginalTitle)
	}
	add("Status", facts.Status)
	add("Released", facts.ReleaseDate)
	add("First aired", facts.FirstAirDate)
	add("Last aired", facts.LastAirDate)
	add("Language", facts.Language)
	add("Directed by", strings.Join(facts.Directors(), ", "))
	add("Networks", joinCompanies(facts.Networks))
	add("Production", joinCompanies(facts.ProductionCompanies))
	if len(facts.Seasons) > 0 {
		add("Seasons", fmt.Sprintf("%d", len(facts.Seasons)))
	}
	if facts.Collection != nil {
		add("Collection", facts.Collection.Name)
	}
	if len(facts.Keywords) > 0 {
		names := make([]string, 0, len(facts.Keywords))
		for _, k := range facts.Keywords {
			names = append(names, k.Name)
		}
		add("Keywords", strings.Join(names, ", "))
	}

	for i, row := range rows {
		fmt.Fprintf(sb, "%s── %s: %s\n", branch(i == len(rows)-1), row[0], row[1])
	}
}

func (f *ConsoleFormatter) formatGallery(sb *strings.Builder, g *Gallery) {
	if len(g.Backdrops) == 0 && len(g.Posters) == 0 {
		sb.WriteString("No photos\n")
		return
	}
	fmt.Fprintf(sb, "├── Backdrops (%d)\n", len(g.Backdrops))
	for _, u := range g.Backdrops {
		fmt.Fprintf(sb, "│   %s\n", u)
	}
	fmt.Fprintf(sb, "╰── Posters (%d)\n", len(g.Posters))
	for _, u := range g.Posters {
		fmt.Fprintf(sb, "    %s\n", u)
	}
}

func (f *ConsoleFormatter) formatVideos(sb *strings.Builder, videos []VideoCard) {
	if len(videos) == 0 {
		sb.WriteString("No videos\n")
		return
	}
	for i, v := range videos {
		isLast := i == len(videos)-1
		fmt.Fprintf(sb, "%s── %s\n", branch(isLast), v.Name)
		indent := indentFor(isLast)
		fmt.Fprintf(sb, "%s%s on %s\n", indent, v.Type, v.Site)
		if v.URL != "" {
			fmt.Fprintf(sb, "%s%s\n", indent, v.URL)
		}
	}
}

func (f *ConsoleFormatter) formatRecommendations(sb *strings.Builder, recs []RecommendationCard) {
	if len(recs) == 0 {
		sb.WriteString("No recommendations\n")
		return
	}
	for i, r := range recs {
		isLast := i == len(recs)-1
		title := r.Title
		if year := yearOf(r.Date); year != "" {
			title += " (" + year + ")"
		}
		fmt.Fprintf(sb, "%s── %s\n", branch(isLast), title)
		indent := indentFor(isLast)
		fmt.Fprintf(sb, "%s%s | Rating: %.1f\n", indent, r.Link, r.VoteAverage)
		fmt.Fprintf(sb, "%s%s\n", indent, r.Image)

		if !isLast {
			sb.WriteString("│\n")
		}
	}
}

func branch(isLast bool) string {
	if isLast {
		return "╰"
	}
	return "├"
}

func indentFor(isLast bool) string {
	if isLast {
		return "    "
	}
	return "│   "
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func joinCompanies(companies []tmdb.Company) string {
	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
