package pipeline

import (
	"regexp"
	"strings"
)

// List markers. Only one nesting level is recognized; deeper indentation
// is treated as continuation text.
const (
	itemMarker   = "- "
	nestedMarker = "  - "
)

var headingTag = regexp.MustCompile(`^<h[1-6]>`)

// convertLists rewrites runs of "- " items into <ul> blocks.
//
// A run starts at a top-level item and continues over items, nested items
// and non-blank continuation lines. A blank line, a heading or any other line
// starting with "-" ends it; that line is kept unchanged. The newline that
// terminated the run is kept so following paragraphs stay separate blocks.
func convertLists(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !strings.HasPrefix(lines[i], itemMarker) {
			out = append(out, lines[i])
			i++
			continue
		}

		end := i + 1
		for end < len(lines) && continuesList(lines[end]) {
			end++
		}
		out = append(out, renderList(lines[i:end]))
		i = end
	}

	return strings.Join(out, "\n")
}

// continuesList reports whether a line belongs to the current list run.
// Blank lines, heading lines and "-" lines that are not items end a run.
func continuesList(line string) bool {
	switch {
	case strings.TrimSpace(line) == "":
		return false
	case strings.HasPrefix(line, itemMarker):
		return true
	case strings.HasPrefix(line, "-"):
		return false
	}
	return !strings.HasPrefix(line, "#") && !headingTag.MatchString(line)
}

// renderList builds the <ul> block for one run of list lines.
// Consecutive nested items share one inner <ul> under their parent item.
// Continuation text after a nested item starts a new item.
func renderList(run []string) string {
	result := []string{"<ul>"}
	var pending, nested []string
	open := false

	flush := func() {
		switch {
		case len(nested) > 0:
			result = append(result, "<li>"+strings.Join(pending, " "),
				"<ul><li>"+strings.Join(nested, "</li><li>")+"</li></ul></li>")
		case open:
			result = append(result, "<li>"+strings.Join(pending, " ")+"</li>")
		}
		pending = pending[:0]
		nested = nested[:0]
		open = false
	}

	for _, line := range run {
		switch {
		case strings.HasPrefix(line, itemMarker):
			flush()
			pending = append(pending, strings.TrimSpace(line[len(itemMarker):]))
			open = true
		case strings.HasPrefix(line, nestedMarker):
			nested = append(nested, strings.TrimSpace(line[len(nestedMarker):]))
		default:
			if len(nested) > 0 {
				flush()
			}
			pending = append(pending, strings.TrimSpace(line))
			open = true
		}
	}
	flush()

	result = append(result, "</ul>")
	return strings.Join(result, "\n")
}
