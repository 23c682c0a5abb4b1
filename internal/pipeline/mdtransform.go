package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ImageClass is the CSS class set on every rendered image.
const ImageClass = "report-image"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Leading YAML block, closed by the first "---" line
	frontmatterPattern = regexp.MustCompile(`(?s)\A---\n(?:.*?\n)?---(?:\n|\z)`)

	// Headings, longest marker first
	h4Pattern = regexp.MustCompile(`(?m)^#### (.+)$`)
	h3Pattern = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.+)$`)

	// Emphasis
	strongStarPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderscorePattern = regexp.MustCompile(`__(.+?)__`)
	emStarPattern           = regexp.MustCompile(`\*(.+?)\*`)
	emUnderscorePattern     = regexp.MustCompile(`_([^_]+)_`)

	// Inline code
	codeSpanPattern = regexp.MustCompile("`([^`]+)`")

	// Images and links
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// Single-level heading lines left after paragraph wrapping
	residualHeadingPattern = regexp.MustCompile(`(?m)^# .+$`)
)

// FragmentRenderer converts the markdown body of one section to an HTML fragment.
type FragmentRenderer interface {
	RenderFragment(ctx context.Context, content string) (string, error)
}

// Rule is one named rewrite step of the regex renderer.
type Rule struct {
	Name  string
	Apply func(string) string
}

// RegexRenderer renders a narrow markdown dialect through an ordered list of
// text rewrites. Later rules see the output of earlier ones, so order matters.
type RegexRenderer struct {
	rules []Rule
}

// NewRegexRenderer creates a RegexRenderer with the default rule order.
func NewRegexRenderer() *RegexRenderer {
	return &RegexRenderer{
		rules: []Rule{
			{Name: "frontmatter", Apply: StripFrontmatter},
			{Name: "headings", Apply: convertHeadings},
			{Name: "strong", Apply: convertStrong},
			{Name: "emphasis", Apply: convertEmphasis},
			{Name: "code", Apply: convertCodeSpans},
			{Name: "images", Apply: convertImages},
			{Name: "links", Apply: convertLinks},
			{Name: "lists", Apply: convertLists},
			{Name: "paragraphs", Apply: wrapParagraphs},
			{Name: "residual-headings", Apply: removeResidualHeadings},
			{Name: "trim", Apply: strings.TrimSpace},
		},
	}
}

// Rules returns a copy of the rule list in application order.
func (r *RegexRenderer) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// RenderFragment applies every rule in order. Malformed markup is left as
// literal text; the only error is context cancellation.
func (r *RegexRenderer) RenderFragment(ctx context.Context, content string) (string, error) {
	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		content = rule.Apply(content)
	}
	return content, nil
}

// NormalizeDocument converts \r\n and \r to \n and, when nfc is set,
// rewrites the text in Unicode normalization form C so heading keys typed
// with combining characters still match the section table.
func NormalizeDocument(content string, nfc bool) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	if nfc {
		content = norm.NFC.String(content)
	}
	return content
}

// StripFrontmatter removes a leading block delimited by "---" lines.
func StripFrontmatter(content string) string {
	return frontmatterPattern.ReplaceAllString(content, "")
}

func convertHeadings(content string) string {
	content = h4Pattern.ReplaceAllString(content, "<h5>${1}</h5>")
	content = h3Pattern.ReplaceAllString(content, "<h4>${1}</h4>")
	return h2Pattern.ReplaceAllString(content, "<h3>${1}</h3>")
}

func convertStrong(content string) string {
	content = strongStarPattern.ReplaceAllString(content, "<strong>${1}</strong>")
	return strongUnderscorePattern.ReplaceAllString(content, "<strong>${1}</strong>")
}

func convertEmphasis(content string) string {
	content = emStarPattern.ReplaceAllString(content, "<em>${1}</em>")
	return emUnderscorePattern.ReplaceAllString(content, "<em>${1}</em>")
}

func convertCodeSpans(content string) string {
	return codeSpanPattern.ReplaceAllString(content, "<code>${1}</code>")
}

func convertImages(content string) string {
	return imagePattern.ReplaceAllString(content, `<img class="`+ImageClass+`" src="${2}" alt="${1}">`)
}

// convertLinks opens every link in a new browsing context. URLs are copied verbatim.
func convertLinks(content string) string {
	return linkPattern.ReplaceAllString(content, `<a href="${2}" target="_blank">${1}</a>`)
}

// wrapParagraphs splits on blank lines and wraps plain blocks in <p>.
// Blocks already starting with a tag or a heading marker pass through.
func wrapParagraphs(content string) string {
	blocks := strings.Split(content, "\n\n")
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if strings.HasPrefix(block, "<") || strings.HasPrefix(block, "#") {
			out = append(out, block)
			continue
		}
		out = append(out, "<p>"+block+"</p>")
	}
	return strings.Join(out, "\n")
}

func removeResidualHeadings(content string) string {
	return residualHeadingPattern.ReplaceAllString(content, "")
}
