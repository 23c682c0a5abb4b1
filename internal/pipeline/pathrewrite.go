package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PrefixRelativePaths prepends prefix to relative image and link targets so
// report-relative paths resolve from the published pages directory.
// If prefix is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative paths to images
//   - a[href]: relative file paths (not anchors, not URLs)
//
// Absolute paths, URLs with a scheme, protocol-relative URLs and anchors are
// left alone. The fragment is re-serialized, so void elements and attribute
// quoting follow the html package's rendering.
func PrefixRelativePaths(htmlContent, prefix string) (string, error) {
	if prefix == "" {
		return htmlContent, nil
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	prefixNode(doc, prefix)

	return renderFragment(doc)
}

// parseFragment parses HTML with a <body> context so no <html>/<head>
// wrapper is synthesized, then hangs the nodes under a document node for
// uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders only the container's children.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func prefixNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			prefixAttr(n, "src", prefix)
		case atom.A:
			prefixAttr(n, "href", prefix)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		prefixNode(c, prefix)
	}
}

func prefixAttr(n *html.Node, attrName, prefix string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativeTarget(attr.Val) {
			continue
		}
		n.Attr[i].Val = joinPrefix(prefix, attr.Val)
	}
}

// isRelativeTarget returns true if the target should be prefixed.
func isRelativeTarget(target string) bool {
	if target == "" {
		return false
	}
	if strings.HasPrefix(target, "#") ||
		strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "?") {
		return false
	}
	// Any scheme (http:, https:, mailto:, data:, file:) before the first slash.
	if i := strings.Index(target, ":"); i > 0 && !strings.Contains(target[:i], "/") {
		return false
	}
	return true
}

// joinPrefix joins with exactly one slash and drops a leading "./".
func joinPrefix(prefix, target string) string {
	target = strings.TrimPrefix(target, "./")
	if strings.HasSuffix(prefix, "/") {
		return prefix + target
	}
	return prefix + "/" + target
}
