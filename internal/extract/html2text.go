package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// blockElements are elements whose boundaries become line breaks when
// markup is flattened to plain text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// skippedElements never contribute text when flattening.
var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
	"noscript": true, "iframe": true,
}

// flattenChildren renders the children of n as plain text: tags are
// stripped, runs of whitespace collapse to a single space, and
// block-level element boundaries become line breaks. The element n
// itself contributes no boundary, matching the "inner markup" contract
// of the Html2Text pseudo-attribute.
func flattenChildren(n *html.Node) string {
	var r textRenderer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
	return r.out.String()
}

// textRenderer accumulates flattened text. Pending whitespace is held
// back until the next visible character so the output never starts or
// ends with separators and a newline always wins over a space.
type textRenderer struct {
	out          strings.Builder
	pendingSpace bool
	pendingBreak bool
}

func (r *textRenderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.writeText(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		r.pendingBreak = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
	if block {
		r.pendingBreak = true
	}
}

// writeText appends text with runs of whitespace collapsed. Leading and
// trailing whitespace become pending separators rather than output, so
// adjacent inline elements keep exactly the spacing the source had.
func (r *textRenderer) writeText(text string) {
	trimmed := strings.TrimFunc(text, unicode.IsSpace)
	if trimmed == "" {
		if text != "" {
			r.pendingSpace = true
		}
		return
	}

	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsSpace(first) {
		r.pendingSpace = true
	}

	for i, field := range strings.Fields(trimmed) {
		if i > 0 {
			r.pendingSpace = true
		}
		r.flushSeparator()
		r.out.WriteString(field)
	}

	last, _ := utf8.DecodeLastRuneInString(text)
	if unicode.IsSpace(last) {
		r.pendingSpace = true
	}
}

// flushSeparator emits the strongest pending separator, if any.
func (r *textRenderer) flushSeparator() {
	if r.out.Len() == 0 {
		r.pendingSpace = false
		r.pendingBreak = false
		return
	}
	switch {
	case r.pendingBreak:
		r.out.WriteString("\n")
	case r.pendingSpace:
		r.out.WriteString(" ")
	}
	r.pendingSpace = false
	r.pendingBreak = false
}
