package extract

import (
	"errors"
	"fmt"

	"github.com/andybalholm/cascadia"

	"github.com/pagesift/pagesift/internal/model"
)

// ErrInvalidSelector is returned when a search rule's selector is not
// valid CSS selector syntax. It is a job-level configuration error,
// raised before any fetching begins.
var ErrInvalidSelector = errors.New("invalid selector")

// Reserved pseudo-attribute names. Any attribute spec that is not one
// of these is treated as a literal HTML attribute name.
const (
	// SpecTextContent resolves to the concatenation of all descendant
	// text of the matched element.
	SpecTextContent = "TextContent"

	// SpecHTMLContent resolves to the full serialized markup of the
	// matched element itself.
	SpecHTMLContent = "HtmlContent"

	// SpecInnerHTML resolves to the serialized markup of the matched
	// element's children only.
	SpecInnerHTML = "InnerHtml"

	// SpecHTML2Text resolves to a plain-text rendering of the inner
	// markup: tags stripped, block-level boundaries become line breaks.
	SpecHTML2Text = "Html2Text"
)

// attrKind is the closed set of extraction modes.
type attrKind int

const (
	kindLiteral attrKind = iota
	kindText
	kindHTML
	kindInnerHTML
	kindHTML2Text
)

// attrSpec is one compiled attribute spec: the spec string as declared
// in the job (the result bucket key) plus its resolved kind.
type attrSpec struct {
	name string
	kind attrKind
}

// Rule is one compiled search rule: the selector matcher plus its
// attribute specs. Rules are immutable after compilation and safe for
// concurrent use.
type Rule struct {
	// Selector is the original selector string, used as the outer
	// result bucket key.
	Selector string

	// matcher is the compiled selector. cascadia.Selector satisfies
	// goquery.Matcher, so resolution runs through goquery's
	// document-order traversal.
	matcher cascadia.Selector

	// attrs are the compiled attribute specs, in declaration order.
	attrs []attrSpec
}

// Compile compiles every search rule of a job. A single syntactically
// invalid selector fails the whole job.
func Compile(searches []model.SearchRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(searches))
	for _, search := range searches {
		matcher, err := cascadia.Compile(search.Selector)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSelector, search.Selector, err)
		}

		attrs := make([]attrSpec, 0, len(search.Attributes))
		for _, name := range search.Attributes {
			attrs = append(attrs, attrSpec{name: name, kind: kindOf(name)})
		}

		rules = append(rules, Rule{
			Selector: search.Selector,
			matcher:  matcher,
			attrs:    attrs,
		})
	}
	return rules, nil
}

// kindOf maps an attribute spec string to its extraction mode.
func kindOf(name string) attrKind {
	switch name {
	case SpecTextContent:
		return kindText
	case SpecHTMLContent:
		return kindHTML
	case SpecInnerHTML:
		return kindInnerHTML
	case SpecHTML2Text:
		return kindHTML2Text
	default:
		return kindLiteral
	}
}
