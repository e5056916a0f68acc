package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/pagesift/pagesift/internal/model"
)

// Resolve evaluates every compiled rule against doc and merges the
// resolved values into table. Matched elements are visited in document
// order; elements are not deduplicated, only resulting values are
// (insertion into the table is a set union).
//
// A literal attribute that is absent on a matched element produces
// nothing; that is expected page variance, never an error.
func Resolve(doc *goquery.Document, rules []Rule, table model.ResultTable) {
	for _, rule := range rules {
		doc.FindMatcher(rule.matcher).Each(func(_ int, sel *goquery.Selection) {
			for _, attr := range rule.attrs {
				switch attr.kind {
				case kindText:
					table.Add(rule.Selector, attr.name, sel.Text())

				case kindHTML:
					if markup, err := goquery.OuterHtml(sel); err == nil {
						table.Add(rule.Selector, attr.name, markup)
					}

				case kindInnerHTML:
					if markup, err := sel.Html(); err == nil {
						table.Add(rule.Selector, attr.name, markup)
					}

				case kindHTML2Text:
					if len(sel.Nodes) > 0 {
						table.Add(rule.Selector, attr.name, flattenChildren(sel.Nodes[0]))
					}

				case kindLiteral:
					if value, ok := sel.Attr(attr.name); ok {
						table.Add(rule.Selector, attr.name, value)
					}
				}
			}
		})
	}
}
