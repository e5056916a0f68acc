// Package extract implements the selector engine: compiling a job's
// search rules and resolving them against crawled pages.
//
// A rule pairs one CSS selector with attribute specs. A spec is either
// a literal HTML attribute name or one of four reserved pseudo-
// attributes (TextContent, HtmlContent, InnerHtml, Html2Text) that
// select an extraction mode instead of an attribute.
//
// Design decision: Pseudo-attribute dispatch is resolved once at
// compile time into a closed tagged variant (attrKind) rather than
// compared as strings per matched element. This keeps the extraction
// hot path an exhaustive switch over a small enum, and makes it
// impossible to add a pseudo-attribute without deciding its extraction
// behavior.
//
// Selectors are compiled with cascadia, the same engine behind goquery,
// so an invalid selector fails the job before any fetching begins while
// resolution reuses goquery's document-order traversal.
package extract
