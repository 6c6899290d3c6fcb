// Package book turns an EPUB archive into a ContentMap: the ordered list of
// chapters, each a title plus its paragraphs.
//
// Documents are visited in spine order (falling back to manifest order, then
// archive order). A document contributes a chapter only when its body holds a
// heading; the first h1-h6 is the title and every <p> is a paragraph with
// ideographic spaces removed. Malformed documents are skipped with a warning,
// while an unreadable archive is fatal.
package book
