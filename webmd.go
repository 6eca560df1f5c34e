// Package webmd converts web pages and raw HTML documents into clean
// Markdown. It isolates the primary readable content of a page from
// navigation and boilerplate, serializes the remaining HTML subtree with a
// fixed rule table, tags fenced code blocks with a guessed language and
// normalizes the result.
//
// This package contains domain types, interfaces and the pure string
// passes of the pipeline following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., html/, goquery/, readability/, sqlite/).
package webmd
