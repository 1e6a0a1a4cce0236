// Package markup parses tables out of free text emitted by hosted
// layout-parsing services. It understands markdown pipe tables and HTML
// <table> markup, collects candidate text blocks from arbitrary JSON
// response trees, and picks the most complete table found.
package markup
