package templates

import "embed"

// FS holds every page and layout, keyed by path without the .html suffix.
//
//go:embed *.html */*.html
var FS embed.FS
