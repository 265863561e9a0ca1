// Package templates holds the HTML pages rendered by the handlers.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
