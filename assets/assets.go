// Package assets embeds the widget stylesheet.
package assets

import _ "embed"

// Stylesheet is the CSS for the search widget.
//
//go:embed widget.css
var Stylesheet string
