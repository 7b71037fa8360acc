// Package docs bundles long-form Markdown documentation into the refwire
// binary.
package docs

import "embed"

// FS contains the guide topics shown by 'refwire docs'.
//
//go:embed *.md
var FS embed.FS
