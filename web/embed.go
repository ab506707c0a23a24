// Package web embeds the built frontend assets served as the browsing shell.
package web

import "embed"

//go:embed all:dist
var DistFS embed.FS
