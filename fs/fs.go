// Package appfs exposes the project's embedded static assets:
// database migrations and email templates.
package appfs

import "embed"

//go:embed migrations all:templates
var FS embed.FS
