// Package migrations embeds the goose SQL migrations so the binary always
// carries the schema it expects.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
