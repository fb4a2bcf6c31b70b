// Package db embeds the storefront schema.
package db

import _ "embed"

// Schema creates the location, delivery, cart and order tables. It is
// idempotent and runs on every start.
//
//go:embed migrations/001_schema.sql
var Schema string
