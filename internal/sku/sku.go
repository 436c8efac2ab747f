// Package sku canonicalizes stock keeping unit codes. Every store write
// and every lookup probe must pass through Normalize so that equality is
// case-insensitive and tolerant of stray whitespace from CSV fields.
package sku

import "strings"

// Normalize returns the canonical form of a raw SKU: surrounding
// whitespace removed, letters uppercased. Idempotent.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
