// Package appinfo resolves Steam app identifiers and fetches storefront
// metadata, with an optional on-disk JSON cache so repeat lookups avoid the
// network.
package appinfo
