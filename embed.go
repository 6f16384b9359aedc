package storefront

import "embed"

// EmbeddedAssets contains the client glue shipped with the binary:
// storefront.js wires the cart checkout link and the feed carousel.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
