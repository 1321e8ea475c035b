package serializers

import "strings"

// mediaBase is the public prefix stored media references resolve against.
// Router setup overrides it from configuration.
var mediaBase = "/static/media"

// SetMediaBase configures the base URL used to resolve stored media
// references. Call once during boot.
func SetMediaBase(base string) {
	if base != "" {
		mediaBase = strings.TrimRight(base, "/")
	}
}

// MediaURL resolves a stored image reference to a retrievable URL.
// Empty references resolve to nil; absolute URLs pass through unchanged.
func MediaURL(ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &ref
	}
	url := mediaBase + "/" + strings.TrimLeft(ref, "/")
	return &url
}
