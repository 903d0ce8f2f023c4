package client

import "github.com/velizhask/KADA-Connect/internal/imageref"

// ResolveImageRef turns a stored image or document reference into a
// directly fetchable URL, rewriting known Google Drive share shapes to
// the direct-content endpoint. The second return value is false when
// nothing usable can be derived.
func ResolveImageRef(raw string) (string, bool) {
	return imageref.Resolve(raw)
}

// ImagePlaceholder returns the fallback image URL for the given subject
// kind ("profile" or anything else for a company logo).
func ImagePlaceholder(kind string) string {
	return imageref.Placeholder(kind)
}
