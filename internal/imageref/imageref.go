// Package imageref normalises stored image and document references into
// directly fetchable URLs. It is pure string classification: no I/O, no
// guessing beyond the known Google Drive share shapes.
package imageref

import (
	"net/url"
	"regexp"
	"strings"
)

const driveDirectPrefix = "https://drive.google.com/uc?export=view&id="

// Drive file IDs are long alphanumeric tokens with dashes and underscores.
var driveFileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{25,}$`)

// Resolve turns a raw stored reference into a fetchable URL. The second
// return value is false when nothing usable can be derived; callers fall
// back to a placeholder in that case.
//
// Known inputs, in match order:
//   - empty, "-", "n/a": unusable
//   - already a drive.google.com/uc?export=view URL: returned unchanged
//   - bare Drive file ID: rewritten to the direct-content endpoint
//   - Drive share URL carrying ?id= or a /d/<id>/ path segment: rewritten
//   - any other absolute http(s) URL: returned unchanged
//   - anything else (relative paths included): unusable
func Resolve(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if unusable(trimmed) {
		return "", false
	}

	if strings.HasPrefix(trimmed, driveDirectPrefix) {
		return trimmed, true
	}

	if driveFileIDPattern.MatchString(trimmed) {
		return driveDirectPrefix + trimmed, true
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return "", false
	}

	if !isDriveHost(parsed.Host) {
		return trimmed, true
	}

	if id := parsed.Query().Get("id"); driveFileIDPattern.MatchString(id) {
		return driveDirectPrefix + id, true
	}
	if id := drivePathID(parsed.Path); id != "" {
		return driveDirectPrefix + id, true
	}

	// A Drive URL in an unrecognised shape is treated as no image rather
	// than guessed at.
	return "", false
}

// IsDrive reports whether the reference points at Google Drive.
func IsDrive(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return isDriveHost(parsed.Host)
}

func isDriveHost(host string) bool {
	host = strings.ToLower(host)
	return host == "drive.google.com" || strings.HasSuffix(host, ".drive.google.com")
}

func drivePathID(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "d" && i+1 < len(segments) && driveFileIDPattern.MatchString(segments[i+1]) {
			return segments[i+1]
		}
	}
	return ""
}

func unusable(trimmed string) bool {
	switch strings.ToLower(trimmed) {
	case "", "-", "n/a":
		return true
	}
	return false
}

// Placeholder returns the fallback image for the given subject kind.
// The swap to a placeholder happens once per failed load on the
// presentation side; this only supplies the target.
func Placeholder(kind string) string {
	if kind == "profile" {
		return "https://via.placeholder.com/150x150/6366f1/ffffff?text=No+Photo"
	}
	return "https://via.placeholder.com/150x150/6366f1/ffffff?text=No+Logo"
}
