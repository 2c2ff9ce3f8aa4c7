// Package pages derives a billable page count from an uploaded document.
package pages

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	countMarker   = regexp.MustCompile(`/Count\s+(\d+)`)
	pageObjMarker = regexp.MustCompile(`/Type\s*/Page\b`)
	pdfMediaTypes = map[string]struct{}{"application/pdf": {}, "application/x-pdf": {}}
)

// Estimate returns a best-effort page count for the given document bytes.
//
// Non-PDF media (images and the like) always count as a single page. For
// PDFs the raw bytes are scanned as text: the last /Count marker wins
// because later occurrences reflect the authoritative page-tree catalogue
// in typical encodings; failing that, /Type /Page object markers are
// counted. Documents using object streams or compression may undercount.
// Never fails and always returns at least 1.
func Estimate(data []byte, mediaType string) int {
	mediaType = normalise(mediaType)
	if _, ok := pdfMediaTypes[mediaType]; !ok {
		return 1
	}

	content := string(data)

	if matches := countMarker.FindAllStringSubmatch(content, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		if n, err := strconv.Atoi(last[1]); err == nil && n >= 1 {
			return n
		}
	}

	if n := len(pageObjMarker.FindAllStringIndex(content, -1)); n > 0 {
		return n
	}

	return 1
}

// normalise strips any media type parameters and lowercases the result.
func normalise(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
