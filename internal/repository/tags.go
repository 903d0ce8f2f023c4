package repository

import (
	"fmt"
	"strings"
)

// Tag sets are stored as comma-joined text columns and split back into
// slices at this boundary; nothing above the repository sees the joined
// form.

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitTags(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// tagMatchClause builds an EXISTS condition matching one tag inside a
// comma-joined column, case-insensitively.
func tagMatchClause(column string, argIdx int) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM unnest(string_to_array(%s, ',')) AS tag WHERE LOWER(TRIM(tag)) = LOWER($%d))",
		column, argIdx,
	)
}
