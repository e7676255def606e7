package model

import "strings"

// CleanTag trims and lower-cases a single tag.
func CleanTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags cleans every tag, drops empties and removes duplicates
// while keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		cleaned := CleanTag(tag)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		result = append(result, cleaned)
	}
	return result
}

// ParseTags splits comma separated input into normalized tags.
// Example: ParseTags("api, Design,api") -> ["api", "design"]
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(input, ","))
}

// MergeTags appends the tags parsed from input to existing, skipping duplicates.
func MergeTags(existing []string, input string) []string {
	merged := make([]string, 0, len(existing))
	merged = append(merged, existing...)
	return NormalizeTags(append(merged, strings.Split(input, ",")...))
}

// FormatTags joins tags for display in an input field.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
