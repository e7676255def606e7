package model

import "strings"

var avatarPalette = []string{"#1d7874", "#ff8552", "#2a4b62", "#f7c59f", "#5b2a86", "#247ba0"}

// Initials returns up to two upper-case letters from name (first and last word).
func Initials(name, fallback string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return fallback
	}

	first := []rune(parts[0])[:1]
	initials := string(first)
	if len(parts) > 1 {
		initials += string([]rune(parts[len(parts)-1])[:1])
	}

	return strings.ToUpper(initials)
}

// AvatarColor picks a stable palette colour for seed (usually a username).
func AvatarColor(seed string) string {
	if seed == "" {
		return avatarPalette[0]
	}
	hash := 0
	for _, unit := range utf16Units(seed) {
		hash = (hash*31 + int(unit)) % 0xffff
	}
	return avatarPalette[hash%len(avatarPalette)]
}

// utf16Units yields UTF-16 code units so colours match other clients of the same service.
func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}
