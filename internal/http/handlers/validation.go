package handlers

import "strings"

// validArtikul reports whether s is a usable item identifier: non-empty
// after trimming and consisting of digits only, matching the source's
// numeric artikuls.
func validArtikul(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
