// Package denylist loads the set of mobile numbers that must never receive
// campaign messages.
package denylist

import (
	"os"
	"strings"

	"diet-challenge-api/src/infrastructure/utils"
)

// Load reads the denylist file named by DENYLIST_FILE. Entries are separated
// by newlines or commas; blank entries and lines starting with '#' are
// skipped. A missing configuration yields an empty denylist, a configured but
// unreadable file is an error.
func Load() ([]string, error) {
	path := utils.GetEnv("DENYLIST_FILE", "")
	if path == "" {
		return nil, nil
	}
	return LoadFile(path)
}

// LoadFile parses the denylist at the given path
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse splits raw denylist content into normalized mobile numbers
func Parse(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	var mobiles []string
	for _, f := range fields {
		entry := strings.TrimSpace(f)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		mobiles = append(mobiles, entry)
	}
	return mobiles
}
