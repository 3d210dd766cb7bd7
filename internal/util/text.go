package util

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeBody interprets raw as UTF-8, replacing every ill-formed byte with
// U+FFFD, and trims surrounding whitespace.
func DecodeBody(raw []byte) (string, error) {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	return strings.TrimSpace(string(decoded)), nil
}
