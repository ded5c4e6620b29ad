package models

import (
	"fmt"
	"strings"
)

// MatchMode selects how a record's tag field is matched against taxonomy codes.
type MatchMode int

const (
	// MatchToken splits the tag field on delimiters and compares whole tokens.
	MatchToken     MatchMode = iota
	MatchSubstring           // code contained anywhere in the tag field
)

func (m MatchMode) String() string {
	switch m {
	case MatchToken:
		return "token"
	case MatchSubstring:
		return "substring"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// ParseMatchMode parses a match mode name. Empty resolves to MatchToken.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "token", "exact":
		return MatchToken, nil
	case "substring", "contains":
		return MatchSubstring, nil
	}
	return 0, fmt.Errorf("unknown match mode %q (use: token or substring)", s)
}
