package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform is returned when a platform value is not recognised.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies the social network a post was published on.
type Platform int

const (
	PlatformX Platform = iota
	PlatformTruthSocial

	// NumPlatforms is the number of known platforms, usable as an array size.
	NumPlatforms = 2
)

// Platforms lists every platform in output order.
var Platforms = [NumPlatforms]Platform{PlatformX, PlatformTruthSocial}

// String returns the wire value used in input and output tables.
func (p Platform) String() string {
	switch p {
	case PlatformX:
		return "X"
	case PlatformTruthSocial:
		return "Truth Social"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// ColumnPrefix returns the prefix used for platform columns in the tag table.
func (p Platform) ColumnPrefix() string {
	if p == PlatformTruthSocial {
		return "Truth"
	}
	return "X"
}

// ParsePlatform parses a wire value. "TruthSocial" and "Truth" are accepted as aliases.
func ParsePlatform(s string) (Platform, error) {
	switch strings.TrimSpace(s) {
	case "X":
		return PlatformX, nil
	case "Truth Social", "TruthSocial", "Truth":
		return PlatformTruthSocial, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// ParsePlatformFlag parses the short platform names accepted on the command line.
func ParsePlatformFlag(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "twitter":
		return PlatformX, nil
	case "truth", "truthsocial", "truth-social", "truth social":
		return PlatformTruthSocial, nil
	}
	return 0, fmt.Errorf("%w: %q (use: x or truth)", ErrUnknownPlatform, s)
}

// RawRecord is one labeled post with its engagement counters.
type RawRecord struct {
	TagID      string
	CategoryID string
	Platform   Platform
	Likes      int64
	Reposts    int64
	Replies    int64
}

// Engagement returns likes + reposts + replies.
func (r RawRecord) Engagement() int64 {
	return r.Likes + r.Reposts + r.Replies
}
