// Package classify infers the relationship role of an export file from its
// name and orders collections for presentation.
package classify

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Role is the semantic role inferred for a file
type Role string

const (
	RoleFollowers Role = "followers"
	RoleFollowing Role = "following"
	RoleOther     Role = "other"
)

// rolePrecedence is checked in order; the first substring match decides.
// A name containing both markers is treated as followers.
var rolePrecedence = []Role{RoleFollowers, RoleFollowing}

// RoleOf classifies a file name by case-insensitive substring
func RoleOf(name string) Role {
	lower := strings.ToLower(name)
	for _, role := range rolePrecedence {
		if strings.Contains(lower, string(role)) {
			return role
		}
	}
	return RoleOther
}

// Order puts followers files first, then following files, each group in input
// order, then everything else sorted with English collation.
func Order(names []string) []string {
	var followers, following, rest []string
	for _, name := range names {
		switch RoleOf(name) {
		case RoleFollowers:
			followers = append(followers, name)
		case RoleFollowing:
			following = append(following, name)
		default:
			rest = append(rest, name)
		}
	}

	collate.New(language.English).SortStrings(rest)

	out := make([]string, 0, len(names))
	out = append(out, followers...)
	out = append(out, following...)
	return append(out, rest...)
}

// Group returns the names carrying role, in input order
func Group(names []string, role Role) []string {
	var out []string
	for _, name := range names {
		if RoleOf(name) == role {
			out = append(out, name)
		}
	}
	return out
}
