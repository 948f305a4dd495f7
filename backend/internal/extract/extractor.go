package extract

import (
	"net/url"
	"regexp"
	"strings"

	"ghostcheck/backend/internal/jsonvalue"
)

const (
	// DefaultListField is the array member Instagram uses for per-user entries
	DefaultListField = "string_list_data"
	// DefaultProfileBaseURL prefixes usernames when an entry carries no link
	DefaultProfileBaseURL = "https://www.instagram.com/"

	valueKey     = "value"
	titleKey     = "title"
	hrefKey      = "href"
	timestampKey = "timestamp"

	// placeholderSegment appears in links such as https://www.instagram.com/_u/alice
	placeholderSegment = "_u"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// IsIdentifier reports whether s looks like a bare username
func IsIdentifier(s string) bool {
	return s != "" && identifierPattern.MatchString(s) && !strings.Contains(s, "http")
}

// Options tunes the extractor for a particular export flavour
type Options struct {
	ListFields     []string // Object members treated as authoritative list-entry arrays
	ProfileBaseURL string   // Used to build profile links that the export omits
}

// Extractor walks decoded documents looking for user records. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	listFields     []string
	profileBaseURL string
}

// New creates an Extractor, filling unset options with defaults
func New(opts Options) *Extractor {
	e := &Extractor{
		listFields:     opts.ListFields,
		profileBaseURL: opts.ProfileBaseURL,
	}
	if len(e.listFields) == 0 {
		e.listFields = []string{DefaultListField}
	}
	if e.profileBaseURL == "" {
		e.profileBaseURL = DefaultProfileBaseURL
	}
	return e
}

// Default returns an Extractor configured for Instagram exports
func Default() *Extractor {
	return New(Options{})
}

// ProfileURL builds the canonical profile link for a username
func (e *Extractor) ProfileURL(username string) string {
	return e.profileBaseURL + username
}

// Extract returns every candidate record in v in traversal order, duplicates
// included. It never fails; documents without user data yield nil.
func (e *Extractor) Extract(v jsonvalue.Value) []UserRecord {
	var out []UserRecord
	e.walk(v, &out)
	return out
}

// Collect extracts and deduplicates v into a collection called name
func (e *Extractor) Collect(name string, v jsonvalue.Value) NamedCollection {
	return NamedCollection{Name: name, Records: Dedupe(e.Extract(v))}
}

func (e *Extractor) walk(v jsonvalue.Value, out *[]UserRecord) {
	switch v.Kind() {
	case jsonvalue.Array:
		for _, item := range v.Items() {
			e.walk(item, out)
		}
	case jsonvalue.Object:
		if entries, ok := e.listEntries(v); ok {
			title, _ := v.GetString(titleKey)
			for _, entry := range entries {
				if rec, ok := e.fromListEntry(entry, title); ok {
					*out = append(*out, rec)
				}
			}
			return
		}

		if value, ok := v.GetString(valueKey); ok && IsIdentifier(value) {
			*out = append(*out, e.record(value, v))
			return
		}

		for _, f := range v.Fields() {
			e.walk(f.Value, out)
		}
	}
}

// listEntries finds the first configured list field holding an array
func (e *Extractor) listEntries(v jsonvalue.Value) ([]jsonvalue.Value, bool) {
	for _, name := range e.listFields {
		field, ok := v.Get(name)
		if ok && field.Kind() == jsonvalue.Array {
			return field.Items(), true
		}
	}
	return nil, false
}

// fromListEntry resolves identity from the entry value, then the parent
// title, then the last segment of the entry link.
func (e *Extractor) fromListEntry(entry jsonvalue.Value, parentTitle string) (UserRecord, bool) {
	username, ok := entry.GetString(valueKey)
	if !ok {
		username = parentTitle
	}
	if username == "" {
		href, _ := entry.GetString(hrefKey)
		username = usernameFromLink(href)
	}
	if username == "" {
		return UserRecord{}, false
	}
	return e.record(username, entry), true
}

func (e *Extractor) record(username string, node jsonvalue.Value) UserRecord {
	rec := UserRecord{Username: username}
	if href, ok := node.GetString(hrefKey); ok {
		rec.ProfileURL = href
	} else {
		rec.ProfileURL = e.ProfileURL(username)
	}
	if ts, ok := node.Get(timestampKey); ok {
		rec.EventTimestamp, _ = ts.Int()
	}
	return rec
}

// usernameFromLink returns the last non-empty path segment of an absolute URL,
// skipping the placeholder segment. Malformed or relative links yield "".
func usernameFromLink(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := segments[i]; seg != "" && seg != placeholderSegment {
			return seg
		}
	}
	return ""
}
