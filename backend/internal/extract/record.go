// Package extract locates user-identity records inside arbitrarily shaped
// export documents and collapses them to one record per username.
package extract

// UserRecord is one account found in an export file
type UserRecord struct {
	Username       string `json:"username" yaml:"username"`
	ProfileURL     string `json:"profile_url" yaml:"profile_url"`
	EventTimestamp int64  `json:"event_timestamp,omitempty" yaml:"event_timestamp,omitempty"` // Unix seconds, 0 when unknown
}

// NamedCollection is the deduplicated record list derived from one source
type NamedCollection struct {
	Name    string       `json:"name" yaml:"name"`
	Records []UserRecord `json:"records" yaml:"records"`
}

// Len returns the number of records
func (c NamedCollection) Len() int {
	return len(c.Records)
}

// Usernames returns the identity keys in collection order
func (c NamedCollection) Usernames() []string {
	names := make([]string, len(c.Records))
	for i, r := range c.Records {
		names[i] = r.Username
	}
	return names
}
