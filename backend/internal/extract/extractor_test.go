package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostcheck/backend/internal/jsonvalue"
)

func mustParse(t *testing.T, doc string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestExtract_StringListData(t *testing.T) {
	v := mustParse(t, `{"string_list_data":[{"value":"alice","href":"https://x/alice","timestamp":100}]}`)

	got := Default().Extract(v)

	assert.Equal(t, []UserRecord{
		{Username: "alice", ProfileURL: "https://x/alice", EventTimestamp: 100},
	}, got)
}

func TestExtract_InstagramFollowersShape(t *testing.T) {
	doc := `[
		{"title": "", "media_list_data": [], "string_list_data": [
			{"href": "https://www.instagram.com/bob", "value": "bob", "timestamp": 1700000000}
		]},
		{"title": "", "media_list_data": [], "string_list_data": [
			{"href": "https://www.instagram.com/carol", "value": "carol", "timestamp": 1700000100}
		]}
	]`

	got := Default().Extract(mustParse(t, doc))

	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].Username)
	assert.Equal(t, "carol", got[1].Username)
	assert.Equal(t, int64(1700000100), got[1].EventTimestamp)
}

func TestExtract_InstagramFollowingShape(t *testing.T) {
	// Newer exports put the username in the title and leave value out
	doc := `{"relationships_following": [
		{"title": "dave", "string_list_data": [
			{"href": "https://www.instagram.com/_u/dave", "timestamp": 1690000000}
		]}
	]}`

	got := Default().Extract(mustParse(t, doc))

	assert.Equal(t, []UserRecord{
		{Username: "dave", ProfileURL: "https://www.instagram.com/_u/dave", EventTimestamp: 1690000000},
	}, got)
}

func TestExtract_FallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []UserRecord
	}{
		{
			name: "value wins over title",
			doc:  `{"title": "parent", "string_list_data": [{"value": "child"}]}`,
			want: []UserRecord{{Username: "child", ProfileURL: DefaultProfileBaseURL + "child"}},
		},
		{
			name: "title when value missing",
			doc:  `{"title": "parent", "string_list_data": [{"href": "https://x.test/other"}]}`,
			want: []UserRecord{{Username: "parent", ProfileURL: "https://x.test/other"}},
		},
		{
			name: "href segment when value and title missing",
			doc:  `{"string_list_data": [{"href": "https://www.instagram.com/_u/erin/", "timestamp": 5}]}`,
			want: []UserRecord{{Username: "erin", ProfileURL: "https://www.instagram.com/_u/erin/", EventTimestamp: 5}},
		},
		{
			name: "placeholder only",
			doc:  `{"string_list_data": [{"href": "https://www.instagram.com/_u/"}]}`,
			want: nil,
		},
		{
			name: "malformed href",
			doc:  `{"string_list_data": [{"href": "http://[::1"}]}`,
			want: nil,
		},
		{
			name: "relative href",
			doc:  `{"string_list_data": [{"href": "frank"}]}`,
			want: nil,
		},
		{
			name: "nothing to go on",
			doc:  `{"string_list_data": [{"timestamp": 10}, {}]}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().Extract(mustParse(t, tt.doc)))
		})
	}
}

func TestExtract_ListEntriesAreAuthoritative(t *testing.T) {
	// Sibling members of a node with list entries are never visited
	doc := `{"string_list_data": [{"value": "alice"}], "extra": {"value": "mallory"}}`

	got := Default().Extract(mustParse(t, doc))

	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
}

func TestExtract_IdentifierNode(t *testing.T) {
	doc := `{"blocked": [
		{"value": "grace", "href": "https://example.com/grace", "timestamp": 7},
		{"value": "not a username"},
		{"value": "https://example.com/heidi"},
		{"value": "ivan", "nested": {"value": "ignored"}}
	]}`

	got := Default().Extract(mustParse(t, doc))

	assert.Equal(t, []UserRecord{
		{Username: "grace", ProfileURL: "https://example.com/grace", EventTimestamp: 7},
		{Username: "ivan", ProfileURL: DefaultProfileBaseURL + "ivan"},
	}, got)
}

func TestExtract_RejectedValueStillRecurses(t *testing.T) {
	doc := `{"value": "Some Label", "children": [{"value": "judy"}]}`

	got := Default().Extract(mustParse(t, doc))

	require.Len(t, got, 1)
	assert.Equal(t, "judy", got[0].Username)
}

func TestExtract_NeverFailsOnValidJSON(t *testing.T) {
	docs := []string{
		`null`, `true`, `0`, `"alice"`, `[]`, `{}`,
		`[[[[{}]]]]`,
		`{"string_list_data": "not an array"}`,
		`{"string_list_data": [1, "two", null, [], {}]}`,
		`{"value": 12, "href": false}`,
		strings.Repeat(`[`, 300) + strings.Repeat(`]`, 300),
	}

	for _, doc := range docs {
		t.Run(doc[:min(len(doc), 20)], func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Empty(t, Default().Extract(mustParse(t, doc)))
			})
		})
	}
}

func TestExtract_NonIntegerTimestamp(t *testing.T) {
	doc := `{"string_list_data": [{"value": "kim", "timestamp": "yesterday"}]}`

	got := Default().Extract(mustParse(t, doc))

	require.Len(t, got, 1)
	assert.Zero(t, got[0].EventTimestamp)
}

func TestExtract_CustomOptions(t *testing.T) {
	e := New(Options{ListFields: []string{"accounts"}, ProfileBaseURL: "https://social.test/@"})
	doc := `{"accounts": [{"value": "leo"}], "string_list_data": [{"value": "ignored"}]}`

	got := e.Extract(mustParse(t, doc))

	assert.Equal(t, []UserRecord{{Username: "leo", ProfileURL: "https://social.test/@leo"}}, got)
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice", true},
		{"alice.smith_99", true},
		{"A.B_C", true},
		{"", false},
		{"alice smith", false},
		{"alice-smith", false},
		{"http", false},
		{"xhttpx", false},
		{"https://x/alice", false},
		{"émilie", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsIdentifier(tt.in), tt.in)
	}
}

func TestCollect(t *testing.T) {
	doc := `[
		{"string_list_data": [{"value": "alice", "timestamp": 1}]},
		{"string_list_data": [{"value": "bob", "timestamp": 2}]},
		{"string_list_data": [{"value": "alice", "timestamp": 3}]}
	]`

	c := Default().Collect("followers_1", mustParse(t, doc))

	assert.Equal(t, "followers_1", c.Name)
	assert.Equal(t, []string{"alice", "bob"}, c.Usernames())
	assert.Equal(t, int64(3), c.Records[0].EventTimestamp)
}
