package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	in := []UserRecord{
		{Username: "alice", EventTimestamp: 1},
		{Username: "bob", EventTimestamp: 2},
		{Username: "alice", EventTimestamp: 3},
		{Username: "carol", EventTimestamp: 4},
		{Username: "bob", EventTimestamp: 5},
	}

	got := Dedupe(in)

	assert.Equal(t, []UserRecord{
		{Username: "alice", EventTimestamp: 3},
		{Username: "bob", EventTimestamp: 5},
		{Username: "carol", EventTimestamp: 4},
	}, got)
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []UserRecord{
		{Username: "x"}, {Username: "y"}, {Username: "x", ProfileURL: "u"}, {Username: "z"}, {Username: "y"},
	}

	once := Dedupe(in)
	assert.Equal(t, once, Dedupe(once))
}

func TestDedupe_Empty(t *testing.T) {
	assert.Nil(t, Dedupe(nil))
	assert.Nil(t, Dedupe([]UserRecord{}))
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	in := []UserRecord{{Username: "a", EventTimestamp: 1}, {Username: "a", EventTimestamp: 2}}

	_ = Dedupe(in)

	assert.Equal(t, int64(1), in[0].EventTimestamp)
}

// A duplicate replaces the earlier value but not its position: the key stays
// where it was first inserted, as when rebuilding an insertion-ordered map,
// rather than moving to the position of its last occurrence.
func TestDedupe_DuplicateKeepsFirstSlot(t *testing.T) {
	in := []UserRecord{
		{Username: "alice", ProfileURL: "old"},
		{Username: "bob"},
		{Username: "carol"},
		{Username: "alice", ProfileURL: "new"},
	}

	got := Dedupe(in)

	assert.Equal(t, []string{"alice", "bob", "carol"}, NamedCollection{Records: got}.Usernames())
	assert.Equal(t, "new", got[0].ProfileURL)
}
