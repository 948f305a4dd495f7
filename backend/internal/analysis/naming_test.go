package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionNames(t *testing.T) {
	got := CollectionNames([]string{
		"connections/followers_and_following/followers_1.json",
		"connections/followers_and_following/following.json",
		"other/following.JSON",
		"following.json",
		"blocked_profiles.json",
	})

	assert.Equal(t, []string{
		"followers_1",
		"following",
		"following (2)",
		"following (3)",
		"blocked_profiles",
	}, got)
}
