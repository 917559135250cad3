package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactionMap_SetMovesUserBetweenEmojis(t *testing.T) {
	m := ReactionMap{}

	m = m.Set("user-1", "👍")
	assert.True(t, m.Has("user-1", "👍"))

	m = m.Set("user-1", "❤️")
	assert.False(t, m.Has("user-1", "👍"))
	assert.True(t, m.Has("user-1", "❤️"))

	// One reaction per user, always
	total := 0
	for _, c := range m.Counts() {
		total += c
	}
	assert.Equal(t, 1, total)
}

func TestReactionMap_SetSameEmojiIsIdempotent(t *testing.T) {
	m := ReactionMap{}
	m = m.Set("user-1", "👍")
	m = m.Set("user-1", "👍")

	assert.Equal(t, map[string]int{"👍": 1}, m.Counts())
}

func TestReactionMap_EmptyBucketsDropped(t *testing.T) {
	m := ReactionMap{}
	m = m.Set("user-1", "👍")
	m = m.Set("user-1", "❤️")

	_, exists := m["👍"]
	assert.False(t, exists)
}

func TestReactionMap_NilReceiver(t *testing.T) {
	var m ReactionMap

	m = m.Set("user-1", "🎉")

	assert.True(t, m.Has("user-1", "🎉"))
	assert.Equal(t, map[string]int{"🎉": 1}, m.Counts())
}

func TestReactionMap_CountsMultipleUsers(t *testing.T) {
	m := ReactionMap{}
	m = m.Set("user-1", "👍")
	m = m.Set("user-2", "👍")
	m = m.Set("user-3", "❤️")

	counts := m.Counts()
	assert.Equal(t, 2, counts["👍"])
	assert.Equal(t, 1, counts["❤️"])
}
