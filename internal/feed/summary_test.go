package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed/backend/internal/models"
)

func TestSummarizeCounts(t *testing.T) {
	reactions := []models.Reaction{
		{UserID: 1, Kind: models.ReactionLike},
		{UserID: 2, Kind: models.ReactionLike},
		{UserID: 3, Kind: models.ReactionDislike},
	}

	s := Summarize(reactions, nil)
	assert.Equal(t, 2, s.Likes)
	assert.Equal(t, 1, s.Dislikes)
	assert.Nil(t, s.Viewer)
}

func TestSummarizeViewerReaction(t *testing.T) {
	reactions := []models.Reaction{
		{UserID: 1, Kind: models.ReactionLike},
		{UserID: 2, Kind: models.ReactionDislike},
	}

	s := Summarize(reactions, uintPtr(2))
	require.NotNil(t, s.Viewer)
	assert.Equal(t, models.ReactionDislike, *s.Viewer)

	// A viewer who has not reacted gets none.
	s = Summarize(reactions, uintPtr(99))
	assert.Nil(t, s.Viewer)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, uintPtr(1))
	assert.Zero(t, s.Likes)
	assert.Zero(t, s.Dislikes)
	assert.Nil(t, s.Viewer)
}
