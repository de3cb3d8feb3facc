package feed

import "pulsefeed/backend/internal/models"

// ReactionSummary is the aggregated view of a post's reactions.
type ReactionSummary struct {
	Likes    int
	Dislikes int
	// Viewer is the requesting user's own reaction, nil if they have
	// none or the request is anonymous.
	Viewer *models.ReactionKind
}

// Summarize aggregates a post's reaction set for one viewer. The viewer
// is passed explicitly rather than read from any ambient request state.
// At most one reaction exists per (post, user), so the first match for
// the viewer is the only one.
func Summarize(reactions []models.Reaction, viewerID *uint) ReactionSummary {
	var s ReactionSummary
	for i := range reactions {
		switch reactions[i].Kind {
		case models.ReactionLike:
			s.Likes++
		case models.ReactionDislike:
			s.Dislikes++
		}
		if viewerID != nil && reactions[i].UserID == *viewerID {
			kind := reactions[i].Kind
			s.Viewer = &kind
		}
	}
	return s
}
