package feed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulsefeed/backend/internal/logger"
	"pulsefeed/backend/internal/models"
	"pulsefeed/backend/internal/repository"
)

// Notifier receives a freshly created post together with the ids of the
// users whose feeds it belongs in. Implemented by the SSE hub; nil
// disables notifications.
type Notifier interface {
	PublishPost(post *models.Post, audience []uint)
}

// Item is one post annotated with its reaction summary.
type Item struct {
	Post    models.Post
	Summary ReactionSummary
}

// Page is one assembled feed page. It is built fresh per request and
// never cached.
type Page struct {
	Items []Item
	Page  int
	Size  int
}

// Service assembles feeds: it resolves the audience, pages posts by id
// cursor, aggregates reactions, and owns the reaction toggle and the
// post delete cascade.
type Service struct {
	posts       repository.PostRepository
	users       repository.UserRepository
	follows     repository.FollowRepository
	reactions   repository.ReactionRepository
	attachments repository.AttachmentRepository
	audience    *AudienceResolver
	notifier    Notifier
	log         *zap.Logger
}

func NewService(
	posts repository.PostRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	reactions repository.ReactionRepository,
	attachments repository.AttachmentRepository,
	notifier Notifier,
) *Service {
	return &Service{
		posts:       posts,
		users:       users,
		follows:     follows,
		reactions:   reactions,
		attachments: attachments,
		audience:    NewAudienceResolver(users, follows),
		notifier:    notifier,
		log:         logger.L,
	}
}

// audienceQuery builds the author filter for a viewer. A nil viewer is
// the anonymous global feed: no author filter at all.
func (s *Service) audienceQuery(ctx context.Context, viewerID *uint) (repository.PostQuery, error) {
	if viewerID == nil {
		return repository.PostQuery{}, nil
	}
	audience, err := s.audience.AudienceFor(ctx, *viewerID)
	if err != nil {
		return repository.PostQuery{}, err
	}
	return repository.PostQuery{AuthorIDs: audience}, nil
}

// Feed returns one page of the viewer's timeline: posts with ids
// strictly below beforeID (or the newest posts when beforeID is 0),
// newest first. Audience resolution failures short-circuit before any
// post query runs.
func (s *Service) Feed(ctx context.Context, viewerID *uint, beforeID uint, page PageSpec) (*Page, error) {
	q, err := s.audienceQuery(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if beforeID > 0 {
		q.Bound = &repository.IDBound{Op: repository.BoundBefore, Value: beforeID}
	}

	page = page.Normalize()
	posts, err := s.posts.List(ctx, q, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}

	return &Page{Items: s.annotate(posts, viewerID), Page: page.Page, Size: page.Size}, nil
}

// FeedAfter returns every post in the viewer's timeline with an id
// strictly above afterID, newest first and unpaginated. Used to poll
// for posts that arrived since the viewer last looked; the result is
// assumed small.
func (s *Service) FeedAfter(ctx context.Context, viewerID *uint, afterID uint) ([]Item, error) {
	q, err := s.audienceQuery(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	q.Bound = &repository.IDBound{Op: repository.BoundAfter, Value: afterID}

	posts, err := s.posts.List(ctx, q, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.annotate(posts, viewerID), nil
}

// FeedCount returns how many timeline posts have an id strictly above
// afterID. This is a real COUNT over the same predicate FeedAfter uses;
// no rows are materialized.
func (s *Service) FeedCount(ctx context.Context, viewerID uint, afterID uint) (int64, error) {
	q, err := s.audienceQuery(ctx, &viewerID)
	if err != nil {
		return 0, err
	}
	q.Bound = &repository.IDBound{Op: repository.BoundAfter, Value: afterID}

	return s.posts.Count(ctx, q)
}

// UserPosts returns one page of a single user's posts, same cursor
// semantics as Feed but with the audience pinned to that user.
func (s *Service) UserPosts(ctx context.Context, username string, viewerID *uint, beforeID uint, page PageSpec) (*Page, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	q := repository.PostQuery{AuthorIDs: []uint{user.ID}}
	if beforeID > 0 {
		q.Bound = &repository.IDBound{Op: repository.BoundBefore, Value: beforeID}
	}

	page = page.Normalize()
	posts, err := s.posts.List(ctx, q, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}

	return &Page{Items: s.annotate(posts, viewerID), Page: page.Page, Size: page.Size}, nil
}

func (s *Service) annotate(posts []models.Post, viewerID *uint) []Item {
	items := make([]Item, len(posts))
	for i := range posts {
		items[i] = Item{Post: posts[i], Summary: Summarize(posts[i].Reactions, viewerID)}
	}
	return items
}

// AttachmentInput describes a file reference to attach to a new post.
type AttachmentInput struct {
	FileName    string
	ContentType string
	Size        int64
}

// CreatePost stores a new post, with an attachment reference when one
// is supplied, and notifies the author's followers.
func (s *Service) CreatePost(ctx context.Context, authorID uint, content string, att *AttachmentInput) (*models.Post, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := &models.Post{AuthorID: authorID, Content: content}
	if att != nil {
		attachment := &models.Attachment{
			StorageKey:  uuid.New().String(),
			FileName:    att.FileName,
			ContentType: att.ContentType,
			Size:        att.Size,
		}
		if err := s.attachments.Create(ctx, attachment); err != nil {
			return nil, err
		}
		post.AttachmentID = &attachment.ID
		post.Attachment = attachment
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		followers, err := s.follows.FollowersOf(ctx, authorID)
		if err != nil {
			// The post is already stored; a failed fanout only costs
			// live notifications, so log and move on.
			s.log.Warn("failed to resolve followers for post notification",
				zap.Uint("author_id", authorID), zap.Error(err))
		} else {
			s.notifier.PublishPost(post, append(followers, authorID))
		}
	}

	return post, nil
}

// IsOwner reports whether userID authored the post. The caller layer
// uses this to enforce ownership; the engine only answers the question.
func (s *Service) IsOwner(ctx context.Context, userID, postID uint) (bool, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, err
	}
	return post.AuthorID == userID, nil
}

// DeletePost removes a post, its reactions, and its attachment
// reference. Ownership must already have been checked by the caller.
func (s *Service) DeletePost(ctx context.Context, postID uint) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := s.reactions.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	if post.AttachmentID != nil {
		if err := s.attachments.Delete(ctx, *post.AttachmentID); err != nil {
			return err
		}
	}

	s.log.Info("post deleted", zap.Uint("post_id", postID))
	return nil
}

// Follow records a follower -> followee edge. Self-follow is rejected
// here so no self-edge ever reaches the store.
func (s *Service) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if _, err := s.users.FindByID(ctx, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.follows.Create(ctx, followerID, followeeID)
}

// Unfollow removes the follower -> followee edge if it exists.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.follows.Delete(ctx, followerID, followeeID)
}
