package feed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pulsefeed/backend/internal/database"
	"pulsefeed/backend/internal/models"
	"pulsefeed/backend/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(db *gorm.DB) *Service {
	return NewService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewReactionRepository(db),
		repository.NewAttachmentRepository(db),
		nil,
	)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createPost inserts a post with an explicit id so tests can pin down
// cursor positions.
func createPost(t *testing.T, db *gorm.DB, id, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: fmt.Sprintf("post %d", id)}
	post.ID = id
	require.NoError(t, db.Create(post).Error)
	return post
}

func uintPtr(v uint) *uint { return &v }

func itemIDs(items []Item) []uint {
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.Post.ID
	}
	return ids
}

func TestFeedAudienceContainment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	createPost(t, db, 1, alice.ID)
	createPost(t, db, 2, bob.ID)
	createPost(t, db, 3, carol.ID)
	createPost(t, db, 4, alice.ID)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	page, err := svc.Feed(ctx, &alice.ID, 0, PageSpec{})
	require.NoError(t, err)

	allowed := map[uint]bool{alice.ID: true, bob.ID: true}
	for _, item := range page.Items {
		assert.True(t, allowed[item.Post.AuthorID],
			"post %d by non-followed author %d in feed", item.Post.ID, item.Post.AuthorID)
	}
	assert.Equal(t, []uint{4, 2, 1}, itemIDs(page.Items))
}

func TestFeedWithoutFolloweesIsOwnPostsOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	createPost(t, db, 1, alice.ID)
	createPost(t, db, 2, bob.ID)
	createPost(t, db, 3, alice.ID)

	// bob follows nobody
	page, err := svc.Feed(ctx, &bob.ID, 0, PageSpec{})
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, itemIDs(page.Items))
}

func TestAnonymousFeedIsGlobal(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createPost(t, db, 1, alice.ID)
	createPost(t, db, 2, bob.ID)

	page, err := svc.Feed(ctx, nil, 0, PageSpec{})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, itemIDs(page.Items))
	for _, item := range page.Items {
		assert.Nil(t, item.Summary.Viewer)
	}
}

func TestCursorExclusivityAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	for id := uint(101); id <= 105; id++ {
		createPost(t, db, id, alice.ID)
	}

	before, err := svc.Feed(ctx, &alice.ID, 104, PageSpec{Page: 0, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint{103, 102, 101}, itemIDs(before.Items))
	for _, item := range before.Items {
		assert.Less(t, item.Post.ID, uint(104))
	}

	after, err := svc.FeedAfter(ctx, &alice.ID, 101)
	require.NoError(t, err)
	assert.Equal(t, []uint{105, 104, 103, 102}, itemIDs(after))
	for _, item := range after {
		assert.Greater(t, item.Post.ID, uint(101))
	}
}

func TestNonexistentReferenceIDIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createPost(t, db, 1, alice.ID)

	items, err := svc.FeedAfter(ctx, &alice.ID, 999999)
	require.NoError(t, err)
	assert.Empty(t, items)

	count, err := svc.FeedCount(ctx, alice.ID, 999999)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountListConsistency(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	createPost(t, db, 10, alice.ID)
	createPost(t, db, 11, bob.ID)
	createPost(t, db, 12, alice.ID)
	createPost(t, db, 13, bob.ID)

	for _, afterID := range []uint{0, 10, 11, 12, 13} {
		items, err := svc.FeedAfter(ctx, &alice.ID, afterID)
		require.NoError(t, err)
		count, err := svc.FeedCount(ctx, alice.ID, afterID)
		require.NoError(t, err)
		assert.Equal(t, int64(len(items)), count, "after=%d", afterID)
	}
}

func TestFeedUnknownViewerFailsFast(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	_, err := svc.Feed(ctx, uintPtr(42), 0, PageSpec{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.FeedCount(ctx, 42, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createPost(t, db, 1, alice.ID)
	createPost(t, db, 2, bob.ID)
	createPost(t, db, 3, alice.ID)

	page, err := svc.UserPosts(ctx, "alice", nil, 0, PageSpec{})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1}, itemIDs(page.Items))

	_, err = svc.UserPosts(ctx, "nobody", nil, 0, PageSpec{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFeedPaging(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	for id := uint(1); id <= 7; id++ {
		createPost(t, db, id, alice.ID)
	}

	first, err := svc.Feed(ctx, &alice.ID, 0, PageSpec{Page: 0, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 6, 5}, itemIDs(first.Items))

	second, err := svc.Feed(ctx, &alice.ID, 0, PageSpec{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 3, 2}, itemIDs(second.Items))

	// Negative page clamps to the first page instead of erroring.
	clamped, err := svc.Feed(ctx, &alice.ID, 0, PageSpec{Page: -5, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 6, 5}, itemIDs(clamped.Items))
}

func reactionRows(t *testing.T, db *gorm.DB, postID, userID uint) []models.Reaction {
	t.Helper()
	var rows []models.Reaction
	require.NoError(t, db.Where("post_id = ? AND user_id = ?", postID, userID).Find(&rows).Error)
	return rows
}

func TestReactToggleOff(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, 1, alice.ID)

	require.NoError(t, svc.React(ctx, post.ID, alice.ID, models.ReactionLike))
	require.NoError(t, svc.React(ctx, post.ID, alice.ID, models.ReactionLike))

	assert.Empty(t, reactionRows(t, db, post.ID, alice.ID))
}

func TestReactSwitchKind(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, 1, alice.ID)

	require.NoError(t, svc.React(ctx, post.ID, alice.ID, models.ReactionLike))
	require.NoError(t, svc.React(ctx, post.ID, alice.ID, models.ReactionDislike))

	rows := reactionRows(t, db, post.ID, alice.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ReactionDislike, rows[0].Kind)
}

func TestReactSingleRowInvariant(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, 1, alice.ID)

	sequence := []models.ReactionKind{
		models.ReactionLike,
		models.ReactionDislike,
		models.ReactionDislike,
		models.ReactionLike,
		models.ReactionLike,
		models.ReactionDislike,
	}
	for _, kind := range sequence {
		require.NoError(t, svc.React(ctx, post.ID, alice.ID, kind))
		assert.LessOrEqual(t, len(reactionRows(t, db, post.ID, alice.ID)), 1)
	}
}

func TestReactUnknownPost(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	err := svc.React(ctx, 12345, alice.ID, models.ReactionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestReactInvalidKind(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	post := createPost(t, db, 1, alice.ID)

	err := svc.React(ctx, post.ID, alice.ID, models.ReactionKind("MEH"))
	assert.ErrorIs(t, err, ErrInvalidReaction)
}

func TestReactionSummaryScenario(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	for id := uint(101); id <= 105; id++ {
		createPost(t, db, id, alice.ID)
	}

	require.NoError(t, svc.React(ctx, 103, alice.ID, models.ReactionLike))
	require.NoError(t, svc.React(ctx, 103, bob.ID, models.ReactionDislike))

	page, err := svc.UserPosts(ctx, "alice", &alice.ID, 104, PageSpec{Size: 5})
	require.NoError(t, err)
	require.Equal(t, []uint{103, 102, 101}, itemIDs(page.Items))

	summary := page.Items[0].Summary
	assert.Equal(t, 1, summary.Likes)
	assert.Equal(t, 1, summary.Dislikes)
	require.NotNil(t, summary.Viewer)
	assert.Equal(t, models.ReactionLike, *summary.Viewer)
}

func TestIsOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, 1, alice.ID)

	owner, err := svc.IsOwner(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = svc.IsOwner(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, owner)

	_, err = svc.IsOwner(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post, err := svc.CreatePost(ctx, alice.ID, "with file", &AttachmentInput{
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
	})
	require.NoError(t, err)
	require.NotNil(t, post.AttachmentID)

	require.NoError(t, svc.React(ctx, post.ID, bob.ID, models.ReactionLike))

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	assert.Empty(t, reactionRows(t, db, post.ID, bob.ID))

	var attachmentCount int64
	require.NoError(t, db.Model(&models.Attachment{}).Where("id = ?", *post.AttachmentID).Count(&attachmentCount).Error)
	assert.Zero(t, attachmentCount)

	err = svc.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFollowRules(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	assert.ErrorIs(t, svc.Follow(ctx, alice.ID, alice.ID), ErrSelfFollow)
	assert.ErrorIs(t, svc.Follow(ctx, alice.ID, 999), ErrUserNotFound)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	// Following twice is idempotent
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = ?", alice.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = ?", alice.ID).Count(&count).Error)
	assert.Zero(t, count)
}
