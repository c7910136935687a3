package services

import (
	"context"
	"testing"

	"github.com/nuuxixv/MindConnect/internal/database/dbtest"
	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCommunityPostsAndComments(t *testing.T) {
	db := dbtest.Open(t)
	first := "Jisoo"
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "secret@example.com", FirstName: &first}).Error)
	svc := NewCommunityService(db)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", PostInput{Title: "Sleep", Content: "Any tips?", Category: models.PostCategoryWorry})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, "u1", post.ID, "Try a routine")
	require.NoError(t, err)
	latest, err := svc.CreateComment(ctx, "u1", post.ID, "And less screen time")
	require.NoError(t, err)
	require.NotNil(t, latest.User)
	require.Equal(t, "Jisoo", *latest.User.FirstName)
	require.Empty(t, latest.User.Email, "authors expose only public columns")

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Views)
	require.Len(t, got.Comments, 2)
	require.Equal(t, latest.ID, got.Comments[0].ID)
	require.Equal(t, "Jisoo", *got.User.FirstName)

	got, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Views)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].User)
}

func TestCommunityErrors(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.User{ID: "u1"}).Error)
	svc := NewCommunityService(db)
	ctx := context.Background()

	_, err := svc.GetPost(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateComment(ctx, "u1", 42, "hello")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateComment(ctx, "u1", 42, "  ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.CreatePost(ctx, "u1", PostInput{Category: "gossip"})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"title", "content", "category"}, fieldNames(verr))
}
