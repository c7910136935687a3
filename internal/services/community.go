package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nuuxixv/MindConnect/internal/models"

	"gorm.io/gorm"
)

var postCategories = map[string]bool{
	models.PostCategoryFree:  true,
	models.PostCategoryWorry: true,
	models.PostCategoryInfo:  true,
}

type PostInput struct {
	Title    string
	Content  string
	Category string
}

type CommunityService struct {
	db *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

// authorColumns limits preloaded authors to what the forum shows.
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "profile_image_url")
}

func (s *CommunityService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("User", authorColumns).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *CommunityService) CreatePost(ctx context.Context, userID string, in PostInput) (*models.Post, error) {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		verr.Add("title", "is required")
	}
	if content == "" {
		verr.Add("content", "is required")
	}
	if !postCategories[in.Category] {
		verr.Add("category", "must be one of free, worry, info")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: in.Category,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// GetPost counts a view and returns the post with its comments, newest first.
func (s *CommunityService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("count post view: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("post")
	}

	var post models.Post
	err := db.Where("id = ?", id).
		Preload("User", authorColumns).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments.User", authorColumns).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("post")
	}
	if err != nil {
		return nil, fmt.Errorf("load post %d: %w", id, err)
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return &post, nil
}

func (s *CommunityService) CreateComment(ctx context.Context, userID string, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "is required")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return nil, notFound("post")
	}

	comment := models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := db.Where("id = ?", comment.ID).Preload("User", authorColumns).First(&comment).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return &comment, nil
}
