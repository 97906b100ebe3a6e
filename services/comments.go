package services

import (
	"strings"
	"time"

	"linkup-backend/models"
	"linkup-backend/repository"
)

type CommentService struct {
	comments repository.CommentRepositoryInterface
	posts    repository.PostRepositoryInterface
}

func NewCommentService(comments repository.CommentRepositoryInterface, posts repository.PostRepositoryInterface) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

type CommentInput struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

func (s *CommentService) GetComments(postID uint, page, perPage int) (*models.Page[models.CommentView], error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	result, err := s.comments.PaginateByPost(post, page, perPage)
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(c *models.Comment) (models.CommentView, error) { return toCommentView(c), nil })
}

func (s *CommentService) AddComment(actor *models.User, postID uint, input CommentInput) (*models.CommentView, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:   strings.TrimSpace(input.Text),
		Date:   time.Now(),
		UserID: actor.ID,
		Author: actor,
		PostID: post.ID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	view := toCommentView(comment)
	return &view, nil
}

func (s *CommentService) UpdateComment(actor *models.User, id uint, input CommentInput) (*models.CommentView, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	comment.Text = strings.TrimSpace(input.Text)
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}
	view := toCommentView(comment)
	return &view, nil
}

func (s *CommentService) DeleteComment(actor *models.User, id uint) error {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID {
		return ErrPermissionDenied
	}
	return s.comments.Delete(comment)
}

func toCommentView(comment *models.Comment) models.CommentView {
	author := ""
	if comment.Author != nil {
		author = comment.Author.Username
	}
	return models.CommentView{
		ID:     comment.ID,
		Text:   comment.Text,
		Date:   comment.Date.Format(time.RFC3339),
		Author: author,
		PostID: comment.PostID,
	}
}
