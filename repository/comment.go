package repository

import (
	"gorm.io/gorm"

	"linkup-backend/models"
)

type CommentRepositoryInterface interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)

	Paginate(page, perPage int) (*models.Page[models.Comment], error)
	PaginateByPost(post *models.Post, page, perPage int) (*models.Page[models.Comment], error)
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *CommentRepository) Delete(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}

func (r *CommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Paginate(page, perPage int) (*models.Page[models.Comment], error) {
	query := r.db.Model(&models.Comment{}).Preload("Author")
	return paginateQuery[models.Comment](query, page, perPage, "comments.date DESC")
}

func (r *CommentRepository) PaginateByPost(post *models.Post, page, perPage int) (*models.Page[models.Comment], error) {
	query := r.db.Model(&models.Comment{}).Preload("Author").Where("comments.post_id = ?", post.ID)
	return paginateQuery[models.Comment](query, page, perPage, "comments.date DESC")
}
