package repository

import (
	"time"

	"gorm.io/gorm"

	"linkup-backend/models"
)

// PostRepositoryInterface — доступ к постам и лайкам.
type PostRepositoryInterface interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(post *models.Post) error
	GetByID(id uint) (*models.Post, error)

	// GetPostsByDateAndRating возвращает кандидатов для рекомендаций:
	// посты новее даты cutoff, не принадлежащие actorID, с числом лайков
	// не меньше minLikes. Посты сообществ (без автора) не исключаются.
	GetPostsByDateAndRating(actorID uint, cutoff time.Time, minLikes int) ([]models.Post, error)

	IsLiked(post *models.Post, user *models.User) (bool, error)
	Like(post *models.Post, user *models.User) error
	Unlike(post *models.Post, user *models.User) error
	LikesCount(post *models.Post) (int, error)
	GetLikedUsers(post *models.Post) ([]models.User, error)

	UpdateImageURL(post *models.Post, imageURL string) error

	Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Post], error)
	PaginateByAuthor(author *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Post], error)
	PaginateByCommunity(community *models.Community, filters map[string]string, page, perPage int) (*models.Page[models.Post], error)
	PaginateLiked(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Post], error)
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostRepository) Delete(post *models.Post) error {
	return r.db.Select("LikedUsers", "Comments").Delete(post).Error
}

func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Community").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) GetPostsByDateAndRating(actorID uint, cutoff time.Time, minLikes int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Where("posts.publication_date > ?", cutoff).
		Where("posts.user_id IS NULL OR posts.user_id <> ?", actorID).
		Group("posts.id").
		Having("count(post_likes.user_id) >= ?", minLikes).
		Preload("Author").
		Order("posts.id").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) IsLiked(post *models.Post, user *models.User) (bool, error) {
	var count int64
	err := r.db.Table("post_likes").
		Where("post_id = ? AND user_id = ?", post.ID, user.ID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) Like(post *models.Post, user *models.User) error {
	return r.db.Model(post).Association("LikedUsers").Append(user)
}

func (r *PostRepository) Unlike(post *models.Post, user *models.User) error {
	return r.db.Model(post).Association("LikedUsers").Delete(user)
}

func (r *PostRepository) LikesCount(post *models.Post) (int, error) {
	var count int64
	err := r.db.Table("post_likes").Where("post_id = ?", post.ID).Count(&count).Error
	return int(count), err
}

func (r *PostRepository) GetLikedUsers(post *models.Post) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN post_likes ON post_likes.user_id = users.id").
		Where("post_likes.post_id = ?", post.ID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

func (r *PostRepository) UpdateImageURL(post *models.Post, imageURL string) error {
	post.ImageURL = imageURL
	return r.db.Model(post).Update("image_url", imageURL).Error
}

func (r *PostRepository) Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Post], error) {
	query := applyFilters(r.db.Model(&models.Post{}).Preload("Author"), filters)
	return paginateQuery[models.Post](query, page, perPage, "posts.publication_date DESC")
}

func (r *PostRepository) PaginateByAuthor(author *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Post], error) {
	query := r.db.Model(&models.Post{}).Preload("Author").Where("posts.user_id = ?", author.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Post](query, page, perPage, "posts.publication_date DESC")
}

func (r *PostRepository) PaginateByCommunity(community *models.Community, filters map[string]string, page, perPage int) (*models.Page[models.Post], error) {
	query := r.db.Model(&models.Post{}).Preload("Author").Where("posts.community_id = ?", community.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Post](query, page, perPage, "posts.publication_date DESC")
}

func (r *PostRepository) PaginateLiked(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Post], error) {
	query := r.db.Model(&models.Post{}).Preload("Author").
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.user_id = ?", user.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Post](query, page, perPage, "posts.publication_date DESC")
}
