package repository

import (
	"gorm.io/gorm"

	"linkup-backend/models"
)

// CommunityRepositoryInterface — доступ к сообществам и членству.
type CommunityRepositoryInterface interface {
	Create(community *models.Community) error
	Update(community *models.Community) error
	Delete(community *models.Community) error
	GetByID(id uint) (*models.Community, error)
	GetCommunities() ([]models.Community, error)

	IsMember(community *models.Community, user *models.User) (bool, error)
	Join(community *models.Community, user *models.User) error
	Leave(community *models.Community, user *models.User) error
	GetMembers(community *models.Community) ([]models.User, error)
	GetCommunityPosts(community *models.Community) ([]models.Post, error)
	MembersCount(community *models.Community) (int, error)

	UpdateImageURL(community *models.Community, imageURL string) error

	Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Community], error)
	PaginateByMember(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Community], error)
	PaginateByOwner(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Community], error)
}

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

func (r *CommunityRepository) Create(community *models.Community) error {
	return r.db.Create(community).Error
}

func (r *CommunityRepository) Update(community *models.Community) error {
	return r.db.Save(community).Error
}

func (r *CommunityRepository) Delete(community *models.Community) error {
	return r.db.Select("Members", "Posts").Delete(community).Error
}

func (r *CommunityRepository) GetByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.Preload("Owner").First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) GetCommunities() ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.Preload("Owner").Order("id").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *CommunityRepository) IsMember(community *models.Community, user *models.User) (bool, error) {
	if community == nil || user == nil {
		return false, nil
	}
	var count int64
	err := r.db.Table("community_members").
		Where("community_id = ? AND user_id = ?", community.ID, user.ID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityRepository) Join(community *models.Community, user *models.User) error {
	return r.db.Model(community).Association("Members").Append(user)
}

func (r *CommunityRepository) Leave(community *models.Community, user *models.User) error {
	return r.db.Model(community).Association("Members").Delete(user)
}

func (r *CommunityRepository) GetMembers(community *models.Community) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN community_members ON community_members.user_id = users.id").
		Where("community_members.community_id = ?", community.ID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

func (r *CommunityRepository) GetCommunityPosts(community *models.Community) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("community_id = ?", community.ID).Order("id").Find(&posts).Error
	return posts, err
}

func (r *CommunityRepository) MembersCount(community *models.Community) (int, error) {
	var count int64
	err := r.db.Table("community_members").Where("community_id = ?", community.ID).Count(&count).Error
	return int(count), err
}

func (r *CommunityRepository) UpdateImageURL(community *models.Community, imageURL string) error {
	community.ImageURL = imageURL
	return r.db.Model(community).Update("image_url", imageURL).Error
}

func (r *CommunityRepository) Paginate(filters map[string]string, page, perPage int) (*models.Page[models.Community], error) {
	query := applyFilters(r.db.Model(&models.Community{}).Preload("Owner"), filters)
	return paginateQuery[models.Community](query, page, perPage, "communities.id")
}

func (r *CommunityRepository) PaginateByMember(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Community], error) {
	query := r.db.Model(&models.Community{}).Preload("Owner").
		Joins("JOIN community_members ON community_members.community_id = communities.id").
		Where("community_members.user_id = ?", user.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Community](query, page, perPage, "communities.id")
}

func (r *CommunityRepository) PaginateByOwner(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.Community], error) {
	query := r.db.Model(&models.Community{}).Preload("Owner").Where("communities.user_id = ?", user.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.Community](query, page, perPage, "communities.id")
}
