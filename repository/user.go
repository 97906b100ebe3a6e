package repository

import (
	"time"

	"gorm.io/gorm"

	"linkup-backend/models"
)

// UserRepositoryInterface — доступ к пользователям и графу подписок.
type UserRepositoryInterface interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(user *models.User) error
	GetUsers() ([]models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsernameOrEmail(username, email string) (*models.User, error)

	IsFollowing(user, following *models.User) (bool, error)
	IsFriend(user, friend *models.User) (bool, error)
	Follow(user, following *models.User) error
	Unfollow(user, following *models.User) error
	GetFollowing(user *models.User) ([]models.User, error)
	GetFollowers(user *models.User) ([]models.User, error)
	GetFriends(user *models.User) ([]models.User, error)
	GetFollowersWithoutFriends(user *models.User) ([]models.User, error)
	GetFollowingWithoutFriends(user *models.User) ([]models.User, error)

	GetCommunities(user *models.User) ([]models.Community, error)
	GetLikedPosts(user *models.User) ([]models.Post, error)

	UpdateLastSeen(user *models.User) error
	UpdateAvatarURL(user *models.User, avatarURL string) error
	VerifyEmail(user *models.User) error
	SetTwoFactor(user *models.User, enabled bool) error

	Paginate(filters map[string]string, page, perPage int) (*models.Page[models.User], error)
	PaginateFriends(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error)
	PaginateFollowers(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error)
	PaginateFollowing(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error)
	PaginateMembers(community *models.Community, filters map[string]string, page, perPage int) (*models.Page[models.User], error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(user *models.User) error {
	return r.db.Select("Following", "Communities", "LikedPosts").Delete(user).Error
}

func (r *UserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", username, email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) IsFollowing(user, following *models.User) (bool, error) {
	if user == nil || following == nil {
		return false, nil
	}
	var count int64
	err := r.db.Table("subscriptions").
		Where("user_id = ? AND following_id = ?", user.ID, following.ID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) IsFriend(user, friend *models.User) (bool, error) {
	direct, err := r.IsFollowing(user, friend)
	if err != nil || !direct {
		return false, err
	}
	return r.IsFollowing(friend, user)
}

func (r *UserRepository) Follow(user, following *models.User) error {
	ok, err := r.IsFollowing(user, following)
	if err != nil || ok {
		return err
	}
	return r.db.Model(user).Association("Following").Append(following)
}

func (r *UserRepository) Unfollow(user, following *models.User) error {
	ok, err := r.IsFollowing(user, following)
	if err != nil || !ok {
		return err
	}
	return r.db.Model(user).Association("Following").Delete(following)
}

func (r *UserRepository) GetFollowing(user *models.User) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN subscriptions ON subscriptions.following_id = users.id").
		Where("subscriptions.user_id = ?", user.ID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) GetFollowers(user *models.User) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN subscriptions ON subscriptions.user_id = users.id").
		Where("subscriptions.following_id = ?", user.ID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

// friendsQuery выбирает пользователей со взаимной подпиской.
func (r *UserRepository) friendsQuery(user *models.User) *gorm.DB {
	return r.db.Model(&models.User{}).
		Joins("JOIN subscriptions f ON f.following_id = users.id AND f.user_id = ?", user.ID).
		Joins("JOIN subscriptions b ON b.user_id = users.id AND b.following_id = ?", user.ID)
}

func (r *UserRepository) GetFriends(user *models.User) ([]models.User, error) {
	var users []models.User
	err := r.friendsQuery(user).Order("users.id").Find(&users).Error
	return users, err
}

// followersWithoutFriendsQuery — подписчики, на которых пользователь не
// подписан в ответ (входящие заявки в друзья).
func (r *UserRepository) followersWithoutFriendsQuery(user *models.User) *gorm.DB {
	return r.db.Model(&models.User{}).
		Joins("JOIN subscriptions fw ON fw.user_id = users.id AND fw.following_id = ?", user.ID).
		Joins("LEFT JOIN subscriptions fb ON fb.following_id = users.id AND fb.user_id = ?", user.ID).
		Where("fb.user_id IS NULL")
}

// followingWithoutFriendsQuery — подписки без взаимности (исходящие
// заявки).
func (r *UserRepository) followingWithoutFriendsQuery(user *models.User) *gorm.DB {
	return r.db.Model(&models.User{}).
		Joins("JOIN subscriptions fw ON fw.following_id = users.id AND fw.user_id = ?", user.ID).
		Joins("LEFT JOIN subscriptions fb ON fb.user_id = users.id AND fb.following_id = ?", user.ID).
		Where("fb.user_id IS NULL")
}

func (r *UserRepository) GetFollowersWithoutFriends(user *models.User) ([]models.User, error) {
	var users []models.User
	err := r.followersWithoutFriendsQuery(user).Order("users.id").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetFollowingWithoutFriends(user *models.User) ([]models.User, error) {
	var users []models.User
	err := r.followingWithoutFriendsQuery(user).Order("users.id").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetCommunities(user *models.User) ([]models.Community, error) {
	var communities []models.Community
	err := r.db.
		Joins("JOIN community_members ON community_members.community_id = communities.id").
		Where("community_members.user_id = ?", user.ID).
		Order("communities.id").
		Find(&communities).Error
	return communities, err
}

func (r *UserRepository) GetLikedPosts(user *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.user_id = ?", user.ID).
		Order("posts.id").
		Find(&posts).Error
	return posts, err
}

func (r *UserRepository) UpdateLastSeen(user *models.User) error {
	user.LastSeen = time.Now().UTC()
	return r.db.Model(user).Update("last_seen", user.LastSeen).Error
}

func (r *UserRepository) UpdateAvatarURL(user *models.User, avatarURL string) error {
	user.AvatarURL = avatarURL
	return r.db.Model(user).Update("avatar_url", avatarURL).Error
}

func (r *UserRepository) VerifyEmail(user *models.User) error {
	user.VerifiedEmail = true
	return r.db.Model(user).Update("verified_email", true).Error
}

func (r *UserRepository) SetTwoFactor(user *models.User, enabled bool) error {
	user.TwoFactorEnabled = enabled
	return r.db.Model(user).Update("two_factor_enabled", enabled).Error
}

func (r *UserRepository) Paginate(filters map[string]string, page, perPage int) (*models.Page[models.User], error) {
	query := applyFilters(r.db.Model(&models.User{}), filters)
	return paginateQuery[models.User](query, page, perPage, "users.id")
}

func (r *UserRepository) PaginateFriends(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error) {
	query := applyFilters(r.friendsQuery(user), filters)
	return paginateQuery[models.User](query, page, perPage, "users.id")
}

func (r *UserRepository) PaginateFollowers(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error) {
	query := applyFilters(r.followersWithoutFriendsQuery(user), filters)
	return paginateQuery[models.User](query, page, perPage, "users.id")
}

func (r *UserRepository) PaginateFollowing(user *models.User, filters map[string]string, page, perPage int) (*models.Page[models.User], error) {
	query := applyFilters(r.followingWithoutFriendsQuery(user), filters)
	return paginateQuery[models.User](query, page, perPage, "users.id")
}

func (r *UserRepository) PaginateMembers(community *models.Community, filters map[string]string, page, perPage int) (*models.Page[models.User], error) {
	query := r.db.Model(&models.User{}).
		Joins("JOIN community_members ON community_members.user_id = users.id").
		Where("community_members.community_id = ?", community.ID)
	query = applyFilters(query, filters)
	return paginateQuery[models.User](query, page, perPage, "users.id")
}
