package services

import (
	"time"

	"gorm.io/gorm"

	"linkup-backend/models"
	"linkup-backend/repository"
)

// Фейковые репозитории для тестов сервисного слоя. Реализованы только
// методы, которые нужны проверяемым сценариям, остальное закрывает
// встроенный интерфейс.

type fakeUserRepo struct {
	repository.UserRepositoryInterface

	users     []models.User
	liked     map[uint][]models.Post
	following map[uint][]uint
	member    map[uint][]models.Community
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	return &fakeUserRepo{
		users:     users,
		liked:     make(map[uint][]models.Post),
		following: make(map[uint][]uint),
		member:    make(map[uint][]models.Community),
	}
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			return &r.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetLikedPosts(user *models.User) ([]models.Post, error) {
	return r.liked[user.ID], nil
}

func (r *fakeUserRepo) GetFollowing(user *models.User) ([]models.User, error) {
	var result []models.User
	for _, id := range r.following[user.ID] {
		if u, err := r.GetByID(id); err == nil {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) GetCommunities(user *models.User) ([]models.Community, error) {
	return r.member[user.ID], nil
}

func (r *fakeUserRepo) IsFollowing(user, following *models.User) (bool, error) {
	for _, id := range r.following[user.ID] {
		if id == following.ID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) IsFriend(user, friend *models.User) (bool, error) {
	direct, _ := r.IsFollowing(user, friend)
	back, _ := r.IsFollowing(friend, user)
	return direct && back, nil
}

func (r *fakeUserRepo) GetFriends(user *models.User) ([]models.User, error) {
	var result []models.User
	for _, id := range r.following[user.ID] {
		other, err := r.GetByID(id)
		if err != nil {
			continue
		}
		if back, _ := r.IsFollowing(other, user); back {
			result = append(result, *other)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) GetFollowersWithoutFriends(user *models.User) ([]models.User, error) {
	var result []models.User
	for i := range r.users {
		other := &r.users[i]
		follows, _ := r.IsFollowing(other, user)
		back, _ := r.IsFollowing(user, other)
		if follows && !back {
			result = append(result, *other)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) GetFollowingWithoutFriends(user *models.User) ([]models.User, error) {
	var result []models.User
	for _, id := range r.following[user.ID] {
		other, err := r.GetByID(id)
		if err != nil {
			continue
		}
		if back, _ := r.IsFollowing(other, user); !back {
			result = append(result, *other)
		}
	}
	return result, nil
}

type fakePostRepo struct {
	repository.PostRepositoryInterface

	candidates []models.Post
	likedBy    map[uint][]models.User
}

func newFakePostRepo(candidates ...models.Post) *fakePostRepo {
	return &fakePostRepo{candidates: candidates, likedBy: make(map[uint][]models.User)}
}

func (r *fakePostRepo) GetPostsByDateAndRating(actorID uint, cutoff time.Time, minLikes int) ([]models.Post, error) {
	return r.candidates, nil
}

func (r *fakePostRepo) GetLikedUsers(post *models.Post) ([]models.User, error) {
	return r.likedBy[post.ID], nil
}

func (r *fakePostRepo) LikesCount(post *models.Post) (int, error) {
	return len(r.likedBy[post.ID]), nil
}

type fakeCommunityRepo struct {
	repository.CommunityRepositoryInterface

	communities []models.Community
	members     map[uint][]models.User
	posts       map[uint][]models.Post
}

func newFakeCommunityRepo(communities ...models.Community) *fakeCommunityRepo {
	return &fakeCommunityRepo{
		communities: communities,
		members:     make(map[uint][]models.User),
		posts:       make(map[uint][]models.Post),
	}
}

func (r *fakeCommunityRepo) GetCommunities() ([]models.Community, error) {
	return r.communities, nil
}

func (r *fakeCommunityRepo) GetByID(id uint) (*models.Community, error) {
	for i := range r.communities {
		if r.communities[i].ID == id {
			return &r.communities[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommunityRepo) GetMembers(community *models.Community) ([]models.User, error) {
	return r.members[community.ID], nil
}

func (r *fakeCommunityRepo) GetCommunityPosts(community *models.Community) ([]models.Post, error) {
	return r.posts[community.ID], nil
}

func (r *fakeCommunityRepo) MembersCount(community *models.Community) (int, error) {
	return len(r.members[community.ID]), nil
}

func (r *fakeCommunityRepo) IsMember(community *models.Community, user *models.User) (bool, error) {
	for _, member := range r.members[community.ID] {
		if member.ID == user.ID {
			return true, nil
		}
	}
	return false, nil
}

type fakeVacancyRepo struct {
	repository.VacancyRepositoryInterface

	vacancies []models.Vacancy
}

func (r *fakeVacancyRepo) GetByID(id uint) (*models.Vacancy, error) {
	for i := range r.vacancies {
		if r.vacancies[i].ID == id {
			return &r.vacancies[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVacancyRepo) GetVacancies() ([]models.Vacancy, error) {
	return r.vacancies, nil
}
