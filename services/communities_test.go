package services

import (
	"testing"

	"linkup-backend/config"
	"linkup-backend/models"
)

func TestRankCommunitiesSubscriptionWeight(t *testing.T) {
	actor := models.User{ID: 1}
	followee := models.User{ID: 2}
	stranger := models.User{ID: 3}
	users := newFakeUserRepo(actor, followee, stranger)
	users.following[1] = []uint{2}

	withFollowee := models.Community{ID: 10, Name: "go"}
	withStranger := models.Community{ID: 11, Name: "rust"}
	communities := newFakeCommunityRepo(withStranger, withFollowee)
	communities.members[10] = []models.User{followee}
	communities.members[11] = []models.User{stranger}

	service := NewCommunityService(communities, users, &config.Config{})
	ranked, err := service.rankCommunities(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ranked[0].community.ID != withFollowee.ID {
		t.Errorf("первым ожидалось сообщество %d, получено %d", withFollowee.ID, ranked[0].community.ID)
	}
	if ranked[0].weight != CommunitySubscriptionWeight {
		t.Errorf("вес = %v, ожидалось %v", ranked[0].weight, float64(CommunitySubscriptionWeight))
	}
}

func TestRankCommunitiesLikedPostWeight(t *testing.T) {
	actor := models.User{ID: 1}
	users := newFakeUserRepo(actor, models.User{ID: 2})
	likedPost := models.Post{ID: 100, CommunityID: uintPtr(10)}
	users.liked[1] = []models.Post{likedPost}

	liked := models.Community{ID: 10}
	other := models.Community{ID: 11}
	communities := newFakeCommunityRepo(other, liked)
	communities.posts[10] = []models.Post{likedPost}

	service := NewCommunityService(communities, users, &config.Config{})
	ranked, err := service.rankCommunities(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ranked[0].community.ID != liked.ID {
		t.Errorf("первым ожидалось сообщество %d, получено %d", liked.ID, ranked[0].community.ID)
	}
	if ranked[0].weight != LikedPostWeight {
		t.Errorf("вес = %v, ожидалось %v", ranked[0].weight, float64(LikedPostWeight))
	}
}

func TestRankCommunitiesExcludesJoined(t *testing.T) {
	actor := models.User{ID: 1}
	users := newFakeUserRepo(actor, models.User{ID: 2})
	joined := models.Community{ID: 10}
	fresh := models.Community{ID: 11}
	users.member[1] = []models.Community{joined}

	communities := newFakeCommunityRepo(joined, fresh)
	service := NewCommunityService(communities, users, &config.Config{})
	ranked, err := service.rankCommunities(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(ranked) != 1 || ranked[0].community.ID != fresh.ID {
		t.Fatalf("свои сообщества должны исключаться из рекомендаций: %+v", ranked)
	}
}

// Отката к популярности у сообществ нет: нулевые веса сохраняют
// исходный порядок.
func TestRankCommunitiesNoPopularityFallback(t *testing.T) {
	actor := models.User{ID: 1}
	member := models.User{ID: 2}
	users := newFakeUserRepo(actor, member)

	quietFirst := models.Community{ID: 10}
	popular := models.Community{ID: 11}
	communities := newFakeCommunityRepo(quietFirst, popular)
	communities.members[11] = []models.User{member}

	service := NewCommunityService(communities, users, &config.Config{})
	ranked, err := service.rankCommunities(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ranked[0].weight != 0 || ranked[1].weight != 0 {
		t.Fatalf("сценарий рассчитан на нулевые веса: %+v", ranked)
	}
	if ranked[0].community.ID != quietFirst.ID {
		t.Errorf("при нулевых весах порядок должен сохраняться, первым получен %d", ranked[0].community.ID)
	}
}
