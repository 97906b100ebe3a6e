package repository

import (
	"testing"
	"time"

	"linkup-backend/models"
)

func createPost(t *testing.T, repo *PostRepository, userID *uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:            text,
		Hashtags:        "test",
		PublicationDate: time.Now(),
		UserID:          userID,
	}
	if err := repo.Create(post); err != nil {
		t.Fatalf("не удалось создать пост: %v", err)
	}
	return post
}

func TestLikeAndUnlike(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	author := createUser(t, users, "author")
	fan := createUser(t, users, "fan")
	post := createPost(t, posts, &author.ID, "hello")

	if err := posts.Like(post, fan); err != nil {
		t.Fatalf("не удалось поставить лайк: %v", err)
	}
	liked, err := posts.IsLiked(post, fan)
	if err != nil || !liked {
		t.Fatalf("лайк не зафиксирован: %v %v", liked, err)
	}
	count, err := posts.LikesCount(post)
	if err != nil || count != 1 {
		t.Fatalf("лайков = %d, ожидался 1 (%v)", count, err)
	}

	if err := posts.Unlike(post, fan); err != nil {
		t.Fatalf("не удалось снять лайк: %v", err)
	}
	liked, err = posts.IsLiked(post, fan)
	if err != nil || liked {
		t.Fatalf("лайк должен сниматься: %v %v", liked, err)
	}
}

func TestCandidatesExcludeOwnPosts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	actor := createUser(t, users, "actor")
	other := createUser(t, users, "other")
	createPost(t, posts, &actor.ID, "mine")
	foreign := createPost(t, posts, &other.ID, "foreign")

	cutoff := time.Now().Add(-time.Hour)
	candidates, err := posts.GetPostsByDateAndRating(actor.ID, cutoff, 0)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != foreign.ID {
		t.Fatalf("свои посты должны исключаться из кандидатов: %+v", candidates)
	}
}

func TestCandidatesIncludeCommunityPosts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	communities := NewCommunityRepository(db)
	actor := createUser(t, users, "actor")
	owner := createUser(t, users, "owner")

	community := &models.Community{Name: "go", UserID: owner.ID}
	if err := communities.Create(community); err != nil {
		t.Fatalf("не удалось создать сообщество: %v", err)
	}
	post := &models.Post{
		Text:            "from community",
		Hashtags:        "go",
		PublicationDate: time.Now(),
		CommunityID:     &community.ID,
	}
	if err := posts.Create(post); err != nil {
		t.Fatalf("не удалось создать пост сообщества: %v", err)
	}

	cutoff := time.Now().Add(-time.Hour)
	candidates, err := posts.GetPostsByDateAndRating(actor.ID, cutoff, 0)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != post.ID {
		t.Fatalf("пост сообщества должен быть кандидатом: %+v", candidates)
	}
}

func TestCandidatesRespectCutoffAndMinLikes(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	actor := createUser(t, users, "actor")
	author := createUser(t, users, "author")
	fan := createUser(t, users, "fan")

	old := &models.Post{
		Text:            "old",
		Hashtags:        "test",
		PublicationDate: time.Now().Add(-48 * time.Hour),
		UserID:          &author.ID,
	}
	if err := posts.Create(old); err != nil {
		t.Fatal(err)
	}
	createPost(t, posts, &author.ID, "quiet")
	popular := createPost(t, posts, &author.ID, "popular")
	if err := posts.Like(popular, fan); err != nil {
		t.Fatal(err)
	}

	cutoff := time.Now().Add(-time.Hour)
	candidates, err := posts.GetPostsByDateAndRating(actor.ID, cutoff, 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != popular.ID {
		t.Fatalf("ожидался только свежий пост с лайком: %+v", candidates)
	}
}

func TestPaginateLiked(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	author := createUser(t, users, "author")
	fan := createUser(t, users, "fan")

	liked := createPost(t, posts, &author.ID, "liked")
	createPost(t, posts, &author.ID, "skipped")
	if err := posts.Like(liked, fan); err != nil {
		t.Fatal(err)
	}

	page, err := posts.PaginateLiked(fan, nil, 1, 10)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if page.Meta.TotalItems != 1 || len(page.Items) != 1 || page.Items[0].ID != liked.ID {
		t.Fatalf("лайкнутые посты: %+v", page)
	}
}
