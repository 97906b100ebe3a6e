package services

import (
	"fmt"
	"math"
	"testing"

	"linkup-backend/models"
)

func post(id uint) models.Post {
	return models.Post{ID: id}
}

func TestBuildSimilarityVectorOverlap(t *testing.T) {
	actor := models.User{ID: 1, Username: "actor"}
	other := models.User{ID: 2, Username: "other"}
	repo := newFakeUserRepo(actor, other)
	repo.liked[1] = []models.Post{post(10), post(11)}
	repo.liked[2] = []models.Post{post(10), post(11), post(12)}

	vector, err := BuildSimilarityVector(&actor, repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(vector) != 1 {
		t.Fatalf("ожидалась одна запись, получено %d", len(vector))
	}
	// inter=2, div = 2+3-2 = 3
	want := 2.0 / 3.0
	if math.Abs(vector[0].Similarity-want) > 1e-9 {
		t.Errorf("сходство = %v, ожидалось %v", vector[0].Similarity, want)
	}
}

func TestBuildSimilarityVectorNoLikes(t *testing.T) {
	actor := models.User{ID: 1}
	other := models.User{ID: 2}
	repo := newFakeUserRepo(actor, other)

	vector, err := BuildSimilarityVector(&actor, repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(vector) != 1 {
		t.Fatalf("ожидалась одна запись, получено %d", len(vector))
	}
	// без лайков знаменатель был бы нулевым, сходство должно быть 0
	if vector[0].Similarity != 0 {
		t.Errorf("сходство = %v, ожидалось 0", vector[0].Similarity)
	}
}

func TestBuildSimilarityVectorExcludesActor(t *testing.T) {
	actor := models.User{ID: 1}
	repo := newFakeUserRepo(actor, models.User{ID: 2}, models.User{ID: 3})

	vector, err := BuildSimilarityVector(&actor, repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	for _, entry := range vector {
		if entry.User.ID == actor.ID {
			t.Fatal("пользователь не должен попадать в собственный вектор")
		}
	}
	if len(vector) != 2 {
		t.Errorf("размер вектора = %d, ожидалось 2", len(vector))
	}
}

func TestBuildSimilarityVectorCap(t *testing.T) {
	users := []models.User{{ID: 1}}
	for i := uint(2); i <= 30; i++ {
		users = append(users, models.User{ID: i, Username: fmt.Sprintf("user%d", i)})
	}
	repo := newFakeUserRepo(users...)

	vector, err := BuildSimilarityVector(&users[0], repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(vector) != 20 {
		t.Errorf("размер вектора = %d, ожидалось 20", len(vector))
	}
}

func TestBuildSimilarityVectorTieBreakByID(t *testing.T) {
	actor := models.User{ID: 5}
	repo := newFakeUserRepo(actor, models.User{ID: 3}, models.User{ID: 1}, models.User{ID: 2})

	vector, err := BuildSimilarityVector(&actor, repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	// коэффициенты равны, порядок — по возрастанию ID
	for i := 1; i < len(vector); i++ {
		if vector[i-1].User.ID > vector[i].User.ID {
			t.Fatalf("при равном сходстве ожидался порядок по ID: %d перед %d",
				vector[i-1].User.ID, vector[i].User.ID)
		}
	}
}

func TestBuildSimilarityVectorDescending(t *testing.T) {
	actor := models.User{ID: 1}
	near := models.User{ID: 2}
	far := models.User{ID: 3}
	repo := newFakeUserRepo(actor, far, near)
	repo.liked[1] = []models.Post{post(10), post(11)}
	repo.liked[2] = []models.Post{post(10), post(11)}
	repo.liked[3] = []models.Post{post(10), post(99), post(98)}

	vector, err := BuildSimilarityVector(&actor, repo)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if vector[0].User.ID != near.ID {
		t.Errorf("первым ожидался пользователь %d, получен %d", near.ID, vector[0].User.ID)
	}
	if vector[0].Similarity <= vector[1].Similarity {
		t.Errorf("вектор должен быть отсортирован по убыванию: %v <= %v",
			vector[0].Similarity, vector[1].Similarity)
	}
}
