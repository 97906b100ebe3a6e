package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"linkup-backend/config"
	"linkup-backend/models"
)

func newUserService(users *fakeUserRepo, vacancies *fakeVacancyRepo) *UserService {
	if vacancies == nil {
		vacancies = &fakeVacancyRepo{}
	}
	return NewUserService(users, vacancies, newFakeCommunityRepo(), LogMailer{}, &config.Config{})
}

func TestRankFriendsSubscriptionWeight(t *testing.T) {
	actor := models.User{ID: 1}
	followee := models.User{ID: 2}
	mutualSub := models.User{ID: 3} // тоже подписан на followee
	loner := models.User{ID: 4}
	users := newFakeUserRepo(actor, followee, mutualSub, loner)
	users.following[1] = []uint{2}
	users.following[3] = []uint{2}

	ranked, err := newUserService(users, nil).rankFriends(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	// followee исключен как подписка, остаются mutualSub и loner
	if len(ranked) != 2 {
		t.Fatalf("ожидалось 2 кандидата, получено %d", len(ranked))
	}
	if ranked[0].user.ID != mutualSub.ID {
		t.Errorf("первым ожидался кандидат %d, получен %d", mutualSub.ID, ranked[0].user.ID)
	}
	if ranked[0].weight-ranked[1].weight != SubscriptionWeight {
		t.Errorf("разрыв весов = %v, ожидалось %v",
			ranked[0].weight-ranked[1].weight, float64(SubscriptionWeight))
	}
}

func TestRankFriendsSameCityAndCommunity(t *testing.T) {
	community := models.Community{ID: 10}
	actor := models.User{ID: 1, City: "Almaty"}
	similar := models.User{ID: 2, City: "Almaty"}
	distant := models.User{ID: 3, City: "Astana"}
	users := newFakeUserRepo(actor, similar, distant)
	users.member[1] = []models.Community{community}
	users.member[2] = []models.Community{community}

	ranked, err := newUserService(users, nil).rankFriends(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ranked[0].user.ID != similar.ID {
		t.Errorf("первым ожидался кандидат %d, получен %d", similar.ID, ranked[0].user.ID)
	}
	want := float64(SameAttributesWeight + SameCommunityWeight)
	if ranked[0].weight-ranked[1].weight != want {
		t.Errorf("разрыв весов = %v, ожидалось %v", ranked[0].weight-ranked[1].weight, want)
	}
}

// Вклад вектора сходства начисляется каждому кандидату одинаково и не
// меняет взаимный порядок.
func TestRankFriendsSimilarityAppliedToAll(t *testing.T) {
	actor := models.User{ID: 1}
	twin := models.User{ID: 2}
	other := models.User{ID: 3}
	users := newFakeUserRepo(actor, twin, other)
	shared := models.Post{ID: 100}
	users.liked[1] = []models.Post{shared}
	users.liked[2] = []models.Post{shared}

	ranked, err := newUserService(users, nil).rankFriends(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("ожидалось 2 кандидата, получено %d", len(ranked))
	}
	if ranked[0].weight != ranked[1].weight {
		t.Errorf("вектор сходства должен поднимать всех кандидатов одинаково: %v и %v",
			ranked[0].weight, ranked[1].weight)
	}
	if ranked[0].weight == 0 {
		t.Error("общий вклад сходства должен быть ненулевым")
	}
}

func TestRankEmployeesSkillOverlap(t *testing.T) {
	vacancy := models.Vacancy{ID: 1, Skills: "python,sql", UserID: 9}
	strong := models.User{ID: 2, Skills: "python,sql"}
	partial := models.User{ID: 3, Skills: "python,go"}
	mismatch := models.User{ID: 4, Skills: "go,rust"}
	users := newFakeUserRepo(strong, partial, mismatch)

	service := newUserService(users, &fakeVacancyRepo{vacancies: []models.Vacancy{vacancy}})
	ranked, err := service.rankEmployees(&vacancy)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	// кандидат без совпадений отбрасывается
	if len(ranked) != 2 {
		t.Fatalf("ожидалось 2 кандидата, получено %d", len(ranked))
	}
	if ranked[0].user.ID != strong.ID || ranked[0].weight != 2*SkillWeight {
		t.Errorf("первый кандидат: %d с весом %v, ожидался %d с весом %v",
			ranked[0].user.ID, ranked[0].weight, strong.ID, 2*SkillWeight)
	}
	if ranked[1].user.ID != partial.ID || ranked[1].weight != SkillWeight {
		t.Errorf("второй кандидат: %d с весом %v, ожидался %d с весом %v",
			ranked[1].user.ID, ranked[1].weight, partial.ID, float64(SkillWeight))
	}
}

func TestRankEmployeesSkipsEmptySkills(t *testing.T) {
	vacancy := models.Vacancy{ID: 1, Skills: "python"}
	blank := models.User{ID: 2}
	users := newFakeUserRepo(blank)

	service := newUserService(users, &fakeVacancyRepo{vacancies: []models.Vacancy{vacancy}})
	ranked, err := service.rankEmployees(&vacancy)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("кандидаты без навыков должны отбрасываться: %+v", ranked)
	}
}

func TestRecommendEmployeesUnknownVacancy(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: 1})
	service := newUserService(users, &fakeVacancyRepo{})

	_, err := service.RecommendEmployees(&models.User{ID: 1}, 404, 1, 10)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("ожидалась ошибка отсутствия вакансии, получено %v", err)
	}
}

func TestAddFriendSelf(t *testing.T) {
	actor := models.User{ID: 1, Username: "solo"}
	users := newFakeUserRepo(actor)
	service := newUserService(users, nil)

	if err := service.AddFriend(&actor, "solo"); !errors.Is(err, ErrSelfAction) {
		t.Fatalf("ожидалась ErrSelfAction, получено %v", err)
	}
}

func TestAcceptFriendWithoutRequest(t *testing.T) {
	actor := models.User{ID: 1, Username: "one"}
	other := models.User{ID: 2, Username: "two"}
	users := newFakeUserRepo(actor, other)
	service := newUserService(users, nil)

	accepted, err := service.AcceptFriend(&actor, "two")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if accepted {
		t.Fatal("без встречной заявки дружба не подтверждается")
	}
}
