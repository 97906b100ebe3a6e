package services

import (
	"testing"

	"linkup-backend/models"
)

func TestRankVacanciesKeepsZeroWeight(t *testing.T) {
	actor := models.User{ID: 1, Skills: "python,sql"}
	match := models.Vacancy{ID: 10, Skills: "python,sql"}
	partial := models.Vacancy{ID: 11, Skills: "sql,go"}
	miss := models.Vacancy{ID: 12, Skills: "rust"}
	repo := &fakeVacancyRepo{vacancies: []models.Vacancy{miss, partial, match}}

	service := NewVacancyService(repo, newFakeUserRepo())
	ranked, err := service.rankVacancies(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	// вакансии без совпадений остаются в хвосте выдачи
	if len(ranked) != 3 {
		t.Fatalf("ожидалось 3 вакансии, получено %d", len(ranked))
	}
	if ranked[0].vacancy.ID != match.ID || ranked[0].weight != 2*SkillWeight {
		t.Errorf("первая вакансия: %d с весом %v", ranked[0].vacancy.ID, ranked[0].weight)
	}
	if ranked[1].vacancy.ID != partial.ID || ranked[1].weight != SkillWeight {
		t.Errorf("вторая вакансия: %d с весом %v", ranked[1].vacancy.ID, ranked[1].weight)
	}
	if ranked[2].vacancy.ID != miss.ID || ranked[2].weight != 0 {
		t.Errorf("третья вакансия: %d с весом %v", ranked[2].vacancy.ID, ranked[2].weight)
	}
}

// Навыки сравниваются как есть: регистр и пробелы не нормализуются.
func TestRankVacanciesExactSkillMatch(t *testing.T) {
	actor := models.User{ID: 1, Skills: "Python, sql"}
	vacancy := models.Vacancy{ID: 10, Skills: "python,sql"}
	repo := &fakeVacancyRepo{vacancies: []models.Vacancy{vacancy}}

	service := NewVacancyService(repo, newFakeUserRepo())
	ranked, err := service.rankVacancies(&actor)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ranked[0].weight != 0 {
		t.Errorf("вес = %v, при несовпадении регистра и пробелов ожидался 0", ranked[0].weight)
	}
}

func TestUpdateVacancyForeignOwner(t *testing.T) {
	owner := models.User{ID: 1}
	intruder := models.User{ID: 2}
	vacancy := models.Vacancy{ID: 10, UserID: owner.ID, Description: "backend"}
	repo := &fakeVacancyRepo{vacancies: []models.Vacancy{vacancy}}

	service := NewVacancyService(repo, newFakeUserRepo())
	_, err := service.UpdateVacancy(&intruder, 10, VacancyInput{Description: "hijack"})
	if err != ErrPermissionDenied {
		t.Fatalf("ожидалась ErrPermissionDenied, получено %v", err)
	}
}
