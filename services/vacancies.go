package services

import (
	"fmt"
	"sort"
	"strings"

	"linkup-backend/models"
	"linkup-backend/repository"
)

type VacancyService struct {
	vacancies repository.VacancyRepositoryInterface
	users     repository.UserRepositoryInterface
}

func NewVacancyService(vacancies repository.VacancyRepositoryInterface, users repository.UserRepositoryInterface) *VacancyService {
	return &VacancyService{vacancies: vacancies, users: users}
}

type VacancyInput struct {
	Description string `json:"description" validate:"required,min=2,max=500"`
	Skills      string `json:"skills" validate:"omitempty,max=100"`
}

func (s *VacancyService) GetVacancy(id uint) (*models.VacancyView, error) {
	vacancy, err := s.vacancies.GetByID(id)
	if err != nil {
		return nil, err
	}
	view := toVacancyView(vacancy)
	return &view, nil
}

// GetVacancies — список, вакансии конкретного работодателя или
// рекомендации по навыкам пользователя.
func (s *VacancyService) GetVacancies(actor *models.User, filters map[string]string, page, perPage int,
	employer string, recommended bool) (*models.Page[models.VacancyView], error) {
	if recommended {
		return s.RecommendVacancies(actor, page, perPage)
	}
	var result *models.Page[models.Vacancy]
	var err error
	if employer != "" {
		var user *models.User
		user, err = s.users.GetByUsername(employer)
		if err != nil {
			return nil, err
		}
		result, err = s.vacancies.PaginateByEmployer(user, filters, page, perPage)
	} else {
		result, err = s.vacancies.Paginate(filters, page, perPage)
	}
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(v *models.Vacancy) (models.VacancyView, error) { return toVacancyView(v), nil })
}

func (s *VacancyService) AddVacancy(actor *models.User, input VacancyInput) (*models.VacancyView, error) {
	vacancy := &models.Vacancy{
		Description: strings.TrimSpace(input.Description),
		Skills:      input.Skills,
		UserID:      actor.ID,
		Employer:    actor,
	}
	if err := s.vacancies.Create(vacancy); err != nil {
		return nil, err
	}
	view := toVacancyView(vacancy)
	return &view, nil
}

func (s *VacancyService) UpdateVacancy(actor *models.User, id uint, input VacancyInput) (*models.VacancyView, error) {
	vacancy, err := s.vacancies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vacancy.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	vacancy.Description = strings.TrimSpace(input.Description)
	vacancy.Skills = input.Skills
	if err := s.vacancies.Update(vacancy); err != nil {
		return nil, err
	}
	view := toVacancyView(vacancy)
	return &view, nil
}

func (s *VacancyService) DeleteVacancy(actor *models.User, id uint) error {
	vacancy, err := s.vacancies.GetByID(id)
	if err != nil {
		return err
	}
	if vacancy.UserID != actor.ID {
		return ErrPermissionDenied
	}
	return s.vacancies.Delete(vacancy)
}

type rankedVacancy struct {
	vacancy models.Vacancy
	weight  float64
}

// rankVacancies взвешивает вакансии по совпадению навыков. В отличие
// от подбора кандидатов вакансии с нулевым весом остаются в выдаче.
func (s *VacancyService) rankVacancies(actor *models.User) ([]rankedVacancy, error) {
	userSkills := strings.Split(actor.Skills, ",")
	all, err := s.vacancies.GetVacancies()
	if err != nil {
		return nil, err
	}
	ranked := make([]rankedVacancy, 0, len(all))
	for i := range all {
		vacancy := all[i]
		weight := 0.0
		for _, skill := range strings.Split(vacancy.Skills, ",") {
			if containsString(userSkills, skill) {
				weight += SkillWeight
			}
		}
		ranked = append(ranked, rankedVacancy{vacancy: vacancy, weight: weight})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	return ranked, nil
}

func (s *VacancyService) RecommendVacancies(actor *models.User, page, perPage int) (*models.Page[models.VacancyView], error) {
	ranked, err := s.rankVacancies(actor)
	if err != nil {
		return nil, err
	}
	result := paginateSlice(ranked, page, perPage)
	views := make([]models.VacancyView, 0, len(result.Items))
	for i := range result.Items {
		views = append(views, toVacancyView(&result.Items[i].vacancy))
	}
	return &models.Page[models.VacancyView]{Items: views, Meta: result.Meta}, nil
}

func toVacancyView(vacancy *models.Vacancy) models.VacancyView {
	employer := ""
	if vacancy.Employer != nil {
		employer = vacancy.Employer.Username
	}
	return models.VacancyView{
		ID:          vacancy.ID,
		Description: vacancy.Description,
		Skills:      vacancy.Skills,
		Employer:    employer,
		Links:       models.Links{Self: fmt.Sprintf("/api/vacancies/%d", vacancy.ID)},
	}
}
