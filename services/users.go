package services

import (
	"crypto/md5"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linkup-backend/config"
	"linkup-backend/models"
	"linkup-backend/repository"
)

type UserService struct {
	users       repository.UserRepositoryInterface
	vacancies   repository.VacancyRepositoryInterface
	communities repository.CommunityRepositoryInterface
	mailer      Mailer
	cfg         *config.Config
}

func NewUserService(users repository.UserRepositoryInterface, vacancies repository.VacancyRepositoryInterface,
	communities repository.CommunityRepositoryInterface, mailer Mailer, cfg *config.Config) *UserService {
	return &UserService{users: users, vacancies: vacancies, communities: communities, mailer: mailer, cfg: cfg}
}

// UserInput — данные регистрации.
type UserInput struct {
	Username    string `json:"username" validate:"required,min=3,max=32,excludes= "`
	Password    string `json:"password" validate:"required,min=8,max=32,excludes= "`
	Email       string `json:"email" validate:"required,email,max=100"`
	Firstname   string `json:"firstname" validate:"required,min=2,max=32"`
	Lastname    string `json:"lastname" validate:"required,min=2,max=32"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Address     string `json:"address" validate:"omitempty,max=100"`
	Education   string `json:"education" validate:"omitempty,max=100"`
	Career      string `json:"career" validate:"omitempty,max=100"`
	Skills      string `json:"skills" validate:"omitempty,max=100"`
	Hobbies     string `json:"hobbies" validate:"omitempty,max=500"`
}

// UserUpdateInput — частичное обновление профиля.
type UserUpdateInput struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=32,excludes= "`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	DateBirth   *string `json:"date_birth" validate:"omitempty,datetime=2006-01-02"`
	Firstname   *string `json:"firstname" validate:"omitempty,min=2,max=32"`
	Lastname    *string `json:"lastname" validate:"omitempty,min=2,max=32"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Address     *string `json:"address" validate:"omitempty,max=100"`
	Education   *string `json:"education" validate:"omitempty,max=100"`
	Career      *string `json:"career" validate:"omitempty,max=100"`
	Skills      *string `json:"skills" validate:"omitempty,max=100"`
	Hobbies     *string `json:"hobbies" validate:"omitempty,max=500"`
}

// GetUser возвращает профиль; имя "current" — профиль самого
// пользователя.
func (s *UserService) GetUser(actor *models.User, username string) (*models.UserView, error) {
	user := actor
	if username != "current" {
		var err error
		user, err = s.users.GetByUsername(username)
		if err != nil {
			return nil, err
		}
	}
	view, err := s.toView(actor, user)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetUsers — общий список, рекомендации друзей или подбор кандидатов
// на вакансию.
func (s *UserService) GetUsers(actor *models.User, filters map[string]string, page, perPage int,
	vacancyID uint, recommended bool) (*models.Page[models.UserView], error) {
	if recommended {
		return s.RecommendFriends(actor, page, perPage)
	}
	if vacancyID != 0 {
		return s.RecommendEmployees(actor, vacancyID, page, perPage)
	}
	result, err := s.users.Paginate(filters, page, perPage)
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(u *models.User) (models.UserView, error) { return s.toView(actor, u) })
}

func (s *UserService) AddUser(input UserInput) (*models.User, error) {
	existing, err := s.users.GetByUsernameOrEmail(input.Username, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.TrimSpace(input.Email),
		Password:    string(hash),
		Firstname:   strings.TrimSpace(input.Firstname),
		Lastname:    strings.TrimSpace(input.Lastname),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		City:        strings.TrimSpace(input.City),
		Address:     strings.TrimSpace(input.Address),
		Education:   strings.TrimSpace(input.Education),
		Career:      strings.TrimSpace(input.Career),
		Skills:      strings.TrimSpace(input.Skills),
		Hobbies:     strings.TrimSpace(input.Hobbies),
		Provider:    "local",
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(actor *models.User, username string, input UserUpdateInput) (*models.UserView, error) {
	if actor.Username != username {
		return nil, ErrPermissionDenied
	}
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if input.Username != nil && *input.Username != username {
		if _, err := s.users.GetByUsername(*input.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.GetByEmail(*input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = strings.TrimSpace(*input.Email)
		user.VerifiedEmail = false
	}
	if input.DateBirth != nil {
		dateBirth, err := time.Parse("2006-01-02", *input.DateBirth)
		if err != nil {
			return nil, err
		}
		user.DateBirth = &dateBirth
	}
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&user.Firstname, input.Firstname)
	applyString(&user.Lastname, input.Lastname)
	applyString(&user.PhoneNumber, input.PhoneNumber)
	applyString(&user.City, input.City)
	applyString(&user.Address, input.Address)
	applyString(&user.Education, input.Education)
	applyString(&user.Career, input.Career)
	applyString(&user.Skills, input.Skills)
	applyString(&user.Hobbies, input.Hobbies)
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	view, err := s.toView(user, user)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *UserService) UpdatePassword(actor *models.User, password, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.Password), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	actor.Password = string(hash)
	return s.users.Update(actor)
}

func (s *UserService) DeleteUser(actor *models.User, username string) error {
	if actor.Username != username {
		return ErrPermissionDenied
	}
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.users.Delete(user)
}

func (s *UserService) UploadAvatar(actor *models.User, file multipart.File, filename string) error {
	extension, ok := fileExtension(filename)
	if !ok {
		return ErrFileType
	}
	stored := fmt.Sprintf("%x.%s", md5.Sum([]byte(actor.Username)), extension)
	if err := saveUpload(s.cfg.UploadFolder, stored, file); err != nil {
		return err
	}
	return s.users.UpdateAvatarURL(actor, "/static/images/"+stored)
}

// GetFriends: relation выбирает друзей, подписчиков без взаимности или
// исходящие подписки.
func (s *UserService) GetFriends(actor *models.User, username string, filters map[string]string,
	page, perPage int, relation string) (*models.Page[models.UserView], error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	var result *models.Page[models.User]
	switch relation {
	case "followers":
		result, err = s.users.PaginateFollowers(user, filters, page, perPage)
	case "following":
		result, err = s.users.PaginateFollowing(user, filters, page, perPage)
	default:
		result, err = s.users.PaginateFriends(user, filters, page, perPage)
	}
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(u *models.User) (models.UserView, error) { return s.toView(actor, u) })
}

func (s *UserService) AddFriend(actor *models.User, username string) error {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if user.ID == actor.ID {
		return ErrSelfAction
	}
	return s.users.Follow(actor, user)
}

// AcceptFriend подтверждает заявку: взаимная подписка возникает только
// если встречная уже есть.
func (s *UserService) AcceptFriend(actor *models.User, username string) (bool, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return false, err
	}
	following, err := s.users.IsFollowing(user, actor)
	if err != nil {
		return false, err
	}
	if !following {
		return false, nil
	}
	if err := s.users.Follow(actor, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) DeleteFriend(actor *models.User, username string) error {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.users.Unfollow(actor, user)
}

func (s *UserService) GetCommunityMembers(actor *models.User, communityID uint,
	filters map[string]string, page, perPage int) (*models.Page[models.UserView], error) {
	community, err := s.communities.GetByID(communityID)
	if err != nil {
		return nil, err
	}
	result, err := s.users.PaginateMembers(community, filters, page, perPage)
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(u *models.User) (models.UserView, error) { return s.toView(actor, u) })
}

type rankedUser struct {
	user   models.User
	weight float64
}

// rankFriends взвешивает кандидатов в друзья: всех, кроме самого
// пользователя и его подписок. Вклад вектора сходства начисляется
// каждому кандидату целиком, без привязки записи вектора к кандидату.
func (s *UserService) rankFriends(actor *models.User) ([]rankedUser, error) {
	subscriptions, err := s.users.GetFollowing(actor)
	if err != nil {
		return nil, err
	}
	subscriptionIDs := make(map[uint]bool, len(subscriptions))
	for _, user := range subscriptions {
		subscriptionIDs[user.ID] = true
	}

	memberships, err := s.users.GetCommunities(actor)
	if err != nil {
		return nil, err
	}
	communityIDs := make(map[uint]bool, len(memberships))
	for _, community := range memberships {
		communityIDs[community.ID] = true
	}

	vector, err := BuildSimilarityVector(actor, s.users)
	if err != nil {
		return nil, err
	}
	similarityBoost := 0.0
	for _, entry := range vector {
		similarityBoost += entry.Similarity * SimilarityCoefficient
	}

	all, err := s.users.GetUsers()
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedUser, 0, len(all))
	for i := range all {
		candidate := all[i]
		if candidate.ID == actor.ID || subscriptionIDs[candidate.ID] {
			continue
		}
		weight := 0.0
		candidateSubs, err := s.users.GetFollowing(&candidate)
		if err != nil {
			return nil, err
		}
		for _, sub := range candidateSubs {
			if subscriptionIDs[sub.ID] {
				weight += SubscriptionWeight
			}
		}
		if actor.City != "" && candidate.City == actor.City {
			weight += SameAttributesWeight
		}
		candidateCommunities, err := s.users.GetCommunities(&candidate)
		if err != nil {
			return nil, err
		}
		for _, community := range candidateCommunities {
			if communityIDs[community.ID] {
				weight += SameCommunityWeight
			}
		}
		weight += similarityBoost
		ranked = append(ranked, rankedUser{user: candidate, weight: weight})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	return ranked, nil
}

func (s *UserService) RecommendFriends(actor *models.User, page, perPage int) (*models.Page[models.UserView], error) {
	ranked, err := s.rankFriends(actor)
	if err != nil {
		return nil, err
	}
	return s.rankedPage(actor, ranked, page, perPage)
}

// rankEmployees подбирает кандидатов по пересечению навыков с
// вакансией. Кандидаты без единого совпадения отбрасываются.
func (s *UserService) rankEmployees(vacancy *models.Vacancy) ([]rankedUser, error) {
	vacancySkills := strings.Split(vacancy.Skills, ",")
	all, err := s.users.GetUsers()
	if err != nil {
		return nil, err
	}
	ranked := make([]rankedUser, 0, len(all))
	for i := range all {
		candidate := all[i]
		if candidate.Skills == "" {
			continue
		}
		weight := 0.0
		for _, skill := range strings.Split(candidate.Skills, ",") {
			if containsString(vacancySkills, skill) {
				weight += SkillWeight
			}
		}
		if weight > 0 {
			ranked = append(ranked, rankedUser{user: candidate, weight: weight})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	return ranked, nil
}

func (s *UserService) RecommendEmployees(actor *models.User, vacancyID uint, page, perPage int) (*models.Page[models.UserView], error) {
	vacancy, err := s.vacancies.GetByID(vacancyID)
	if err != nil {
		return nil, err
	}
	ranked, err := s.rankEmployees(vacancy)
	if err != nil {
		return nil, err
	}
	return s.rankedPage(actor, ranked, page, perPage)
}

func (s *UserService) rankedPage(actor *models.User, ranked []rankedUser, page, perPage int) (*models.Page[models.UserView], error) {
	result := paginateSlice(ranked, page, perPage)
	views := make([]models.UserView, 0, len(result.Items))
	for i := range result.Items {
		view, err := s.toView(actor, &result.Items[i].user)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return &models.Page[models.UserView]{Items: views, Meta: result.Meta}, nil
}

// RequestEmailVerification отправляет письмо со ссылкой подтверждения.
func (s *UserService) RequestEmailVerification(actor *models.User) error {
	token, err := GenerateToken(actor.ID, s.cfg.SecretKey, 24*time.Hour)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/api/profile/verify-email?token=%s", s.cfg.AppURL, token)
	body := fmt.Sprintf("Для подтверждения email перейдите по ссылке: %s", link)
	return s.mailer.Send(actor.Email, "Подтверждение email", body)
}

func (s *UserService) ConfirmEmail(token string) error {
	claims, err := ParseToken(token, s.cfg.SecretKey)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return err
	}
	return s.users.VerifyEmail(user)
}

func (s *UserService) SetTwoFactor(actor *models.User, enabled bool) error {
	return s.users.SetTwoFactor(actor, enabled)
}

func (s *UserService) toView(actor *models.User, user *models.User) (models.UserView, error) {
	isFollower, err := s.users.IsFollowing(actor, user)
	if err != nil {
		return models.UserView{}, err
	}
	isFollowing, err := s.users.IsFollowing(user, actor)
	if err != nil {
		return models.UserView{}, err
	}
	friends, err := s.users.GetFriends(user)
	if err != nil {
		return models.UserView{}, err
	}
	followers, err := s.users.GetFollowersWithoutFriends(user)
	if err != nil {
		return models.UserView{}, err
	}
	following, err := s.users.GetFollowingWithoutFriends(user)
	if err != nil {
		return models.UserView{}, err
	}
	dateBirth := ""
	if user.DateBirth != nil {
		dateBirth = user.DateBirth.Format("2006-01-02")
	}
	return models.UserView{
		Username:         user.Username,
		Firstname:        user.Firstname,
		Lastname:         user.Lastname,
		Email:            user.Email,
		PhoneNumber:      user.PhoneNumber,
		DateBirth:        dateBirth,
		City:             user.City,
		Address:          user.Address,
		Education:        user.Education,
		Career:           user.Career,
		Skills:           user.Skills,
		Hobbies:          user.Hobbies,
		RegisterDate:     user.RegisterDate.Format(time.RFC3339),
		IsFollower:       isFollower,
		IsFollowing:      isFollowing,
		IsFriend:         isFollower && isFollowing,
		FollowingCount:   len(following),
		FollowersCount:   len(followers),
		FriendsCount:     len(friends),
		VerifiedEmail:    user.VerifiedEmail,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Links: models.Links{
			Self:  "/api/users/" + user.Username,
			Image: user.AvatarURL,
		},
	}, nil
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
