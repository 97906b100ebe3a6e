package services

import (
	"sort"

	"linkup-backend/models"
	"linkup-backend/repository"
)

// similarityVectorSize ограничивает вектор двадцатью ближайшими
// пользователями.
const similarityVectorSize = 20

// SimilarityEntry — пользователь и его коэффициент сходства с текущим
// пользователем. Вектор живет в рамках одного запроса и нигде не
// сохраняется.
type SimilarityEntry struct {
	User       models.User
	Similarity float64
}

// BuildSimilarityVector строит вектор сходства по пересечению множеств
// понравившихся постов: inter / (|A| + |B| - inter). Пустой знаменатель
// заменяется единицей, поэтому у пары без лайков сходство 0, а не
// ошибка деления. Сам с собой пользователь не сравнивается.
//
// При равных коэффициентах порядок определяется возрастанием ID
// пользователя — сортировка детерминирована.
func BuildSimilarityVector(actor *models.User, users repository.UserRepositoryInterface) ([]SimilarityEntry, error) {
	all, err := users.GetUsers()
	if err != nil {
		return nil, err
	}
	actorLiked, err := users.GetLikedPosts(actor)
	if err != nil {
		return nil, err
	}
	actorLikedIDs := make(map[uint]bool, len(actorLiked))
	for _, post := range actorLiked {
		actorLikedIDs[post.ID] = true
	}

	vector := make([]SimilarityEntry, 0, len(all))
	for i := range all {
		user := all[i]
		if user.ID == actor.ID {
			continue
		}
		userLiked, err := users.GetLikedPosts(&user)
		if err != nil {
			return nil, err
		}
		intersection := 0
		for _, post := range userLiked {
			if actorLikedIDs[post.ID] {
				intersection++
			}
		}
		div := len(actorLiked) + len(userLiked) - intersection
		if div == 0 {
			div = 1
		}
		vector = append(vector, SimilarityEntry{
			User:       user,
			Similarity: float64(intersection) / float64(div),
		})
	}

	sort.SliceStable(vector, func(i, j int) bool {
		if vector[i].Similarity != vector[j].Similarity {
			return vector[i].Similarity > vector[j].Similarity
		}
		return vector[i].User.ID < vector[j].User.ID
	})
	if len(vector) > similarityVectorSize {
		vector = vector[:similarityVectorSize]
	}
	return vector, nil
}
