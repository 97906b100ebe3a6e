package services

// Веса эвристик рекомендательных лент. Все вклады строго аддитивны,
// отрицательных не бывает.
const (
	// лента постов
	FriendLikeWeight   = 5
	AuthorFriendWeight = 10
	HashtagLikeWeight  = 2
	CommunityWeight    = 1

	// рекомендации сообществ
	CommunitySubscriptionWeight = 5
	LikedPostWeight             = 3

	// рекомендации друзей
	SubscriptionWeight   = 3
	SameAttributesWeight = 2
	SameCommunityWeight  = 2

	// подбор вакансий и кандидатов
	SkillWeight = 5

	// множитель вклада вектора сходства
	SimilarityCoefficient = 2
)
