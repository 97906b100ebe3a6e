package models

// Представления сущностей для ответов API. Собираются в сервисах,
// сериализуются только на границе HTTP.

type Links struct {
	Self  string `json:"self"`
	Image string `json:"image,omitempty"`
}

type UserView struct {
	Username         string `json:"username"`
	Firstname        string `json:"firstname"`
	Lastname         string `json:"lastname"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	DateBirth        string `json:"date_birth"`
	City             string `json:"city"`
	Address          string `json:"address"`
	Education        string `json:"education"`
	Career           string `json:"career"`
	Skills           string `json:"skills"`
	Hobbies          string `json:"hobbies"`
	RegisterDate     string `json:"register_date"`
	IsFollower       bool   `json:"is_follower"`
	IsFollowing      bool   `json:"is_following"`
	IsFriend         bool   `json:"is_friend"`
	FollowingCount   int    `json:"following_count"`
	FollowersCount   int    `json:"followers_count"`
	FriendsCount     int    `json:"friends_count"`
	VerifiedEmail    bool   `json:"verified_email"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	Links            Links  `json:"links"`
}

type PostView struct {
	ID              uint   `json:"id"`
	Text            string `json:"text"`
	Hashtags        string `json:"hashtags"`
	PublicationDate string `json:"publication_date"`
	Author          string `json:"author,omitempty"`
	Community       *uint  `json:"community"`
	LikesCount      int    `json:"likes_count"`
	IsLiked         bool   `json:"is_liked"`
	Links           Links  `json:"links"`
}

type CommunityView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Owner        string `json:"owner"`
	MembersCount int    `json:"members_count"`
	IsMember     bool   `json:"is_member"`
	Links        Links  `json:"links"`
}

type VacancyView struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Employer    string `json:"employer"`
	Links       Links  `json:"links"`
}

type CommentView struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	Date   string `json:"date"`
	Author string `json:"author"`
	PostID uint   `json:"post_id"`
}

type MessageView struct {
	ID        uint   `json:"id"`
	Body      string `json:"body"`
	Date      string `json:"date"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
}
