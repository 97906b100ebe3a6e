package services

import (
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"linkup-backend/config"
	"linkup-backend/models"
	"linkup-backend/repository"
)

type PostService struct {
	posts       repository.PostRepositoryInterface
	users       repository.UserRepositoryInterface
	communities repository.CommunityRepositoryInterface
	cfg         *config.Config
}

func NewPostService(posts repository.PostRepositoryInterface, users repository.UserRepositoryInterface,
	communities repository.CommunityRepositoryInterface, cfg *config.Config) *PostService {
	return &PostService{posts: posts, users: users, communities: communities, cfg: cfg}
}

// PostInput — данные создания и обновления поста.
type PostInput struct {
	Text        string `json:"text" validate:"required,min=3,max=500"`
	Hashtags    string `json:"hashtags" validate:"required,min=3,max=100"`
	UserID      *uint  `json:"user_id"`
	CommunityID *uint  `json:"community_id"`
}

// normalizeHashtags приводит хэштеги к нижнему регистру и убирает
// пробелы, как при записи любого поста.
func normalizeHashtags(hashtags string) string {
	return strings.ReplaceAll(strings.ToLower(hashtags), " ", "")
}

func (s *PostService) GetPost(actor *models.User, id uint) (*models.PostView, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	view, err := s.toView(actor, post)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetPosts выбирает ленту: по автору, по сообществу, понравившиеся или
// рекомендованные. Без уточнений — общая лента по дате.
func (s *PostService) GetPosts(actor *models.User, authorName string, communityID uint, postsType string,
	filters map[string]string, page, perPage int) (*models.Page[models.PostView], error) {
	switch {
	case authorName != "":
		author, err := s.users.GetByUsername(authorName)
		if err != nil {
			return nil, err
		}
		result, err := s.posts.PaginateByAuthor(author, filters, page, perPage)
		if err != nil {
			return nil, err
		}
		return mapPage(result, func(p *models.Post) (models.PostView, error) { return s.toView(actor, p) })
	case communityID != 0:
		community, err := s.communities.GetByID(communityID)
		if err != nil {
			return nil, err
		}
		result, err := s.posts.PaginateByCommunity(community, filters, page, perPage)
		if err != nil {
			return nil, err
		}
		return mapPage(result, func(p *models.Post) (models.PostView, error) { return s.toView(actor, p) })
	case postsType == "liked":
		result, err := s.posts.PaginateLiked(actor, filters, page, perPage)
		if err != nil {
			return nil, err
		}
		return mapPage(result, func(p *models.Post) (models.PostView, error) { return s.toView(actor, p) })
	case postsType == "recommended":
		return s.RecommendPosts(actor, page, perPage)
	}
	result, err := s.posts.Paginate(filters, page, perPage)
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(p *models.Post) (models.PostView, error) { return s.toView(actor, p) })
}

func (s *PostService) AddPost(actor *models.User, input PostInput) (*models.PostView, error) {
	if input.UserID != nil && *input.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	if input.CommunityID != nil {
		community, err := s.communities.GetByID(*input.CommunityID)
		if err != nil {
			return nil, err
		}
		if community.UserID != actor.ID {
			return nil, ErrPermissionDenied
		}
	}
	authorID := input.UserID
	if authorID == nil && input.CommunityID == nil {
		authorID = &actor.ID
	}
	post := &models.Post{
		Text:            strings.TrimSpace(input.Text),
		Hashtags:        normalizeHashtags(input.Hashtags),
		PublicationDate: time.Now().UTC(),
		UserID:          authorID,
		CommunityID:     input.CommunityID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	created, err := s.posts.GetByID(post.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.toView(actor, created)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *PostService) UpdatePost(actor *models.User, id uint, input PostInput) (*models.PostView, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(actor, post); err != nil {
		return nil, err
	}
	post.Text = strings.TrimSpace(input.Text)
	post.Hashtags = normalizeHashtags(input.Hashtags)
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	view, err := s.toView(actor, post)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *PostService) DeletePost(actor *models.User, id uint) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, post); err != nil {
		return err
	}
	return s.posts.Delete(post)
}

// checkOwnership: авторский пост правит автор, пост сообщества — его
// владелец.
func (s *PostService) checkOwnership(actor *models.User, post *models.Post) error {
	if post.UserID != nil && *post.UserID != actor.ID {
		return ErrPermissionDenied
	}
	if post.CommunityID != nil {
		community, err := s.communities.GetByID(*post.CommunityID)
		if err != nil {
			return err
		}
		if community.UserID != actor.ID {
			return ErrPermissionDenied
		}
	}
	return nil
}

func (s *PostService) LikePost(actor *models.User, id uint) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	liked, err := s.posts.IsLiked(post, actor)
	if err != nil || liked {
		return err
	}
	return s.posts.Like(post, actor)
}

func (s *PostService) UnlikePost(actor *models.User, id uint) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	liked, err := s.posts.IsLiked(post, actor)
	if err != nil || !liked {
		return err
	}
	return s.posts.Unlike(post, actor)
}

func (s *PostService) UploadImage(actor *models.User, id uint, file multipart.File, filename string) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, post); err != nil {
		return err
	}
	extension, ok := fileExtension(filename)
	if !ok {
		return ErrFileType
	}
	stored := fmt.Sprintf("%s.%s", uuid.New().String(), extension)
	if err := saveUpload(s.cfg.UploadFolder, stored, file); err != nil {
		return err
	}
	return s.posts.UpdateImageURL(post, "/static/images/"+stored)
}

// rankedPost — кандидат ленты с накопленным весом и числом лайков для
// отката к популярности.
type rankedPost struct {
	post   models.Post
	weight float64
	likes  int
}

// rankPosts считает вес каждого кандидата. Кандидаты — посты новее
// даты отсечки с рейтингом не ниже порога, чужие и еще не лайкнутые.
func (s *PostService) rankPosts(actor *models.User) ([]rankedPost, error) {
	candidates, err := s.posts.GetPostsByDateAndRating(actor.ID, s.cfg.RecommendCutoff, s.cfg.RecommendMinLikes)
	if err != nil {
		return nil, err
	}

	likedPosts, err := s.users.GetLikedPosts(actor)
	if err != nil {
		return nil, err
	}
	likedIDs := make(map[uint]bool, len(likedPosts))
	likedHashtags := make(map[string]bool)
	for _, post := range likedPosts {
		likedIDs[post.ID] = true
		for _, tag := range strings.Split(post.Hashtags, ",") {
			likedHashtags[tag] = true
		}
	}

	memberships, err := s.users.GetCommunities(actor)
	if err != nil {
		return nil, err
	}
	memberIDs := make(map[uint]bool, len(memberships))
	for _, community := range memberships {
		memberIDs[community.ID] = true
	}

	following, err := s.users.GetFollowing(actor)
	if err != nil {
		return nil, err
	}
	followingIDs := make(map[uint]bool, len(following))
	for _, user := range following {
		followingIDs[user.ID] = true
	}

	vector, err := BuildSimilarityVector(actor, s.users)
	if err != nil {
		return nil, err
	}
	vectorLikes := make([]map[uint]bool, len(vector))
	for i := range vector {
		posts, err := s.users.GetLikedPosts(&vector[i].User)
		if err != nil {
			return nil, err
		}
		ids := make(map[uint]bool, len(posts))
		for _, post := range posts {
			ids[post.ID] = true
		}
		vectorLikes[i] = ids
	}

	ranked := make([]rankedPost, 0, len(candidates))
	for _, post := range candidates {
		if likedIDs[post.ID] {
			continue
		}
		likedUsers, err := s.posts.GetLikedUsers(&post)
		if err != nil {
			return nil, err
		}
		likedBy := make(map[uint]bool, len(likedUsers))
		for _, user := range likedUsers {
			likedBy[user.ID] = true
		}

		weight := 0.0
		authorFollowed := post.UserID != nil && followingIDs[*post.UserID]
		inActorCommunity := post.CommunityID != nil && memberIDs[*post.CommunityID]
		if authorFollowed || inActorCommunity {
			weight += AuthorFriendWeight
		}
		if post.Author != nil && actor.City != "" && post.Author.City == actor.City {
			weight += AuthorFriendWeight
		}
		if post.Author != nil {
			authorCommunities, err := s.users.GetCommunities(post.Author)
			if err != nil {
				return nil, err
			}
			for _, community := range authorCommunities {
				if memberIDs[community.ID] {
					weight += CommunityWeight
				}
			}
		}
		for _, friend := range following {
			if likedBy[friend.ID] {
				weight += FriendLikeWeight
			}
		}
		for _, tag := range strings.Split(post.Hashtags, ",") {
			if likedHashtags[tag] {
				weight += HashtagLikeWeight
			}
		}
		for i, entry := range vector {
			if vectorLikes[i][post.ID] {
				weight += entry.Similarity * SimilarityCoefficient
			}
		}
		ranked = append(ranked, rankedPost{post: post, weight: weight, likes: len(likedUsers)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	if len(ranked) > 0 && ranked[0].weight == 0 {
		// Персональные сигналы не сработали ни для одного кандидата —
		// откатываемся к сортировке по числу лайков.
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].likes > ranked[j].likes })
	}
	return ranked, nil
}

// RecommendPosts возвращает страницу рекомендованной ленты. Форма
// ответа совпадает с обычной постраничной выборкой.
func (s *PostService) RecommendPosts(actor *models.User, page, perPage int) (*models.Page[models.PostView], error) {
	ranked, err := s.rankPosts(actor)
	if err != nil {
		return nil, err
	}
	result := paginateSlice(ranked, page, perPage)
	views := make([]models.PostView, 0, len(result.Items))
	for i := range result.Items {
		item := &result.Items[i]
		views = append(views, s.buildView(&item.post, item.likes, false))
	}
	return &models.Page[models.PostView]{Items: views, Meta: result.Meta}, nil
}

func (s *PostService) toView(actor *models.User, post *models.Post) (models.PostView, error) {
	likes, err := s.posts.LikesCount(post)
	if err != nil {
		return models.PostView{}, err
	}
	liked, err := s.posts.IsLiked(post, actor)
	if err != nil {
		return models.PostView{}, err
	}
	return s.buildView(post, likes, liked), nil
}

func (s *PostService) buildView(post *models.Post, likes int, liked bool) models.PostView {
	view := models.PostView{
		ID:              post.ID,
		Text:            post.Text,
		Hashtags:        post.Hashtags,
		PublicationDate: post.PublicationDate.Format(time.RFC3339),
		Community:       post.CommunityID,
		LikesCount:      likes,
		IsLiked:         liked,
		Links: models.Links{
			Self:  fmt.Sprintf("/api/posts/%d", post.ID),
			Image: post.ImageURL,
		},
	}
	if post.Author != nil {
		view.Author = post.Author.Username
	}
	return view
}
