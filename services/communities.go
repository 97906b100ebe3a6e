package services

import (
	"crypto/md5"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"linkup-backend/config"
	"linkup-backend/models"
	"linkup-backend/repository"
)

type CommunityService struct {
	communities repository.CommunityRepositoryInterface
	users       repository.UserRepositoryInterface
	cfg         *config.Config
}

func NewCommunityService(communities repository.CommunityRepositoryInterface,
	users repository.UserRepositoryInterface, cfg *config.Config) *CommunityService {
	return &CommunityService{communities: communities, users: users, cfg: cfg}
}

type CommunityInput struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (s *CommunityService) GetCommunity(actor *models.User, id uint) (*models.CommunityView, error) {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return nil, err
	}
	view, err := s.toView(actor, community)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetCommunities отдает сообщества пользователя, его собственные,
// рекомендованные или общий список.
func (s *CommunityService) GetCommunities(actor *models.User, username, communityType string,
	filters map[string]string, page, perPage int) (*models.Page[models.CommunityView], error) {
	if communityType == "recommended" {
		return s.RecommendCommunities(actor, page, perPage)
	}
	var (
		result *models.Page[models.Community]
		err    error
	)
	if username != "" {
		user, userErr := s.users.GetByUsername(username)
		if userErr != nil {
			return nil, userErr
		}
		if communityType == "admin" {
			result, err = s.communities.PaginateByOwner(user, filters, page, perPage)
		} else {
			result, err = s.communities.PaginateByMember(user, filters, page, perPage)
		}
	} else {
		result, err = s.communities.Paginate(filters, page, perPage)
	}
	if err != nil {
		return nil, err
	}
	return mapPage(result, func(c *models.Community) (models.CommunityView, error) { return s.toView(actor, c) })
}

// AddCommunity создает сообщество: создатель становится владельцем и
// первым участником.
func (s *CommunityService) AddCommunity(actor *models.User, input CommunityInput) (*models.CommunityView, error) {
	community := &models.Community{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		UserID:      actor.ID,
	}
	if err := s.communities.Create(community); err != nil {
		return nil, err
	}
	if err := s.communities.Join(community, actor); err != nil {
		return nil, err
	}
	created, err := s.communities.GetByID(community.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.toView(actor, created)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *CommunityService) UpdateCommunity(actor *models.User, id uint, input CommunityInput) (*models.CommunityView, error) {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return nil, err
	}
	if community.UserID != actor.ID {
		return nil, ErrPermissionDenied
	}
	community.Name = strings.TrimSpace(input.Name)
	community.Description = strings.TrimSpace(input.Description)
	if err := s.communities.Update(community); err != nil {
		return nil, err
	}
	view, err := s.toView(actor, community)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *CommunityService) DeleteCommunity(actor *models.User, id uint) error {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return err
	}
	if community.UserID != actor.ID {
		return ErrPermissionDenied
	}
	return s.communities.Delete(community)
}

func (s *CommunityService) JoinCommunity(actor *models.User, id uint) error {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return err
	}
	member, err := s.communities.IsMember(community, actor)
	if err != nil || member {
		return err
	}
	return s.communities.Join(community, actor)
}

// LeaveCommunity: владелец не может покинуть собственное сообщество.
func (s *CommunityService) LeaveCommunity(actor *models.User, id uint) error {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return err
	}
	member, err := s.communities.IsMember(community, actor)
	if err != nil || !member {
		return err
	}
	if community.UserID == actor.ID {
		return ErrPermissionDenied
	}
	return s.communities.Leave(community, actor)
}

func (s *CommunityService) UploadImage(actor *models.User, id uint, file multipart.File, filename string) error {
	community, err := s.communities.GetByID(id)
	if err != nil {
		return err
	}
	if community.UserID != actor.ID {
		return ErrPermissionDenied
	}
	extension, ok := fileExtension(filename)
	if !ok {
		return ErrFileType
	}
	owner := community.Owner
	if owner == nil {
		owner, err = s.users.GetByID(community.UserID)
		if err != nil {
			return err
		}
	}
	stored := fmt.Sprintf("%x.%s", md5.Sum([]byte(owner.Username)), extension)
	if err := saveUpload(filepath.Join(s.cfg.UploadFolder, "communities"), stored, file); err != nil {
		return err
	}
	return s.communities.UpdateImageURL(community, "/static/images/communities/"+stored)
}

type rankedCommunity struct {
	community models.Community
	weight    float64
}

// rankCommunities взвешивает сообщества, в которых пользователь еще не
// состоит. Отката к популярности здесь нет.
func (s *CommunityService) rankCommunities(actor *models.User) ([]rankedCommunity, error) {
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
	memberIDs := make(map[uint]bool, len(memberships))
	for _, community := range memberships {
		memberIDs[community.ID] = true
	}

	likedPosts, err := s.users.GetLikedPosts(actor)
	if err != nil {
		return nil, err
	}
	likedIDs := make(map[uint]bool, len(likedPosts))
	for _, post := range likedPosts {
		likedIDs[post.ID] = true
	}

	vector, err := BuildSimilarityVector(actor, s.users)
	if err != nil {
		return nil, err
	}

	all, err := s.communities.GetCommunities()
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedCommunity, 0, len(all))
	for _, community := range all {
		if memberIDs[community.ID] {
			continue
		}
		members, err := s.communities.GetMembers(&community)
		if err != nil {
			return nil, err
		}
		membersByID := make(map[uint]bool, len(members))
		weight := 0.0
		for _, member := range members {
			membersByID[member.ID] = true
			if subscriptionIDs[member.ID] {
				weight += CommunitySubscriptionWeight
			}
		}
		posts, err := s.communities.GetCommunityPosts(&community)
		if err != nil {
			return nil, err
		}
		for _, post := range posts {
			if likedIDs[post.ID] {
				weight += LikedPostWeight
			}
		}
		for _, entry := range vector {
			if membersByID[entry.User.ID] {
				weight += entry.Similarity * SimilarityCoefficient
			}
		}
		ranked = append(ranked, rankedCommunity{community: community, weight: weight})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	return ranked, nil
}

func (s *CommunityService) RecommendCommunities(actor *models.User, page, perPage int) (*models.Page[models.CommunityView], error) {
	ranked, err := s.rankCommunities(actor)
	if err != nil {
		return nil, err
	}
	result := paginateSlice(ranked, page, perPage)
	views := make([]models.CommunityView, 0, len(result.Items))
	for i := range result.Items {
		view, err := s.toView(actor, &result.Items[i].community)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return &models.Page[models.CommunityView]{Items: views, Meta: result.Meta}, nil
}

func (s *CommunityService) toView(actor *models.User, community *models.Community) (models.CommunityView, error) {
	membersCount, err := s.communities.MembersCount(community)
	if err != nil {
		return models.CommunityView{}, err
	}
	member, err := s.communities.IsMember(community, actor)
	if err != nil {
		return models.CommunityView{}, err
	}
	view := models.CommunityView{
		ID:           community.ID,
		Name:         community.Name,
		Description:  community.Description,
		MembersCount: membersCount,
		IsMember:     member,
		Links: models.Links{
			Self:  fmt.Sprintf("/api/communities/%d", community.ID),
			Image: community.ImageURL,
		},
	}
	if community.Owner != nil {
		view.Owner = community.Owner.Username
	}
	return view, nil
}
