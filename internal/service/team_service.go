package service

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/auth"
	"storefront-service/internal/models"
	"storefront-service/internal/storage"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// SortEntry assigns a display position to a category or member.
type SortEntry struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// TeamService manages the team roster. Mutations take an auth.Session.
type TeamService struct {
	store    *store.Store
	uploader *storage.Uploader
	bucket   string
	logger   *zap.Logger
}

// NewTeamService creates a new team service
func NewTeamService(st *store.Store, uploader *storage.Uploader, bucket string) *TeamService {
	return &TeamService{
		store:    st,
		uploader: uploader,
		bucket:   bucket,
		logger:   util.GetLogger(),
	}
}

// GetCategories lists team categories in display order
func (s *TeamService) GetCategories(ctx context.Context) ([]models.TeamCategory, error) {
	return s.store.GetTeamCategories(ctx)
}

// GetCategory returns one category
func (s *TeamService) GetCategory(ctx context.Context, id string) (*models.TeamCategory, error) {
	return s.store.GetTeamCategoryByID(ctx, id)
}

// GetMembers lists all team members in display order
func (s *TeamService) GetMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.store.GetTeamMembers(ctx)
}

// GetMembersByCategory lists the members of one category
func (s *TeamService) GetMembersByCategory(ctx context.Context, categoryID string) ([]models.TeamMember, error) {
	return s.store.GetTeamMembersByCategory(ctx, categoryID)
}

// GetUncategorizedMembers lists members with no category
func (s *TeamService) GetUncategorizedMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.store.GetUncategorizedMembers(ctx)
}

// GetMember returns one team member
func (s *TeamService) GetMember(ctx context.Context, id string) (*models.TeamMember, error) {
	return s.store.GetTeamMemberByID(ctx, id)
}

// CreateCategory uploads the required image and inserts the category
func (s *TeamService) CreateCategory(ctx context.Context, _ auth.Session, name string, image *ImageUpload) (*models.TeamCategory, error) {
	ctx, span := util.StartSpan(ctx, "TeamService.CreateCategory")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if image == nil || image.Size <= 0 {
		return nil, fmt.Errorf("%w: category image is required", ErrValidation)
	}

	url, err := s.uploader.Upload(ctx, s.bucket, image.Filename, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	category := &models.TeamCategory{
		Name:     name,
		ImageURL: &url,
	}
	if err := s.store.CreateTeamCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create team category: %w", err)
	}

	s.logger.Info("Team category created", zap.String("category_id", category.ID))
	return category, nil
}

// CreateMember uploads the required image and inserts the member
func (s *TeamService) CreateMember(ctx context.Context, _ auth.Session, name, bio, categoryID string, image *ImageUpload) (*models.TeamMember, error) {
	ctx, span := util.StartSpan(ctx, "TeamService.CreateMember")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if image == nil || image.Size <= 0 {
		return nil, fmt.Errorf("%w: member photo is required", ErrValidation)
	}

	url, err := s.uploader.Upload(ctx, s.bucket, image.Filename, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	member := &models.TeamMember{
		Name:       name,
		ImageURL:   &url,
		CategoryID: &categoryID,
	}
	if b := strings.TrimSpace(bio); b != "" {
		member.Bio = &b
	}

	if err := s.store.CreateTeamMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	s.logger.Info("Team member created", zap.String("member_id", member.ID))
	return member, nil
}

// DeleteCategory removes a category
func (s *TeamService) DeleteCategory(ctx context.Context, _ auth.Session, id string) error {
	if err := s.store.DeleteTeamCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team category: %w", err)
	}
	s.logger.Info("Team category deleted", zap.String("category_id", id))
	return nil
}

// DeleteMember removes a team member
func (s *TeamService) DeleteMember(ctx context.Context, _ auth.Session, id string) error {
	if err := s.store.DeleteTeamMember(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	s.logger.Info("Team member deleted", zap.String("member_id", id))
	return nil
}

// ReorderCategories applies the given sort positions one by one. The
// updates are not atomic; an error aborts the remaining entries and
// leaves the earlier ones applied.
func (s *TeamService) ReorderCategories(ctx context.Context, _ auth.Session, entries []SortEntry) error {
	for _, e := range entries {
		if err := s.store.UpdateCategorySortOrder(ctx, e.ID, e.SortOrder); err != nil {
			return fmt.Errorf("failed to reorder category %s: %w", e.ID, err)
		}
	}
	return nil
}

// ReorderMembers applies the given sort positions one by one, with the
// same partial-effect window as ReorderCategories.
func (s *TeamService) ReorderMembers(ctx context.Context, _ auth.Session, entries []SortEntry) error {
	for _, e := range entries {
		if err := s.store.UpdateMemberSortOrder(ctx, e.ID, e.SortOrder); err != nil {
			return fmt.Errorf("failed to reorder member %s: %w", e.ID, err)
		}
	}
	return nil
}
