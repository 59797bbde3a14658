package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"
)

// GetTeamCategories retrieves all team categories in display order
func (s *Store) GetTeamCategories(ctx context.Context) ([]models.TeamCategory, error) {
	var categories []models.TeamCategory
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM team_categories ORDER BY sort_order ASC, created_at ASC")
	return categories, err
}

// GetTeamCategoryByID retrieves a team category by ID
func (s *Store) GetTeamCategoryByID(ctx context.Context, id string) (*models.TeamCategory, error) {
	var category models.TeamCategory
	err := s.db.GetContext(ctx, &category,
		"SELECT * FROM team_categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team category not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateTeamCategory inserts a team category
func (s *Store) CreateTeamCategory(ctx context.Context, category *models.TeamCategory) error {
	query := `
		INSERT INTO team_categories (name, image_url, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, category, query,
		category.Name, category.ImageURL, category.SortOrder)
}

// DeleteTeamCategory removes a team category
func (s *Store) DeleteTeamCategory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM team_categories WHERE id = $1", id)
	return err
}

// UpdateCategorySortOrder sets a category's position
func (s *Store) UpdateCategorySortOrder(ctx context.Context, id string, sortOrder int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE team_categories SET sort_order = $1 WHERE id = $2", sortOrder, id)
	return err
}

// GetTeamMembers retrieves all team members in display order
func (s *Store) GetTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.SelectContext(ctx, &members,
		"SELECT * FROM team_members ORDER BY sort_order ASC, created_at ASC")
	return members, err
}

// GetTeamMembersByCategory retrieves members of one category
func (s *Store) GetTeamMembersByCategory(ctx context.Context, categoryID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.SelectContext(ctx, &members,
		"SELECT * FROM team_members WHERE category_id = $1 ORDER BY sort_order ASC, created_at ASC",
		categoryID)
	return members, err
}

// GetUncategorizedMembers retrieves members with no category
func (s *Store) GetUncategorizedMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.SelectContext(ctx, &members,
		"SELECT * FROM team_members WHERE category_id IS NULL ORDER BY sort_order ASC, created_at ASC")
	return members, err
}

// GetTeamMemberByID retrieves a team member by ID
func (s *Store) GetTeamMemberByID(ctx context.Context, id string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.db.GetContext(ctx, &member,
		"SELECT * FROM team_members WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team member not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateTeamMember inserts a team member
func (s *Store) CreateTeamMember(ctx context.Context, member *models.TeamMember) error {
	query := `
		INSERT INTO team_members (name, image_url, bio, sort_order, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, member, query,
		member.Name, member.ImageURL, member.Bio, member.SortOrder, member.CategoryID)
}

// DeleteTeamMember removes a team member
func (s *Store) DeleteTeamMember(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM team_members WHERE id = $1", id)
	return err
}

// UpdateMemberSortOrder sets a member's position
func (s *Store) UpdateMemberSortOrder(ctx context.Context, id string, sortOrder int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE team_members SET sort_order = $1 WHERE id = $2", sortOrder, id)
	return err
}
