package users

import (
	"context"
	"errors"
	"strings"

	"campus-backend/internal/constants"
	"campus-backend/internal/models"
	"campus-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds DB and Redis for user administration.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// CreateUserInput for a new login account.
type CreateUserInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

// CreateUser creates a user. Role defaults to employee; the caller sanitizes
// password_hash out of the response.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.UserName) == "" {
		return nil, errors.New("Username is required and must be a non-empty string")
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, errors.New("Invalid email format")
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, errors.New("Invalid password format")
	}
	trimmed := strings.TrimSpace(in.Fullname)
	if trimmed == "" {
		return nil, errors.New("Full name is required and must be a non-empty string")
	}
	if !validation.IsValidFullname(trimmed) {
		return nil, errors.New("Full name contains invalid characters")
	}
	role := in.Role
	if role == "" {
		role = constants.Employee
	}
	if !validRole(role) {
		return nil, ErrUnknownRole
	}

	userName := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errors.New("Email already registered")
	}
	if err := s.DB.WithContext(ctx).Where("user_name = ?", userName).First(&existing).Error; err == nil {
		return nil, errors.New("Username already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		Fullname:     trimmed,
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserInput carries optional profile fields; empty values are skipped.
type UpdateUserInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// UpdateUser updates the allowed account fields.
func (s *Service) UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	upd := map[string]interface{}{}
	if in.UserName != "" {
		upd["user_name"] = strings.TrimSpace(in.UserName)
	}
	if in.Email != "" {
		if !validation.IsValidEmail(in.Email) {
			return nil, errors.New("Invalid email format")
		}
		upd["email"] = strings.TrimSpace(strings.ToLower(in.Email))
	}
	if in.Password != "" {
		if !validation.IsValidPassword(in.Password) {
			return nil, errors.New("Invalid password format")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
		if err != nil {
			return nil, err
		}
		upd["password_hash"] = string(hash)
	}
	if in.Fullname != "" {
		trimmed := strings.TrimSpace(in.Fullname)
		if !validation.IsValidFullname(trimmed) {
			return nil, errors.New("Full name contains invalid characters")
		}
		upd["fullname"] = trimmed
	}
	if len(upd) == 0 {
		return nil, errors.New("No valid update fields provided")
	}

	if err := s.DB.WithContext(ctx).Model(&u).Updates(upd).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ViewUser returns a user by id.
func (s *Service) ViewUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRole changes a user's role under the governance rules, then destroys
// every live session of the target so stale permissions cannot linger.
func (s *Service) UpdateRole(ctx context.Context, actorID, targetID, newRole string) (*models.User, error) {
	if !validRole(newRole) {
		return nil, ErrUnknownRole
	}
	if actorID == targetID {
		return nil, ErrUsersCannotModifyOwnRole
	}
	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var target models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Prevent demoting the last admin.
	if target.Role == constants.Admin && newRole != constants.Admin {
		var count int64
		s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", constants.Admin).Count(&count)
		if count <= 1 {
			return nil, ErrMustKeepOneAdmin
		}
	}

	if err := s.DB.WithContext(ctx).Model(&target).Update("role", newRole).Error; err != nil {
		return nil, err
	}
	s.destroyUserSessions(ctx, target.UserID.String())
	target.Role = newRole
	return &target, nil
}

// RemoveUser soft-deletes an account and destroys its sessions.
func (s *Service) RemoveUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrCannotRemoveYourself
	}
	id, err := uuid.Parse(targetID)
	if err != nil {
		return ErrUserNotFound
	}
	var target models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&target).Error; err != nil {
		return err
	}
	s.destroyUserSessions(ctx, target.UserID.String())
	return nil
}

// destroyUserSessions removes all sessions for a user: each session:<sid>
// key plus the user_sessions:<user_id> set itself.
func (s *Service) destroyUserSessions(ctx context.Context, userID string) {
	if s.Rdb == nil || userID == "" {
		return
	}
	key := "user_sessions:" + userID
	sessionIDs, err := s.Rdb.SMembers(ctx, key).Result()
	if err == nil {
		for _, sid := range sessionIDs {
			s.Rdb.Del(ctx, "session:"+sid)
		}
	}
	s.Rdb.Del(ctx, key)
}

func validRole(role string) bool {
	switch role {
	case constants.Employee, constants.Faculty, constants.HR, constants.Admin:
		return true
	}
	return false
}
