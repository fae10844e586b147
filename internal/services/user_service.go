package services

import (
	"fmt"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// UserInput carries a user write; nil pointer fields in a patch mean "leave
// unchanged".
type UserInput struct {
	Username  *string
	Email     *string
	Role      *string
	Bio       *string
	FirstName *string
	LastName  *string
}

// UserService handles account administration and self-service profiles.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns accounts; superuser/admin only. A non-empty search matches
// the username exactly.
func (s *UserService) List(actor *models.User, search string) ([]models.User, error) {
	if !permissions.SuperuserOrAdmin(actor) {
		return nil, permissionErr(actor)
	}
	users, err := s.userRepo.List(search)
	return users, dataErr(err)
}

// Get retrieves an account by username; superuser/admin only.
func (s *UserService) Get(actor *models.User, username string) (*models.User, error) {
	if !permissions.SuperuserOrAdmin(actor) {
		return nil, permissionErr(actor)
	}
	user, err := s.userRepo.GetByUsername(username)
	return user, dataErr(err)
}

// Create registers an account with an explicit role; superuser/admin only.
func (s *UserService) Create(actor *models.User, input UserInput) (*models.User, error) {
	if !permissions.SuperuserOrAdmin(actor) {
		return nil, permissionErr(actor)
	}
	if input.Username == nil || input.Email == nil {
		return nil, fmt.Errorf("%w: username and email are required", ErrValidation)
	}
	if err := models.ValidateUsername(*input.Username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user := &models.User{
		Username: *input.Username,
		Email:    *input.Email,
		Role:     models.RoleUser,
	}
	applyProfile(user, input)
	if input.Role != nil {
		switch *input.Role {
		case models.RoleUser, models.RoleModerator, models.RoleAdmin:
			user.Role = *input.Role
		default:
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *input.Role)
		}
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, dataErr(err)
	}
	return user, nil
}

// Update applies a partial patch to an account; superuser/admin only.
func (s *UserService) Update(actor *models.User, username string, input UserInput) (*models.User, error) {
	if !permissions.SuperuserOrAdmin(actor) {
		return nil, permissionErr(actor)
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, dataErr(err)
	}
	if err := s.applyPatch(user, input, true); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(user); err != nil {
		return nil, dataErr(err)
	}
	return user, nil
}

// Delete removes an account by username; superuser/admin only.
func (s *UserService) Delete(actor *models.User, username string) error {
	if !permissions.SuperuserOrAdmin(actor) {
		return permissionErr(actor)
	}
	return dataErr(s.userRepo.Delete(username))
}

// UpdateProfile lets an authenticated user patch their own profile. The role
// field is read-only here unless the actor is an admin; a role value in the
// patch is silently dropped for everyone else.
func (s *UserService) UpdateProfile(actor *models.User, input UserInput) (*models.User, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if err := s.applyPatch(actor, input, actor.IsAdmin()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(actor); err != nil {
		return nil, dataErr(err)
	}
	return actor, nil
}

func (s *UserService) applyPatch(user *models.User, input UserInput, roleWritable bool) error {
	if input.Username != nil {
		if err := models.ValidateUsername(*input.Username); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil && roleWritable {
		switch *input.Role {
		case models.RoleUser, models.RoleModerator, models.RoleAdmin:
			user.Role = *input.Role
		default:
			return fmt.Errorf("%w: unknown role %q", ErrValidation, *input.Role)
		}
	}
	applyProfile(user, input)
	return nil
}

func applyProfile(user *models.User, input UserInput) {
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
}
