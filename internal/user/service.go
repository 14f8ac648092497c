package user

import (
	"context"
	"errors"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
)

// ErrInvalidCredentials is returned when a login fails. It deliberately does
// not say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidRole is returned when a request carries an unknown role.
var ErrInvalidRole = errors.New("invalid role")

type repository interface {
	Get(ctx context.Context, id int) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByStudentID(ctx context.Context, studentID string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int, u User) (User, error)
	List(ctx context.Context, role string) ([]User, error)
}

// Service owns account rules: role validation, password hashing, login checks.
type Service struct {
	repo repository
}

// NewService creates a service backed by a repository.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int) (User, error) {
	return s.repo.Get(ctx, id)
}

// GetByStudentID returns a user by student business key, as printed on ID cards.
func (s *Service) GetByStudentID(ctx context.Context, studentID string) (User, error) {
	return s.repo.GetByStudentID(ctx, studentID)
}

// List returns users, optionally filtered by role.
func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	if role != "" && !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.repo.List(ctx, role)
}

// Create validates the role, hashes the password and stores the user.
func (s *Service) Create(ctx context.Context, u User) (User, error) {
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if !ValidRole(u.Role) {
		return User{}, ErrInvalidRole
	}
	hashed, err := auth.HashPassword(u.Password)
	if err != nil {
		return User{}, err
	}
	u.Password = hashed
	return s.repo.Create(ctx, u)
}

// Update applies a partial update. An empty password leaves the hash alone.
func (s *Service) Update(ctx context.Context, id int, u User) (User, error) {
	if u.Role != "" && !ValidRole(u.Role) {
		return User{}, ErrInvalidRole
	}
	if u.Password != "" {
		hashed, err := auth.HashPassword(u.Password)
		if err != nil {
			return User{}, err
		}
		u.Password = hashed
	}
	return s.repo.Update(ctx, id, u)
}

// Authenticate checks a username/password pair and returns the user on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !auth.CheckPassword(password, u.Password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
