package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatboigung/SmartAcademicSystem/internal/auth"
)

type fakeRepo struct {
	users  map[int]User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int]User), nextID: 1}
}

func (f *fakeRepo) Get(_ context.Context, id int) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepo) GetByStudentID(_ context.Context, studentID string) (User, error) {
	for _, u := range f.users {
		if u.StudentID != nil && *u.StudentID == studentID {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, u User) (User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return User{}, ErrDuplicate
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) Update(_ context.Context, id int, u User) (User, error) {
	existing, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	if u.FirstName != "" {
		existing.FirstName = u.FirstName
	}
	if u.LastName != "" {
		existing.LastName = u.LastName
	}
	if u.Role != "" {
		existing.Role = u.Role
	}
	if u.Password != "" {
		existing.Password = u.Password
	}
	f.users[id] = existing
	return existing, nil
}

func (f *fakeRepo) List(_ context.Context, role string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestCreateDefaultsToStudent(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), User{
		Username: "jstudent", Password: "password", FirstName: "John", LastName: "Student",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, created.Role)
	assert.NotEqual(t, "password", created.Password, "password must be hashed")
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), User{
		Username: "x", Password: "password", FirstName: "X", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, User{Username: "jstudent", Password: "password", FirstName: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, User{Username: "jstudent", Password: "password", FirstName: "B"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, User{Username: "jstudent", Password: "password", FirstName: "John"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "jstudent", "password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "jstudent", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, User{Username: "jstudent", Password: "password", FirstName: "John"})
	require.NoError(t, err)
	oldHash := repo.users[created.ID].Password

	updated, err := svc.Update(ctx, created.ID, User{FirstName: "Johnny"})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, oldHash, repo.users[created.ID].Password)

	_, err = svc.Update(ctx, created.ID, User{Password: "newpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, repo.users[created.ID].Password)
	assert.True(t, auth.CheckPassword("newpassword", repo.users[created.ID].Password))
}

func TestListRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.List(context.Background(), "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleLecturer, RoleAdmin} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
