package user

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-chat/internal/common/models"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type MockUserRepo struct {
	Users map[primitive.ObjectID]*User
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[primitive.ObjectID]*User)}
}

func (m *MockUserRepo) Create(ctx context.Context, u *User) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range m.Users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockUserRepo) List(ctx context.Context, search string, limit, offset int64) ([]User, int64, error) {
	result := []User{}
	for _, u := range m.Users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *MockUserRepo) Update(ctx context.Context, id primitive.ObjectID, u *User) error {
	m.Users[id] = u
	return nil
}

func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	if u, ok := m.Users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := m.Users[id]; !ok {
		return 0, nil
	}
	delete(m.Users, id)
	return 1, nil
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Users)), nil
}

func (m *MockUserRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, u := range m.Users {
		if u.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *MockUserRepo) CountNewSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}

func selfClaims(id primitive.ObjectID) *utils.UserClaims {
	return &utils.UserClaims{UserID: id.Hex(), Username: "self", Roles: []string{common_models.RoleUser}}
}

func superAdminClaims() *utils.UserClaims {
	return &utils.UserClaims{
		UserID:   primitive.NewObjectID().Hex(),
		Username: "root",
		Roles:    []string{common_models.RoleSuperAdmin},
	}
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := NewMockUserRepo()
	service := NewUserService(repo, zap.NewNop())

	created, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if created.Password == "s3cret" {
		t.Error("password must be stored hashed")
	}
	if !utils.CheckPassword(created.Password, "s3cret") {
		t.Error("stored hash must verify against the plain password")
	}
	if len(created.Roles) != 1 || created.Roles[0] != common_models.RoleUser {
		t.Errorf("expected default user role, got %v", created.Roles)
	}
	if !created.IsActive {
		t.Error("new account should be active")
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := NewMockUserRepo()
	service := NewUserService(repo, zap.NewNop())

	input := CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "pw"}
	if _, err := service.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	input.Username = "alice2"
	_, err := service.CreateUser(context.Background(), input)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	repo := NewMockUserRepo()
	service := NewUserService(repo, zap.NewNop())

	if _, err := service.CreateUser(context.Background(),
		CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	_, err := service.CreateUser(context.Background(),
		CreateUserInput{Username: "alice", Email: "other@example.com", Password: "pw"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateUserRejectsOtherAccounts(t *testing.T) {
	repo := NewMockUserRepo()
	service := NewUserService(repo, zap.NewNop())

	created, _ := service.CreateUser(context.Background(),
		CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "pw"})

	name := "mallory"
	_, err := service.UpdateUser(context.Background(), created.ID,
		UpdateUserInput{Username: &name}, selfClaims(primitive.NewObjectID()))
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateUserRoleChangeNeedsSuperAdmin(t *testing.T) {
	repo := NewMockUserRepo()
	service := NewUserService(repo, zap.NewNop())

	created, _ := service.CreateUser(context.Background(),
		CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "pw"})

	roles := []string{common_models.RoleAdmin}
	_, err := service.UpdateUser(context.Background(), created.ID,
		UpdateUserInput{Roles: &roles}, selfClaims(created.ID))
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden for self role change, got %v", err)
	}

	updated, err := service.UpdateUser(context.Background(), created.ID,
		UpdateUserInput{Roles: &roles}, superAdminClaims())
	if err != nil {
		t.Fatalf("super admin role change failed: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != common_models.RoleAdmin {
		t.Errorf("expected roles updated, got %v", updated.Roles)
	}
}

func TestDeleteUserUnknownIsNotFound(t *testing.T) {
	service := NewUserService(NewMockUserRepo(), zap.NewNop())

	err := service.DeleteUser(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
