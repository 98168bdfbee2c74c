package grouprequest

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-chat/internal/common/models"
	"go-chat/internal/features/group"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type MockRequestRepo struct {
	Requests map[primitive.ObjectID]*GroupRequest
	Rejected int64
}

func NewMockRequestRepo() *MockRequestRepo {
	return &MockRequestRepo{Requests: make(map[primitive.ObjectID]*GroupRequest)}
}

func (m *MockRequestRepo) Create(ctx context.Context, request *GroupRequest) error {
	request.ID = primitive.NewObjectID()
	request.RequestedAt = time.Now()
	m.Requests[request.ID] = request
	return nil
}

func (m *MockRequestRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*GroupRequest, error) {
	request, ok := m.Requests[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *request
	return &copied, nil
}

func (m *MockRequestRepo) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error) {
	result := []GroupRequest{}
	for _, r := range m.Requests {
		if r.GroupID == groupID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *MockRequestRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error) {
	result := []GroupRequest{}
	for _, r := range m.Requests {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *MockRequestRepo) FindPending(ctx context.Context) ([]GroupRequest, error) {
	result := []GroupRequest{}
	for _, r := range m.Requests {
		if r.Status == common_models.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *MockRequestRepo) FindPendingByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*GroupRequest, error) {
	for _, r := range m.Requests {
		if r.GroupID == groupID && r.UserID == userID && r.Status == common_models.RequestStatusPending {
			copied := *r
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockRequestRepo) SetReview(ctx context.Context, id primitive.ObjectID, status string, reviewerID primitive.ObjectID, reviewedAt time.Time) error {
	request, ok := m.Requests[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	return nil
}

func (m *MockRequestRepo) RejectOlderThan(ctx context.Context, cutoff time.Time, reviewedAt time.Time) (int64, error) {
	var count int64
	for _, r := range m.Requests {
		if r.Status == common_models.RequestStatusPending && r.RequestedAt.Before(cutoff) {
			r.Status = common_models.RequestStatusRejected
			r.ReviewedAt = &reviewedAt
			count++
		}
	}
	m.Rejected += count
	return count, nil
}

type MockGroupService struct {
	Groups       map[primitive.ObjectID]*group.Group
	AddedMembers []primitive.ObjectID
}

func (m *MockGroupService) CreateGroup(ctx context.Context, input group.CreateGroupInput, ownerID primitive.ObjectID) (*group.Group, error) {
	return nil, nil
}

func (m *MockGroupService) GetAllGroups(ctx context.Context) ([]group.Group, error) {
	return nil, nil
}

func (m *MockGroupService) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*group.Group, error) {
	g, ok := m.Groups[id]
	if !ok {
		return nil, apperrors.NotFoundf("group %s", id.Hex())
	}
	return g, nil
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, id primitive.ObjectID, input group.UpdateGroupInput, caller *utils.UserClaims) (*group.Group, error) {
	return nil, nil
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error {
	return nil
}

func (m *MockGroupService) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error {
	m.AddedMembers = append(m.AddedMembers, userID)
	return nil
}

func (m *MockGroupService) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error {
	return nil
}

func (m *MockGroupService) GetUserGroups(ctx context.Context, userID primitive.ObjectID) ([]group.Group, error) {
	return nil, nil
}

func newTestSetup() (*MockRequestRepo, *MockGroupService, GroupRequestService, *group.Group, primitive.ObjectID) {
	repo := NewMockRequestRepo()
	ownerID := primitive.NewObjectID()
	grp := &group.Group{
		ID:      primitive.NewObjectID(),
		Name:    "backend-team",
		OwnerID: ownerID,
		Members: []primitive.ObjectID{ownerID},
	}
	groups := &MockGroupService{Groups: map[primitive.ObjectID]*group.Group{grp.ID: grp}}
	service := NewGroupRequestService(repo, groups, zap.NewNop())
	return repo, groups, service, grp, ownerID
}

func userClaims(id primitive.ObjectID, username string) *utils.UserClaims {
	return &utils.UserClaims{UserID: id.Hex(), Username: username, Roles: []string{common_models.RoleUser}}
}

func TestCreateCopiesGroupNameAndUsername(t *testing.T) {
	_, _, service, grp, _ := newTestSetup()

	caller := userClaims(primitive.NewObjectID(), "alice")
	request, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRequestInvite, Message: "let me in"}, caller)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if request.GroupName != "backend-team" {
		t.Errorf("expected group name copied, got %q", request.GroupName)
	}
	if request.Username != "alice" {
		t.Errorf("expected username copied, got %q", request.Username)
	}
	if request.Status != common_models.RequestStatusPending {
		t.Errorf("expected pending status, got %q", request.Status)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	_, _, service, grp, _ := newTestSetup()

	_, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: "petition"}, userClaims(primitive.NewObjectID(), "alice"))
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateRejectsExistingMember(t *testing.T) {
	_, _, service, grp, ownerID := newTestSetup()

	_, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRegisterInterest}, userClaims(ownerID, "owner"))
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCreateRejectsDuplicatePendingRequest(t *testing.T) {
	_, _, service, grp, _ := newTestSetup()

	caller := userClaims(primitive.NewObjectID(), "alice")
	input := CreateRequestInput{Type: common_models.RequestTypeRequestInvite}

	if _, err := service.Create(context.Background(), grp.ID, input, caller); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := service.Create(context.Background(), grp.ID, input, caller)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestReviewApprovalAddsMember(t *testing.T) {
	_, groups, service, grp, ownerID := newTestSetup()

	requesterID := primitive.NewObjectID()
	request, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRequestInvite}, userClaims(requesterID, "alice"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reviewed, err := service.Review(context.Background(), request.ID,
		ReviewInput{Status: common_models.RequestStatusApproved}, userClaims(ownerID, "owner"))
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if reviewed.Status != common_models.RequestStatusApproved {
		t.Errorf("expected approved, got %q", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || reviewed.ReviewedBy.Hex() != ownerID.Hex() {
		t.Error("expected reviewer to be recorded")
	}
	if len(groups.AddedMembers) != 1 || groups.AddedMembers[0] != requesterID {
		t.Error("expected requester to be added to the group")
	}
}

func TestReviewRejectionDoesNotAddMember(t *testing.T) {
	_, groups, service, grp, ownerID := newTestSetup()

	request, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRequestInvite},
		userClaims(primitive.NewObjectID(), "alice"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.Review(context.Background(), request.ID,
		ReviewInput{Status: common_models.RequestStatusRejected}, userClaims(ownerID, "owner")); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if len(groups.AddedMembers) != 0 {
		t.Error("rejection must not add a member")
	}
}

func TestReviewRejectsDoubleReview(t *testing.T) {
	_, _, service, grp, ownerID := newTestSetup()

	request, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRequestInvite},
		userClaims(primitive.NewObjectID(), "alice"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	owner := userClaims(ownerID, "owner")
	if _, err := service.Review(context.Background(), request.ID,
		ReviewInput{Status: common_models.RequestStatusRejected}, owner); err != nil {
		t.Fatalf("first Review failed: %v", err)
	}

	_, err = service.Review(context.Background(), request.ID,
		ReviewInput{Status: common_models.RequestStatusApproved}, owner)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestReviewRejectsNonOwner(t *testing.T) {
	_, _, service, grp, _ := newTestSetup()

	request, err := service.Create(context.Background(), grp.ID,
		CreateRequestInput{Type: common_models.RequestTypeRequestInvite},
		userClaims(primitive.NewObjectID(), "alice"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = service.Review(context.Background(), request.ID,
		ReviewInput{Status: common_models.RequestStatusApproved},
		userClaims(primitive.NewObjectID(), "stranger"))
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestReviewRejectsInvalidStatus(t *testing.T) {
	_, _, service, _, ownerID := newTestSetup()

	_, err := service.Review(context.Background(), primitive.NewObjectID(),
		ReviewInput{Status: "maybe"}, userClaims(ownerID, "owner"))
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestExpireStaleRejectsOnlyOldPending(t *testing.T) {
	repo, _, service, grp, _ := newTestSetup()

	old := &GroupRequest{
		GroupID: grp.ID,
		UserID:  primitive.NewObjectID(),
		Type:    common_models.RequestTypeRequestInvite,
		Status:  common_models.RequestStatusPending,
	}
	repo.Create(context.Background(), old)
	old.RequestedAt = time.Now().AddDate(0, 0, -40)

	fresh := &GroupRequest{
		GroupID: grp.ID,
		UserID:  primitive.NewObjectID(),
		Type:    common_models.RequestTypeRequestInvite,
		Status:  common_models.RequestStatusPending,
	}
	repo.Create(context.Background(), fresh)

	expired, err := service.ExpireStale(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("ExpireStale failed: %v", err)
	}

	if expired != 1 {
		t.Errorf("expected 1 expired request, got %d", expired)
	}
	if repo.Requests[old.ID].Status != common_models.RequestStatusRejected {
		t.Error("stale request should be rejected")
	}
	if repo.Requests[fresh.ID].Status != common_models.RequestStatusPending {
		t.Error("fresh request should stay pending")
	}
}
