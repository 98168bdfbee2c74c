package grouprequest

import (
	"context"
	"errors"
	"time"

	common_models "go-chat/internal/common/models"
	"go-chat/internal/features/group"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CreateRequestInput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ReviewInput struct {
	Status string `json:"status"` // approved | rejected
}

type GroupRequestService interface {
	Create(ctx context.Context, groupID primitive.ObjectID, input CreateRequestInput, caller *utils.UserClaims) (*GroupRequest, error)
	GetByGroup(ctx context.Context, groupID primitive.ObjectID, caller *utils.UserClaims) ([]GroupRequest, error)
	GetMine(ctx context.Context, caller *utils.UserClaims) ([]GroupRequest, error)
	GetPending(ctx context.Context) ([]GroupRequest, error)
	Review(ctx context.Context, id primitive.ObjectID, input ReviewInput, caller *utils.UserClaims) (*GroupRequest, error)
	ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type GroupRequestServiceImpl struct {
	repo         GroupRequestRepository
	groupService group.GroupService
	logger       *zap.Logger
}

func NewGroupRequestService(repo GroupRequestRepository, groupService group.GroupService, logger *zap.Logger) GroupRequestService {
	return &GroupRequestServiceImpl{
		repo:         repo,
		groupService: groupService,
		logger:       logger,
	}
}

func isMember(g *group.Group, userID string) bool {
	for _, m := range g.Members {
		if m.Hex() == userID {
			return true
		}
	}
	return false
}

func canReview(g *group.Group, caller *utils.UserClaims) bool {
	return g.OwnerID.Hex() == caller.UserID ||
		caller.HasRole(common_models.RoleAdmin) ||
		caller.HasRole(common_models.RoleSuperAdmin)
}

func (s *GroupRequestServiceImpl) Create(ctx context.Context, groupID primitive.ObjectID, input CreateRequestInput, caller *utils.UserClaims) (*GroupRequest, error) {
	if input.Type != common_models.RequestTypeRegisterInterest && input.Type != common_models.RequestTypeRequestInvite {
		return nil, apperrors.Validationf("unknown request type %q", input.Type)
	}

	grp, err := s.groupService.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if isMember(grp, caller.UserID) {
		return nil, apperrors.Conflictf("you are already a member of this group")
	}

	if _, err := s.repo.FindPendingByGroupAndUser(ctx, groupID, mustObjectID(caller.UserID)); err == nil {
		return nil, apperrors.Conflictf("a pending request for this group already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	request := &GroupRequest{
		GroupID:   groupID,
		GroupName: grp.Name,
		UserID:    mustObjectID(caller.UserID),
		Username:  caller.Username,
		Type:      input.Type,
		Status:    common_models.RequestStatusPending,
		Message:   input.Message,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("group join request created",
		zap.String("requestId", request.ID.Hex()),
		zap.String("groupId", groupID.Hex()),
		zap.String("userId", caller.UserID))
	return request, nil
}

func (s *GroupRequestServiceImpl) GetByGroup(ctx context.Context, groupID primitive.ObjectID, caller *utils.UserClaims) ([]GroupRequest, error) {
	grp, err := s.groupService.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !canReview(grp, caller) {
		return nil, apperrors.Forbiddenf("only the group owner can list join requests")
	}

	return s.repo.FindByGroup(ctx, groupID)
}

func (s *GroupRequestServiceImpl) GetMine(ctx context.Context, caller *utils.UserClaims) ([]GroupRequest, error) {
	return s.repo.FindByUser(ctx, mustObjectID(caller.UserID))
}

func (s *GroupRequestServiceImpl) GetPending(ctx context.Context) ([]GroupRequest, error) {
	return s.repo.FindPending(ctx)
}

// Review settles a pending request. The transition is one-way: a request
// that is already approved or rejected cannot be reviewed again.
func (s *GroupRequestServiceImpl) Review(ctx context.Context, id primitive.ObjectID, input ReviewInput, caller *utils.UserClaims) (*GroupRequest, error) {
	if input.Status != common_models.RequestStatusApproved && input.Status != common_models.RequestStatusRejected {
		return nil, apperrors.Validationf("status must be %q or %q",
			common_models.RequestStatusApproved, common_models.RequestStatusRejected)
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("group request %s", id.Hex())
		}
		return nil, err
	}

	if request.Status != common_models.RequestStatusPending {
		return nil, apperrors.Conflictf("request has already been %s", request.Status)
	}

	grp, err := s.groupService.GetGroupByID(ctx, request.GroupID)
	if err != nil {
		return nil, err
	}

	if !canReview(grp, caller) {
		return nil, apperrors.Forbiddenf("only the group owner can review join requests")
	}

	if input.Status == common_models.RequestStatusApproved {
		if err := s.groupService.AddMember(ctx, request.GroupID, request.UserID, caller); err != nil {
			return nil, err
		}
	}

	reviewerID := mustObjectID(caller.UserID)
	reviewedAt := time.Now()
	if err := s.repo.SetReview(ctx, id, input.Status, reviewerID, reviewedAt); err != nil {
		return nil, err
	}

	request.Status = input.Status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt

	s.logger.Info("group join request reviewed",
		zap.String("requestId", id.Hex()),
		zap.String("status", input.Status),
		zap.String("reviewedBy", caller.UserID))
	return request, nil
}

// ExpireStale rejects pending requests older than the given age. Runs from
// the scheduler, outside any HTTP request.
func (s *GroupRequestServiceImpl) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	expired, err := s.repo.RejectOlderThan(ctx, cutoff, time.Now())
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.Info("expired stale group join requests",
			zap.Int64("count", expired),
			zap.Time("cutoff", cutoff))
	}
	return expired, nil
}

// mustObjectID converts a claims user id that was already validated at
// token issue time. A malformed id yields the zero ObjectID, which matches
// no document.
func mustObjectID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}
