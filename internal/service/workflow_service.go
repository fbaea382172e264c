package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
)

var (
	ErrAdminOnly     = errors.New("administrator role required")
	ErrUnknownAction = errors.New("unknown review action")
)

// WorkflowService is the submission review engine. Each applied action sets
// the status given by the flat action mapping and appends exactly one audit
// record, atomically. The current status never restricts which actions are
// accepted; the audit log is the authoritative history.
type WorkflowService interface {
	ApplyAction(ctx context.Context, submissionID, actorID string, req *dto.ApplyActionRequest) (*dto.ApplyActionResponse, error)
}

type workflowService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkflowService creates the WorkflowService implementation.
func NewWorkflowService(repo *repository.Repository, logger *zap.Logger) WorkflowService {
	return &workflowService{repo: repo, logger: logger}
}

func (s *workflowService) ApplyAction(ctx context.Context, submissionID, actorID string, req *dto.ApplyActionRequest) (*dto.ApplyActionResponse, error) {
	// 1. the actor must hold the administrator role
	actor, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup actor failed", zap.Error(err))
		return nil, err
	}
	if actor.Role != model.RoleAdminRW {
		return nil, ErrAdminOnly
	}

	// 2. the submission must exist
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("lookup submission failed", zap.Error(err))
		return nil, err
	}

	// 3. map the action; any action is accepted from any current status
	newStatus, ok := model.ActionStatus[req.Action]
	if !ok {
		return nil, ErrUnknownAction
	}

	sub.Status = newStatus
	sub.UpdatedAt = time.Now()

	entry := &model.ApprovalLog{
		SubmissionID: sub.SubmissionID,
		ActorUserID:  actor.UserID,
		Action:       req.Action,
		Note:         req.Note,
	}

	// 4. status update and audit row commit or roll back together
	if err := s.repo.Submission.UpdateStatusWithLog(ctx, sub, entry); err != nil {
		s.logger.Error("apply review action failed",
			zap.String("submission_id", sub.SubmissionID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("review action applied",
		zap.String("submission_id", sub.SubmissionID),
		zap.String("action", req.Action),
		zap.String("status", sub.Status),
		zap.String("actor_user_id", actor.UserID),
	)

	return &dto.ApplyActionResponse{
		Submission: dto.NewSubmissionResponse(sub),
		Log:        dto.NewApprovalLogResponse(entry),
	}, nil
}
