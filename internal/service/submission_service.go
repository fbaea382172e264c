package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotOwner           = errors.New("not the submission owner")
	ErrWargaOnly          = errors.New("residents only")
	ErrProfileIncomplete  = errors.New("profile incomplete")
)

// SubmissionService covers a resident's submissions and the admin queue.
type SubmissionService interface {
	Create(ctx context.Context, actorID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	ListOwn(ctx context.Context, actorID string, req *dto.ListSubmissionsRequest) ([]dto.SubmissionResponse, error)
	GetDetail(ctx context.Context, actorID, submissionID string) (*dto.SubmissionDetailResponse, error)
	AdminList(ctx context.Context, req *dto.AdminListSubmissionsRequest) ([]dto.AdminSubmissionListItem, int64, error)
	AdminDetail(ctx context.Context, submissionID string) (*dto.AdminSubmissionDetailResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService creates the SubmissionService implementation.
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

func (s *submissionService) Create(ctx context.Context, actorID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	// 1. resolve the actor; only residents with a complete profile may file
	actor, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}
	if actor.Role != model.RoleWarga {
		return nil, ErrWargaOnly
	}
	if !actor.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	// 2. persist; new submissions always start at SUBMITTED
	sub := &model.Submission{
		UserID:  actor.UserID,
		Type:    req.Type,
		Payload: datatypes.JSON(req.Payload),
		Status:  model.StatusSubmitted,
	}
	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		s.logger.Error("create submission failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewSubmissionResponse(sub)
	return &resp, nil
}

func (s *submissionService) ListOwn(ctx context.Context, actorID string, req *dto.ListSubmissionsRequest) ([]dto.SubmissionResponse, error) {
	filters := &repository.SubmissionListFilters{
		Status: req.Status,
		Type:   req.Type,
	}
	subs, err := s.repo.Submission.ListByOwner(ctx, actorID, filters)
	if err != nil {
		s.logger.Error("list submissions failed", zap.Error(err))
		return nil, err
	}
	return dto.NewSubmissionResponses(subs), nil
}

func (s *submissionService) GetDetail(ctx context.Context, actorID, submissionID string) (*dto.SubmissionDetailResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("lookup submission failed", zap.Error(err))
		return nil, err
	}

	// residents see their own submissions only; admins use the admin route
	if sub.UserID != actorID {
		return nil, ErrNotOwner
	}

	files, err := s.repo.SubmissionFile.ListBySubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("list submission files failed", zap.Error(err))
		return nil, err
	}

	detail := &dto.SubmissionDetailResponse{
		SubmissionResponse: dto.NewSubmissionResponse(sub),
		Files:              dto.NewSubmissionFileResponses(files),
	}

	last, err := s.repo.ApprovalLog.GetLatest(ctx, submissionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("lookup last approval log failed", zap.Error(err))
			return nil, err
		}
		// no action has been applied yet
	} else {
		entry := dto.NewApprovalLogResponse(last)
		detail.LastAction = &entry
	}

	return detail, nil
}

func (s *submissionService) AdminList(ctx context.Context, req *dto.AdminListSubmissionsRequest) ([]dto.AdminSubmissionListItem, int64, error) {
	filters := &repository.AdminSubmissionFilters{
		Status: req.Status,
		Type:   req.Type,
		Query:  req.Q,
	}
	subs, total, err := s.repo.Submission.AdminList(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("admin list submissions failed", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.AdminSubmissionListItem, 0, len(subs))
	for i := range subs {
		items = append(items, dto.NewAdminSubmissionListItem(&subs[i]))
	}
	return items, total, nil
}

func (s *submissionService) AdminDetail(ctx context.Context, submissionID string) (*dto.AdminSubmissionDetailResponse, error) {
	sub, err := s.repo.Submission.GetByIDWithOwner(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("lookup submission failed", zap.Error(err))
		return nil, err
	}

	files, err := s.repo.SubmissionFile.ListBySubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("list submission files failed", zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.ApprovalLog.ListBySubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("list approval logs failed", zap.Error(err))
		return nil, err
	}

	detail := &dto.AdminSubmissionDetailResponse{
		SubmissionResponse: dto.NewSubmissionResponse(sub),
		Files:              dto.NewSubmissionFileResponses(files),
		Logs:               dto.NewApprovalLogResponses(logs),
	}
	if sub.Owner != nil {
		detail.OwnerEmail = sub.Owner.Email
		detail.OwnerFullName = sub.Owner.FullName
		detail.OwnerPhone = sub.Owner.PhoneNumber
		detail.OwnerNIK = sub.Owner.NIK
		detail.OwnerKKNumber = sub.Owner.KKNumber
	}
	return detail, nil
}
