package service

import (
	"go.uber.org/zap"

	"github.com/Frey210/SiWarga/config"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/jwt"
	"github.com/Frey210/SiWarga/pkg/redis"
	"github.com/Frey210/SiWarga/pkg/storage"
)

// Service aggregates every business-layer interface.
type Service struct {
	Auth         AuthService
	Submission   SubmissionService
	Workflow     WorkflowService
	File         FileService
	Announcement AnnouncementService
	Export       ExportService
}

// NewService wires the service implementations.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	blobs storage.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Submission:   NewSubmissionService(repo, logger),
		Workflow:     NewWorkflowService(repo, logger),
		File:         NewFileService(repo, blobs, logger),
		Announcement: NewAnnouncementService(cfg, repo, blobs, logger),
		Export:       NewExportService(repo, logger),
	}
}
