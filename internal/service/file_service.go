package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/storage"
)

var ErrFileNotFound = errors.New("file not found")

// FileUpload carries one incoming attachment.
type FileUpload struct {
	DocumentType string
	OriginalName string
	MimeType     string
	Content      io.Reader
}

// FileDownload carries an outgoing attachment: metadata plus an open reader
// the caller must close.
type FileDownload struct {
	Content      io.ReadCloser
	OriginalName string
	MimeType     string
	SizeBytes    int64
}

// FileService attaches files to submissions and serves them back. Both
// operations are allowed to the owning resident and to administrators.
type FileService interface {
	Attach(ctx context.Context, actorID, submissionID string, upload *FileUpload) (*dto.SubmissionFileResponse, error)
	Fetch(ctx context.Context, actorID, fileID string) (*FileDownload, error)
}

type fileService struct {
	repo   *repository.Repository
	blobs  storage.Store
	logger *zap.Logger
}

// NewFileService creates the FileService implementation.
func NewFileService(repo *repository.Repository, blobs storage.Store, logger *zap.Logger) FileService {
	return &fileService{repo: repo, blobs: blobs, logger: logger}
}

// canAccess resolves the actor and checks the owner-or-admin rule.
func (s *fileService) canAccess(ctx context.Context, actorID string, sub *model.Submission) error {
	actor, err := s.repo.User.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("lookup actor failed", zap.Error(err))
		return err
	}
	if actor.Role != model.RoleAdminRW && sub.UserID != actor.UserID {
		return ErrNotOwner
	}
	return nil
}

// storedName builds an opaque handle. Only the extension survives from the
// original name.
func storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	return strings.ReplaceAll(uuid.New().String(), "-", "") + ext
}

func (s *fileService) Attach(ctx context.Context, actorID, submissionID string, upload *FileUpload) (*dto.SubmissionFileResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("lookup submission failed", zap.Error(err))
		return nil, err
	}
	if err := s.canAccess(ctx, actorID, sub); err != nil {
		return nil, err
	}

	// blob first, metadata second: a failed write leaves no metadata row
	handle := storedName(upload.OriginalName)
	size, err := s.blobs.Write(handle, upload.Content)
	if err != nil {
		s.logger.Error("write blob failed", zap.String("handle", handle), zap.Error(err))
		return nil, err
	}

	mime := upload.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	original := upload.OriginalName
	if original == "" {
		original = handle
	}

	file := &model.SubmissionFile{
		SubmissionID: sub.SubmissionID,
		DocumentType: upload.DocumentType,
		OriginalName: original,
		StoredName:   handle,
		MimeType:     mime,
		SizeBytes:    size,
	}
	if err := s.repo.SubmissionFile.Create(ctx, file); err != nil {
		s.logger.Error("create file metadata failed", zap.Error(err))
		if derr := s.blobs.Delete(handle); derr != nil {
			s.logger.Warn("cleanup orphaned blob failed", zap.String("handle", handle), zap.Error(derr))
		}
		return nil, err
	}

	resp := dto.NewSubmissionFileResponse(file)
	return &resp, nil
}

func (s *fileService) Fetch(ctx context.Context, actorID, fileID string) (*FileDownload, error) {
	file, err := s.repo.SubmissionFile.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		s.logger.Error("lookup file metadata failed", zap.Error(err))
		return nil, err
	}

	sub, err := s.repo.Submission.GetByID(ctx, file.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("lookup submission failed", zap.Error(err))
		return nil, err
	}
	if err := s.canAccess(ctx, actorID, sub); err != nil {
		return nil, err
	}

	content, size, err := s.blobs.Open(file.StoredName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// metadata without a blob behind it reads as missing
			return nil, ErrFileNotFound
		}
		s.logger.Error("open blob failed", zap.String("handle", file.StoredName), zap.Error(err))
		return nil, err
	}

	return &FileDownload{
		Content:      content,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		SizeBytes:    size,
	}, nil
}
