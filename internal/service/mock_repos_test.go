package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/internal/repository"
	"github.com/Frey210/SiWarga/pkg/storage"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) HasRole(_ context.Context, role string) (bool, error) {
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock SubmissionRepository ──

// mockSubmissionRepo shares the approval-log slice with mockApprovalLogRepo
// so UpdateStatusWithLog mirrors the real transactional coupling.
type mockSubmissionRepo struct {
	subs   map[string]*model.Submission
	logs   *mockApprovalLogRepo
	failTx bool
}

func newMockSubmissionRepo(logs *mockApprovalLogRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.Submission), logs: logs}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	if sub.SubmissionID == "" {
		sub.SubmissionID = fmt.Sprintf("sub-%d", len(m.subs)+1)
	}
	m.subs[sub.SubmissionID] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.subs[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByIDWithOwner(ctx context.Context, id string) (*model.Submission, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSubmissionRepo) ListByOwner(_ context.Context, userID string, filters *repository.SubmissionListFilters) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.UserID != userID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.Type != "" && s.Type != filters.Type {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockSubmissionRepo) AdminList(_ context.Context, filters *repository.AdminSubmissionFilters, offset, limit int) ([]model.Submission, int64, error) {
	var matched []model.Submission
	for _, s := range m.subs {
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.Type != "" && s.Type != filters.Type {
			continue
		}
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			hay := strings.ToLower(s.Type + string(s.Payload))
			if s.Owner != nil {
				hay += strings.ToLower(s.Owner.Email + s.Owner.FullName + s.Owner.NIK)
			}
			if !strings.Contains(hay, q) {
				continue
			}
		}
		matched = append(matched, *s)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *mockSubmissionRepo) UpdateStatusWithLog(_ context.Context, sub *model.Submission, entry *model.ApprovalLog) error {
	if m.failTx {
		return errors.New("tx failed")
	}
	stored, ok := m.subs[sub.SubmissionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = sub.Status
	stored.UpdatedAt = sub.UpdatedAt
	if entry.ApprovalLogID == "" {
		entry.ApprovalLogID = fmt.Sprintf("log-%d", len(m.logs.entries)+1)
	}
	m.logs.entries = append(m.logs.entries, *entry)
	return nil
}

// ── Mock SubmissionFileRepository ──

type mockSubmissionFileRepo struct {
	files      map[string]*model.SubmissionFile
	failCreate bool
}

func newMockSubmissionFileRepo() *mockSubmissionFileRepo {
	return &mockSubmissionFileRepo{files: make(map[string]*model.SubmissionFile)}
}

func (m *mockSubmissionFileRepo) Create(_ context.Context, file *model.SubmissionFile) error {
	if m.failCreate {
		return errors.New("insert failed")
	}
	if file.SubmissionFileID == "" {
		file.SubmissionFileID = fmt.Sprintf("file-%d", len(m.files)+1)
	}
	m.files[file.SubmissionFileID] = file
	return nil
}

func (m *mockSubmissionFileRepo) GetByID(_ context.Context, id string) (*model.SubmissionFile, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionFileRepo) ListBySubmission(_ context.Context, submissionID string) ([]model.SubmissionFile, error) {
	var result []model.SubmissionFile
	for _, f := range m.files {
		if f.SubmissionID == submissionID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock ApprovalLogRepository ──

type mockApprovalLogRepo struct {
	entries []model.ApprovalLog
}

func newMockApprovalLogRepo() *mockApprovalLogRepo {
	return &mockApprovalLogRepo{}
}

func (m *mockApprovalLogRepo) GetLatest(_ context.Context, submissionID string) (*model.ApprovalLog, error) {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].SubmissionID == submissionID {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApprovalLogRepo) ListBySubmission(_ context.Context, submissionID string) ([]model.ApprovalLog, error) {
	var result []model.ApprovalLog
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].SubmissionID == submissionID {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	anns map[string]*model.Announcement
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{anns: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		a.AnnouncementID = fmt.Sprintf("ann-%d", len(m.anns)+1)
	}
	m.anns[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.anns[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) GetBySlug(_ context.Context, slug string) (*model.Announcement, error) {
	for _, a := range m.anns {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, a := range m.anns {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	if _, ok := m.anns[a.AnnouncementID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *a
	m.anns[a.AnnouncementID] = &copied
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.anns, id)
	return nil
}

func (m *mockAnnouncementRepo) List(_ context.Context, filters *repository.AnnouncementFilters, offset, limit int) ([]model.Announcement, int64, error) {
	var matched []model.Announcement
	for _, a := range m.anns {
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.Category != "" && a.Category != filters.Category {
			continue
		}
		matched = append(matched, *a)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// ── Mock storage.Store ──

type mockStore struct {
	blobs     map[string][]byte
	failWrite bool
}

func newMockStore() *mockStore {
	return &mockStore{blobs: make(map[string][]byte)}
}

func (m *mockStore) Write(handle string, r io.Reader) (int64, error) {
	if m.failWrite {
		return 0, errors.New("write failed")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.blobs[handle] = data
	return int64(len(data)), nil
}

func (m *mockStore) Open(handle string) (io.ReadCloser, int64, error) {
	data, ok := m.blobs[handle]
	if !ok {
		return nil, 0, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (m *mockStore) Delete(handle string) error {
	delete(m.blobs, handle)
	return nil
}

func (m *mockStore) Exists(handle string) bool {
	_, ok := m.blobs[handle]
	return ok
}
