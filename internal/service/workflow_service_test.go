package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Frey210/SiWarga/internal/dto"
	"github.com/Frey210/SiWarga/internal/model"
)

func setupWorkflowService() (WorkflowService, *testRepos) {
	repos := newTestRepos()
	svc := NewWorkflowService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedWorkflowFixture(repos *testRepos, status string) {
	seedUser(repos, "admin-1", "rw@example.com", "pw", model.RoleAdminRW, true)
	seedUser(repos, "user-1", "warga@example.com", "pw", model.RoleWarga, true)
	seedSubmission(repos, "sub-1", "user-1", "surat_pengantar_ktp", status, time.Now())
}

func TestWorkflowService_ApplyAction_Mappings(t *testing.T) {
	cases := []struct {
		action     string
		wantStatus string
	}{
		{model.ActionSetInReview, model.StatusInReview},
		{model.ActionApprove, model.StatusApproved},
		{model.ActionReject, model.StatusRejected},
		{model.ActionRequestRevision, model.StatusNeedRevision},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			svc, repos := setupWorkflowService()
			seedWorkflowFixture(repos, model.StatusSubmitted)

			result, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", &dto.ApplyActionRequest{Action: tc.action})
			if err != nil {
				t.Fatalf("ApplyAction(%s) should succeed: %v", tc.action, err)
			}
			if result.Submission.Status != tc.wantStatus {
				t.Errorf("expected status %s, got %s", tc.wantStatus, result.Submission.Status)
			}
			if repos.submission.subs["sub-1"].Status != tc.wantStatus {
				t.Errorf("persisted status mismatch: %s", repos.submission.subs["sub-1"].Status)
			}
		})
	}
}

func TestWorkflowService_ApplyAction_FromAnyStatus(t *testing.T) {
	// the current status never restricts an action; reviewing an already
	// approved submission moves it back to IN_REVIEW
	svc, repos := setupWorkflowService()
	seedWorkflowFixture(repos, model.StatusApproved)

	result, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", &dto.ApplyActionRequest{Action: model.ActionSetInReview})
	if err != nil {
		t.Fatalf("ApplyAction from APPROVED should succeed: %v", err)
	}
	if result.Submission.Status != model.StatusInReview {
		t.Errorf("expected IN_REVIEW, got %s", result.Submission.Status)
	}
}

func TestWorkflowService_ApplyAction_AppendsAuditLog(t *testing.T) {
	svc, repos := setupWorkflowService()
	seedWorkflowFixture(repos, model.StatusSubmitted)

	req := &dto.ApplyActionRequest{Action: model.ActionRequestRevision, Note: "lampirkan fotokopi KK"}
	result, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", req)
	if err != nil {
		t.Fatalf("ApplyAction should succeed: %v", err)
	}

	if len(repos.approvalLog.entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(repos.approvalLog.entries))
	}
	entry := repos.approvalLog.entries[0]
	if entry.SubmissionID != "sub-1" || entry.ActorUserID != "admin-1" {
		t.Errorf("audit entry references wrong submission/actor: %+v", entry)
	}
	if entry.Action != model.ActionRequestRevision {
		t.Errorf("unexpected audit action: %s", entry.Action)
	}
	if entry.Note != "lampirkan fotokopi KK" {
		t.Errorf("note was not recorded: %q", entry.Note)
	}
	if result.Log.Note != "lampirkan fotokopi KK" {
		t.Errorf("response log note mismatch: %q", result.Log.Note)
	}

	// a second action appends, never rewrites
	if _, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", &dto.ApplyActionRequest{Action: model.ActionApprove}); err != nil {
		t.Fatalf("second ApplyAction should succeed: %v", err)
	}
	if len(repos.approvalLog.entries) != 2 {
		t.Errorf("expected two audit entries, got %d", len(repos.approvalLog.entries))
	}
}

func TestWorkflowService_ApplyAction_NonAdmin(t *testing.T) {
	svc, repos := setupWorkflowService()
	seedWorkflowFixture(repos, model.StatusSubmitted)

	_, err := svc.ApplyAction(context.Background(), "sub-1", "user-1", &dto.ApplyActionRequest{Action: model.ActionApprove})
	if !errors.Is(err, ErrAdminOnly) {
		t.Errorf("expected ErrAdminOnly, got: %v", err)
	}
	if len(repos.approvalLog.entries) != 0 {
		t.Error("a rejected action must not touch the audit log")
	}
}

func TestWorkflowService_ApplyAction_UnknownAction(t *testing.T) {
	svc, repos := setupWorkflowService()
	seedWorkflowFixture(repos, model.StatusSubmitted)

	_, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", &dto.ApplyActionRequest{Action: "ESCALATE"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got: %v", err)
	}
}

func TestWorkflowService_ApplyAction_SubmissionNotFound(t *testing.T) {
	svc, repos := setupWorkflowService()
	seedUser(repos, "admin-1", "rw@example.com", "pw", model.RoleAdminRW, true)

	_, err := svc.ApplyAction(context.Background(), "nonexistent", "admin-1", &dto.ApplyActionRequest{Action: model.ActionApprove})
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("expected ErrSubmissionNotFound, got: %v", err)
	}
}

func TestWorkflowService_ApplyAction_AtomicOnFailure(t *testing.T) {
	svc, repos := setupWorkflowService()
	seedWorkflowFixture(repos, model.StatusSubmitted)
	repos.submission.failTx = true

	_, err := svc.ApplyAction(context.Background(), "sub-1", "admin-1", &dto.ApplyActionRequest{Action: model.ActionApprove})
	if err == nil {
		t.Fatal("ApplyAction should fail when the transaction fails")
	}

	// neither side of the transaction may land
	if repos.submission.subs["sub-1"].Status != model.StatusSubmitted {
		t.Errorf("status must stay SUBMITTED on rollback, got %s", repos.submission.subs["sub-1"].Status)
	}
	if len(repos.approvalLog.entries) != 0 {
		t.Errorf("no audit entry may land on rollback, got %d", len(repos.approvalLog.entries))
	}
}
