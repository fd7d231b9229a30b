package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

// fakeApplicationRepo mirrors the conditional-update semantics of the real
// repository: a stage write only lands when the presented revision matches.
type fakeApplicationRepo struct {
	mu          sync.Mutex
	apps        map[uuid.UUID]*models.Application
	transitions []models.StageTransition
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
}

func (f *fakeApplicationRepo) Create(app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	cp := *app
	return &cp, nil
}

func (f *fakeApplicationRepo) ListByJob(jobID uuid.UUID, stage *models.Stage) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Application
	for _, app := range f.apps {
		if app.JobID != jobID {
			continue
		}
		if stage != nil && app.Stage != *stage {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (f *fakeApplicationRepo) MoveStage(id uuid.UUID, target models.Stage, expectedRevision int64, actorID *uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Revision != expectedRevision {
		return nil, common.NewError(common.CodeConflict, "application was modified concurrently", nil)
	}
	f.transitions = append(f.transitions, models.StageTransition{
		ID:            uuid.New(),
		ApplicationID: id,
		FromStage:     app.Stage,
		ToStage:       target,
		ActorID:       actorID,
		CreatedAt:     time.Now(),
	})
	app.Stage = target
	app.Revision++
	cp := *app
	return &cp, nil
}

func (f *fakeApplicationRepo) BulkMoveStage(ids []uuid.UUID, target models.Stage) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		app, ok := f.apps[id]
		if !ok {
			return 0, common.NewError(common.CodeNotFound, "one or more applications not found", nil)
		}
		if app.Stage.Terminal() {
			return 0, common.NewError(common.CodeConflict,
				fmt.Sprintf("application %s stage %q is final", id, app.Stage), nil)
		}
	}
	for _, id := range ids {
		app := f.apps[id]
		f.transitions = append(f.transitions, models.StageTransition{
			ID:            uuid.New(),
			ApplicationID: id,
			FromStage:     app.Stage,
			ToStage:       target,
			CreatedAt:     time.Now(),
		})
		app.Stage = target
		app.Revision++
	}
	return int64(len(ids)), nil
}

func (f *fakeApplicationRepo) ListTransitions(id uuid.UUID) ([]models.StageTransition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StageTransition
	for _, t := range f.transitions {
		if t.ApplicationID == id {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) RecentTransitions(orgID uuid.UUID, jobID *uuid.UUID, limit int) ([]models.StageTransition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.StageTransition, len(f.transitions))
	copy(out, f.transitions)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeApplicationRepo) CountByStage(orgID uuid.UUID, jobID *uuid.UUID) (map[models.Stage]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.Stage]int64)
	for _, app := range f.apps {
		if app.OrgID != orgID {
			continue
		}
		if jobID != nil && app.JobID != *jobID {
			continue
		}
		counts[app.Stage]++
	}
	return counts, nil
}

// fakeHireRepo shares state with the application fake so confirm and undo
// stay atomic over both tables, like the transactional repository.
type fakeHireRepo struct {
	mu      sync.Mutex
	appRepo *fakeApplicationRepo
	hires   map[uuid.UUID]*models.Hire
	now     func() time.Time
}

func newFakeHireRepo(appRepo *fakeApplicationRepo) *fakeHireRepo {
	return &fakeHireRepo{
		appRepo: appRepo,
		hires:   make(map[uuid.UUID]*models.Hire),
		now:     time.Now,
	}
}

func (f *fakeHireRepo) ConfirmHire(appID uuid.UUID, expectedRevision int64, managerID, orgID uuid.UUID) (*models.Hire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appRepo.mu.Lock()
	defer f.appRepo.mu.Unlock()

	app, ok := f.appRepo.apps[appID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Stage != models.StageOffer || app.Revision != expectedRevision {
		return nil, common.NewError(common.CodeConflict, "application was modified concurrently", nil)
	}
	for _, h := range f.hires {
		if h.ApplicationID == appID {
			return nil, common.NewError(common.CodeConflict, "application already has an active hire", nil)
		}
	}

	hire := &models.Hire{
		ID:            uuid.New(),
		ApplicationID: appID,
		OrgID:         orgID,
		ManagerID:     managerID,
		PreviousStage: app.Stage,
		Status:        models.HireStatusActive,
		CreatedAt:     f.now(),
	}
	f.hires[hire.ID] = hire
	app.Stage = models.StageHired
	app.Revision++
	cp := *hire
	return &cp, nil
}

func (f *fakeHireRepo) UndoHire(hire *models.Hire, actorID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appRepo.mu.Lock()
	defer f.appRepo.mu.Unlock()

	if _, ok := f.hires[hire.ID]; !ok {
		return common.NewError(common.CodeConflict, "hire was already undone", nil)
	}
	app, ok := f.appRepo.apps[hire.ApplicationID]
	if !ok || app.Stage != models.StageHired {
		return common.NewError(common.CodeConflict, "application is no longer hired", nil)
	}
	delete(f.hires, hire.ID)
	app.Stage = hire.PreviousStage
	app.Revision++
	return nil
}

func (f *fakeHireRepo) FindActiveByApplication(appID uuid.UUID) (*models.Hire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hires {
		if h.ApplicationID == appID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "no active hire for application", nil)
}

func (f *fakeHireRepo) ListByOrg(orgID uuid.UUID) ([]models.Hire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Hire
	for _, h := range f.hires {
		if h.OrgID == orgID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHireRepo) CountActiveByOrg(orgID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, h := range f.hires {
		if h.OrgID == orgID && h.Status == models.HireStatusActive {
			count++
		}
	}
	return count, nil
}

type pipelineFixture struct {
	svc      *pipelineService
	appRepo  *fakeApplicationRepo
	hireRepo *fakeHireRepo
	orgID    uuid.UUID
	jobID    uuid.UUID
	actorID  uuid.UUID
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	appRepo := newFakeApplicationRepo()
	hireRepo := newFakeHireRepo(appRepo)
	svc := &pipelineService{
		appRepo:    appRepo,
		hireRepo:   hireRepo,
		undoWindow: 24 * time.Hour,
		now:        time.Now,
	}
	return &pipelineFixture{
		svc:      svc,
		appRepo:  appRepo,
		hireRepo: hireRepo,
		orgID:    uuid.New(),
		jobID:    uuid.New(),
		actorID:  uuid.New(),
	}
}

func (fx *pipelineFixture) newApplication(t *testing.T, stage models.Stage) *models.Application {
	t.Helper()
	app := &models.Application{
		ID:          uuid.New(),
		JobID:       fx.jobID,
		CandidateID: uuid.New(),
		OrgID:       fx.orgID,
		Stage:       stage,
	}
	if err := fx.appRepo.Create(app); err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}

func TestMoveStage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		from     models.Stage
		target   string
		wantCode common.Code
	}{
		{name: "new to shortlisted", from: models.StageNew, target: "shortlisted"},
		{name: "shortlisted to interview", from: models.StageShortlisted, target: "interview"},
		{name: "interview to offer", from: models.StageInterview, target: "offer"},
		{name: "offer to rejected", from: models.StageOffer, target: "rejected"},
		{name: "backwards interview to shortlisted", from: models.StageInterview, target: "shortlisted"},
		{name: "unknown stage", from: models.StageNew, target: "archived", wantCode: common.CodeValidation},
		{name: "hired not a valid target", from: models.StageOffer, target: "hired", wantCode: common.CodeValidation},
		{name: "out of rejected", from: models.StageRejected, target: "interview", wantCode: common.CodeConflict},
		{name: "out of hired", from: models.StageHired, target: "offer", wantCode: common.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newPipelineFixture(t)
			app := fx.newApplication(t, tt.from)

			got, err := fx.svc.MoveStage(ctx, app.ID, tt.target, app.Revision, &fx.actorID)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("expected error with code %s, got nil", tt.wantCode)
				}
				if !common.Is(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Stage != models.Stage(tt.target) {
				t.Errorf("stage = %s, want %s", got.Stage, tt.target)
			}
			if got.Revision != app.Revision+1 {
				t.Errorf("revision = %d, want %d", got.Revision, app.Revision+1)
			}
		})
	}
}

func TestMoveStageSameStageIsNoOp(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageInterview)

	got, err := fx.svc.MoveStage(context.Background(), app.ID, "interview", app.Revision, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Revision != app.Revision {
		t.Errorf("no-op move bumped revision: %d -> %d", app.Revision, got.Revision)
	}

	transitions, _ := fx.appRepo.ListTransitions(app.ID)
	if len(transitions) != 0 {
		t.Errorf("no-op move recorded %d transitions, want 0", len(transitions))
	}
}

func TestMoveStageStaleRevision(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageNew)
	ctx := context.Background()

	if _, err := fx.svc.MoveStage(ctx, app.ID, "shortlisted", app.Revision, nil); err != nil {
		t.Fatalf("first move: %v", err)
	}

	// Second writer still holds the old revision
	_, err := fx.svc.MoveStage(ctx, app.ID, "interview", app.Revision, nil)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict for stale revision, got %v", err)
	}

	current, _ := fx.appRepo.FindByID(app.ID)
	if current.Stage != models.StageShortlisted {
		t.Errorf("stage = %s, want shortlisted to survive the lost write", current.Stage)
	}
}

func TestMoveStageNotFound(t *testing.T) {
	fx := newPipelineFixture(t)
	_, err := fx.svc.MoveStage(context.Background(), uuid.New(), "interview", 0, nil)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestMoveStageRecordsTransition(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageNew)

	if _, err := fx.svc.MoveStage(context.Background(), app.ID, "shortlisted", 0, &fx.actorID); err != nil {
		t.Fatalf("move: %v", err)
	}

	transitions, err := fx.svc.History(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(transitions) != 1 {
		t.Fatalf("got %d transitions, want 1", len(transitions))
	}
	tr := transitions[0]
	if tr.FromStage != models.StageNew || tr.ToStage != models.StageShortlisted {
		t.Errorf("transition %s -> %s, want new -> shortlisted", tr.FromStage, tr.ToStage)
	}
	if tr.ActorID == nil || *tr.ActorID != fx.actorID {
		t.Errorf("transition actor = %v, want %s", tr.ActorID, fx.actorID)
	}
}

func TestConfirmHire(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)
	ctx := context.Background()

	hire, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, app.Revision)
	if err != nil {
		t.Fatalf("confirm hire: %v", err)
	}

	if hire.PreviousStage != models.StageOffer {
		t.Errorf("previous stage = %s, want offer", hire.PreviousStage)
	}
	if hire.Status != models.HireStatusActive {
		t.Errorf("hire status = %s, want active", hire.Status)
	}

	current, _ := fx.appRepo.FindByID(app.ID)
	if current.Stage != models.StageHired {
		t.Errorf("application stage = %s, want hired", current.Stage)
	}
	if current.Revision != app.Revision+1 {
		t.Errorf("revision = %d, want %d", current.Revision, app.Revision+1)
	}
}

func TestConfirmHireRequiresOfferStage(t *testing.T) {
	for _, stage := range []models.Stage{models.StageNew, models.StageShortlisted, models.StageInterview, models.StageRejected} {
		t.Run(string(stage), func(t *testing.T) {
			fx := newPipelineFixture(t)
			app := fx.newApplication(t, stage)

			_, err := fx.svc.ConfirmHire(context.Background(), app.ID, fx.actorID, fx.orgID, app.Revision)
			if !common.Is(err, common.CodeConflict) {
				t.Fatalf("expected conflict for stage %s, got %v", stage, err)
			}
		})
	}
}

func TestConfirmHireTwiceConflicts(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)
	ctx := context.Background()

	if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, app.Revision); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	_, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, app.Revision+1)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict on double confirm, got %v", err)
	}

	count, _ := fx.hireRepo.CountActiveByOrg(fx.orgID)
	if count != 1 {
		t.Errorf("hire count = %d, want 1", count)
	}
}

func TestConfirmHireStaleRevision(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)

	_, err := fx.svc.ConfirmHire(context.Background(), app.ID, fx.actorID, fx.orgID, app.Revision+5)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict for stale revision, got %v", err)
	}
}

func TestConfirmHireRequiresActor(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)

	_, err := fx.svc.ConfirmHire(context.Background(), app.ID, uuid.Nil, fx.orgID, app.Revision)
	if !common.Is(err, common.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated for nil actor, got %v", err)
	}
}

func TestUndoHireRestoresPreviousStage(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)
	ctx := context.Background()

	if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, app.Revision); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	got, err := fx.svc.UndoHire(ctx, app.ID, &fx.actorID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got.Stage != models.StageOffer {
		t.Errorf("stage after undo = %s, want offer", got.Stage)
	}

	count, _ := fx.hireRepo.CountActiveByOrg(fx.orgID)
	if count != 0 {
		t.Errorf("hire count after undo = %d, want 0", count)
	}
}

func TestUndoHireWindow(t *testing.T) {
	confirmedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		wantGone bool
	}{
		{name: "well inside window", now: confirmedAt.Add(2 * time.Hour)},
		{name: "exactly at window boundary", now: confirmedAt.Add(24 * time.Hour)},
		{name: "one second past window", now: confirmedAt.Add(24*time.Hour + time.Second), wantGone: true},
		{name: "days past window", now: confirmedAt.Add(72 * time.Hour), wantGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newPipelineFixture(t)
			app := fx.newApplication(t, models.StageOffer)
			ctx := context.Background()

			fx.hireRepo.now = func() time.Time { return confirmedAt }
			if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, app.Revision); err != nil {
				t.Fatalf("confirm: %v", err)
			}

			fx.svc.now = func() time.Time { return tt.now }
			_, err := fx.svc.UndoHire(ctx, app.ID, &fx.actorID)

			if tt.wantGone {
				if !common.Is(err, common.CodeGone) {
					t.Fatalf("expected gone, got %v", err)
				}
				// Expired undo must leave the hire intact
				count, _ := fx.hireRepo.CountActiveByOrg(fx.orgID)
				if count != 1 {
					t.Errorf("hire count after expired undo = %d, want 1", count)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUndoHireWithoutHire(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)

	_, err := fx.svc.UndoHire(context.Background(), app.ID, nil)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestConfirmUndoConfirmRoundTrip(t *testing.T) {
	fx := newPipelineFixture(t)
	app := fx.newApplication(t, models.StageOffer)
	ctx := context.Background()

	if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, 0); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if _, err := fx.svc.UndoHire(ctx, app.ID, &fx.actorID); err != nil {
		t.Fatalf("undo: %v", err)
	}

	// Back at offer with revision 2, a second confirm must succeed
	current, _ := fx.appRepo.FindByID(app.ID)
	if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, current.Revision); err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	count, _ := fx.hireRepo.CountActiveByOrg(fx.orgID)
	if count != 1 {
		t.Errorf("hire count = %d, want 1", count)
	}
}

func TestHireCountTracksLiveHires(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	var apps []*models.Application
	for i := 0; i < 3; i++ {
		apps = append(apps, fx.newApplication(t, models.StageOffer))
	}

	for _, app := range apps {
		if _, err := fx.svc.ConfirmHire(ctx, app.ID, fx.actorID, fx.orgID, 0); err != nil {
			t.Fatalf("confirm %s: %v", app.ID, err)
		}
	}

	if _, err := fx.svc.UndoHire(ctx, apps[1].ID, &fx.actorID); err != nil {
		t.Fatalf("undo: %v", err)
	}

	count, err := fx.svc.CountHires(ctx, fx.orgID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("hire count = %d, want 2 after 3 confirms and 1 undo", count)
	}
}

func TestBulkMoveStage(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	a := fx.newApplication(t, models.StageNew)
	b := fx.newApplication(t, models.StageShortlisted)

	updated, err := fx.svc.BulkMoveStage(ctx, []uuid.UUID{a.ID, b.ID}, "interview")
	if err != nil {
		t.Fatalf("bulk move: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		app, _ := fx.appRepo.FindByID(id)
		if app.Stage != models.StageInterview {
			t.Errorf("application %s stage = %s, want interview", id, app.Stage)
		}
		if app.Revision != 1 {
			t.Errorf("application %s revision = %d, want 1", id, app.Revision)
		}
	}
}

func TestBulkMoveStageAllOrNothing(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	a := fx.newApplication(t, models.StageNew)
	rejected := fx.newApplication(t, models.StageRejected)
	b := fx.newApplication(t, models.StageShortlisted)

	_, err := fx.svc.BulkMoveStage(ctx, []uuid.UUID{a.ID, rejected.ID, b.ID}, "interview")
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict for terminal member, got %v", err)
	}

	// None of the batch may have moved
	for _, tc := range []struct {
		id   uuid.UUID
		want models.Stage
	}{
		{a.ID, models.StageNew},
		{rejected.ID, models.StageRejected},
		{b.ID, models.StageShortlisted},
	} {
		app, _ := fx.appRepo.FindByID(tc.id)
		if app.Stage != tc.want {
			t.Errorf("application %s stage = %s, want %s", tc.id, app.Stage, tc.want)
		}
	}
}

func TestBulkMoveStageRejectsHiredTarget(t *testing.T) {
	fx := newPipelineFixture(t)
	a := fx.newApplication(t, models.StageOffer)

	_, err := fx.svc.BulkMoveStage(context.Background(), []uuid.UUID{a.ID}, "hired")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBulkMoveStageMissingMember(t *testing.T) {
	fx := newPipelineFixture(t)
	a := fx.newApplication(t, models.StageNew)

	_, err := fx.svc.BulkMoveStage(context.Background(), []uuid.UUID{a.ID, uuid.New()}, "interview")
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	app, _ := fx.appRepo.FindByID(a.ID)
	if app.Stage != models.StageNew {
		t.Errorf("application moved despite failed batch: %s", app.Stage)
	}
}

func TestListByJobStageFilter(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	fx.newApplication(t, models.StageNew)
	fx.newApplication(t, models.StageInterview)
	fx.newApplication(t, models.StageInterview)

	apps, err := fx.svc.ListByJob(ctx, fx.jobID, "interview")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 {
		t.Errorf("got %d applications, want 2", len(apps))
	}

	if _, err := fx.svc.ListByJob(ctx, fx.jobID, "bogus"); !common.Is(err, common.CodeValidation) {
		t.Errorf("expected validation error for bogus stage filter, got %v", err)
	}
}
