package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/ecohub/internal/app/store/audit"
	"github.com/dalemusser/ecohub/internal/app/system/auditlog"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/dalemusser/ecohub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *memSink) Log(_ context.Context, e audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *memSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newObserved(cfg auditlog.Config) (*auditlog.Logger, *memSink, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := &memSink{}
	return auditlog.New(sink, zap.New(core), cfg), sink, logs
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx := context.Background()
	req := httptest.NewRequest("POST", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.CampaignCreated(ctx, req, models.Campaign{})
	logger.StatusChanged(ctx, req, primitive.NewObjectID(), "pending", "approved")
	logger.Joined(ctx, req, primitive.NewObjectID(), 1)
}

func TestLogger_Destinations(t *testing.T) {
	tests := []struct {
		setting  string
		wantDB   int
		wantLogs int
	}{
		{auditlog.All, 1, 1},
		{auditlog.DB, 1, 0},
		{auditlog.Log, 0, 1},
		{auditlog.Off, 0, 0},
		{"", 1, 1},
		{" ALL ", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			logger, sink, logs := newObserved(auditlog.Config{Lifecycle: tt.setting})
			req := httptest.NewRequest("POST", "/campaigns", nil)
			logger.CampaignCreated(context.Background(), req, models.Campaign{ID: primitive.NewObjectID(), Status: models.StatusPending})

			if sink.len() != tt.wantDB {
				t.Errorf("db events: got %d, want %d", sink.len(), tt.wantDB)
			}
			if logs.Len() != tt.wantLogs {
				t.Errorf("zap entries: got %d, want %d", logs.Len(), tt.wantLogs)
			}
		})
	}
}

func TestLogger_JoinsConfiguredSeparately(t *testing.T) {
	logger, sink, _ := newObserved(auditlog.Config{Lifecycle: auditlog.All, Joins: auditlog.Off})
	req := httptest.NewRequest("POST", "/", nil)
	id := primitive.NewObjectID()

	logger.Joined(context.Background(), req, id, 3)
	if sink.len() != 0 {
		t.Fatalf("joins are off, got %d events", sink.len())
	}
	logger.StatusChanged(context.Background(), req, id, models.StatusApproved, models.StatusActive)
	if sink.len() != 1 {
		t.Fatalf("lifecycle is on, got %d events", sink.len())
	}
}

func TestLogger_ActorFromSession(t *testing.T) {
	logger, sink, logs := newObserved(auditlog.DefaultConfig())
	admin := testutil.AdminUser()
	req := testutil.WithUser(httptest.NewRequest("POST", "/", nil), admin)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	id := primitive.NewObjectID()

	logger.StatusChanged(context.Background(), req, id, models.StatusPending, models.StatusApproved)

	if sink.len() != 1 {
		t.Fatalf("expected 1 event, got %d", sink.len())
	}
	ev := sink.events[0]
	if ev.ActorID == nil || ev.ActorID.Hex() != admin.ID {
		t.Errorf("actor_id: got %v, want %s", ev.ActorID, admin.ID)
	}
	if ev.ActorRole != models.RoleAdmin {
		t.Errorf("actor_role: got %q", ev.ActorRole)
	}
	if ev.IP != "203.0.113.7" {
		t.Errorf("ip: got %q", ev.IP)
	}
	if ev.Details["from"] != "pending" || ev.Details["to"] != "approved" {
		t.Errorf("details: %v", ev.Details)
	}
	if *ev.CampaignID != id {
		t.Errorf("campaign_id mismatch")
	}

	entry := logs.All()[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("successful events log at info, got %v", entry.Level)
	}
	if entry.ContextMap()["detail_to"] != "approved" {
		t.Errorf("zap fields: %v", entry.ContextMap())
	}
}

func TestLogger_FailuresLogAtWarn(t *testing.T) {
	logger, sink, logs := newObserved(auditlog.DefaultConfig())
	req := httptest.NewRequest("POST", "/", nil)

	logger.JoinRejected(context.Background(), req, primitive.NewObjectID(), "Campaign is full")

	if sink.events[0].Success {
		t.Error("expected success=false")
	}
	if sink.events[0].FailureReason != "Campaign is full" {
		t.Errorf("failure_reason: %q", sink.events[0].FailureReason)
	}
	if logs.All()[0].Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", logs.All()[0].Level)
	}
}

func TestLogger_StoreErrorIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &memSink{err: errors.New("db down")}
	logger := auditlog.New(sink, zap.New(core), auditlog.Config{Lifecycle: auditlog.DB})

	logger.CampaignUpdated(context.Background(), httptest.NewRequest("PUT", "/", nil), primitive.NewObjectID(), []string{"title"})

	if logs.FilterMessage("failed to store audit event").Len() != 1 {
		t.Errorf("expected store failure to be logged")
	}
}

func TestLogger_WritesToMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Lifecycle: auditlog.DB, Joins: auditlog.DB})
	c := models.Campaign{ID: primitive.NewObjectID(), Title: "Beach cleanup", Status: models.StatusDraft}
	req := testutil.WithUser(httptest.NewRequest("DELETE", "/", nil), testutil.ProposerUser())

	logger.CampaignDeleted(ctx, req, c)

	events, err := store.ForCampaign(ctx, c.ID, 10)
	if err != nil {
		t.Fatalf("ForCampaign failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != audit.EventCampaignDeleted || events[0].Details["title"] != "Beach cleanup" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}
