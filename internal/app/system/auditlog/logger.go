// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/ecohub/internal/app/store/audit"
	"github.com/dalemusser/ecohub/internal/app/system/authz"
	"github.com/dalemusser/ecohub/internal/app/system/ratelimit"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destination settings.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Lifecycle covers create, edit, delete and status changes.
	Lifecycle string
	// Joins covers participation. It is the high-volume stream, so it is
	// configured separately.
	Joins string
}

// DefaultConfig logs everything everywhere.
func DefaultConfig() Config { return Config{Lifecycle: All, Joins: All} }

// Sink persists events. *audit.Store satisfies it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger writes campaign audit events to MongoDB and to zap.
type Logger struct {
	store  Sink
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Sink, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) setting(eventType string) string {
	s := l.config.Lifecycle
	if eventType == audit.EventCampaignJoined {
		s = l.config.Joins
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All
	}
	return s
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.CampaignID != nil {
		fields = append(fields, zap.String("campaign_id", event.CampaignID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.ActorRole != "" {
		fields = append(fields, zap.String("actor_role", event.ActorRole))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an event according to config. A nil Logger is a no-op so
// handlers can run without auditing in tests.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	setting := l.setting(event.EventType)
	if setting == Off {
		return
	}
	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// base fills the who/where fields from the request.
func base(r *http.Request, eventType string, campaignID primitive.ObjectID) audit.Event {
	ev := audit.Event{
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		RequestID: middleware.GetReqID(r.Context()),
		Success:   true,
	}
	if !campaignID.IsZero() {
		ev.CampaignID = &campaignID
	}
	if role, _, uid, ok := authz.UserCtx(r); ok {
		ev.ActorID = &uid
		ev.ActorRole = role
	}
	return ev
}

// CampaignCreated logs a new campaign and the status it started in.
func (l *Logger) CampaignCreated(ctx context.Context, r *http.Request, c models.Campaign) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignCreated, c.ID)
	ev.Details = map[string]string{
		"status":   c.Status,
		"category": c.Category,
	}
	l.Log(ctx, ev)
}

// CampaignUpdated logs a content edit with the names of the fields it touched.
func (l *Logger) CampaignUpdated(ctx context.Context, r *http.Request, id primitive.ObjectID, fields []string) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignUpdated, id)
	if len(fields) > 0 {
		ev.Details = map[string]string{"fields": strings.Join(fields, ",")}
	}
	l.Log(ctx, ev)
}

// CampaignDeleted logs a deletion along with the title and status it had.
func (l *Logger) CampaignDeleted(ctx context.Context, r *http.Request, c models.Campaign) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignDeleted, c.ID)
	ev.Details = map[string]string{
		"title":  c.Title,
		"status": c.Status,
	}
	l.Log(ctx, ev)
}

// StatusChanged logs an accepted lifecycle transition.
func (l *Logger) StatusChanged(ctx context.Context, r *http.Request, id primitive.ObjectID, from, to string) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignStatusChanged, id)
	ev.Details = map[string]string{"from": from, "to": to}
	l.Log(ctx, ev)
}

// StatusChangeRejected logs a transition that was refused.
func (l *Logger) StatusChangeRejected(ctx context.Context, r *http.Request, id primitive.ObjectID, from, to, reason string) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignStatusChanged, id)
	ev.Success = false
	ev.FailureReason = reason
	ev.Details = map[string]string{"from": from, "to": to}
	l.Log(ctx, ev)
}

// Joined logs a successful join with the resulting participant count.
func (l *Logger) Joined(ctx context.Context, r *http.Request, id primitive.ObjectID, participants int) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignJoined, id)
	ev.Details = map[string]string{"participants": strconv.Itoa(participants)}
	l.Log(ctx, ev)
}

// JoinRejected logs a join that was refused (not active, full, contended).
func (l *Logger) JoinRejected(ctx context.Context, r *http.Request, id primitive.ObjectID, reason string) {
	if l == nil {
		return
	}
	ev := base(r, audit.EventCampaignJoined, id)
	ev.Success = false
	ev.FailureReason = reason
	l.Log(ctx, ev)
}
