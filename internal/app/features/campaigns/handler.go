// internal/app/features/campaigns/handler.go
package campaigns

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/ecohub/internal/app/features/errors"
	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/store/queries/campaignqueries"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/auditlog"
	"github.com/dalemusser/ecohub/internal/app/system/lifecycle"
	"github.com/dalemusser/ecohub/internal/app/system/paging"
	"github.com/dalemusser/ecohub/internal/app/system/participation"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is what the handlers need from campaign storage: discovery plus
// everything the lifecycle and participation managers use.
type Store interface {
	lifecycle.Store
	participation.Store
	List(ctx context.Context, f campaignqueries.Filter, w paging.Window) ([]models.Campaign, int64, error)
}

var _ Store = (*campaignstore.Store)(nil)

// Handler owns every /campaigns endpoint.
//
// It is constructed once at startup in bootstrap, using the shared
// campaign store, audit logger and zap logger.
type Handler struct {
	Store         Store
	Lifecycle     *lifecycle.Manager
	Participation *participation.Manager
	ErrLog        *uierrors.ErrorLogger
	Audit         *auditlog.Logger
	Log           *zap.Logger

	// MaxLimit caps the page size a client may request.
	MaxLimit int
}

// NewHandler wires the lifecycle and participation managers over store.
// A nil audit logger disables auditing.
func NewHandler(store Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = paging.MaxLimit
	}
	return &Handler{
		Store:         store,
		Lifecycle:     lifecycle.NewManager(store, logger),
		Participation: participation.NewManager(store, logger),
		ErrLog:        errLog,
		Audit:         audit,
		Log:           logger,
		MaxLimit:      maxLimit,
	}
}

var errBadID = apperr.NewValidation("Invalid campaign id.")

// campaignID parses the {id} route parameter.
func campaignID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, errBadID
	}
	return id, nil
}

// listErr maps a raw store error from List. A client that went away is
// not a storage outage.
func listErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return apperr.Wrap(err)
	}
	return apperr.Unavailability(err)
}

type campaignResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Campaign models.Campaign `json:"campaign"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type joinResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Participants int    `json:"participants"`
}
