package tracking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

type ToggleRequest struct {
	Completed bool `json:"completed"`
}

type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{
		tracker: tracker,
	}
}

func dateVar(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := nutrition.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "error, date must be YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}

func (handler *Handler) HandleDayState(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.day_state")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	date, ok := dateVar(w, r)
	if !ok {
		return
	}

	state, err := handler.tracker.State(ctx, identity.UserID, date)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, state, http.StatusOK)
}

// HandleToggle answers 503 with the reloaded day when the toggle could not
// be stored, so the client can redraw from it.
func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.toggle")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	date, ok := dateVar(w, r)
	if !ok {
		return
	}
	mealID, err := strconv.Atoi(mux.Vars(r)["meal"])
	if err != nil || mealID <= 0 {
		http.Error(w, "error, meal invalid", http.StatusBadRequest)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("toggle meal, unmarshal json: %s", err)
		http.Error(w, "toggle meal failed", http.StatusBadRequest)
		return
	}

	state, err := handler.tracker.Toggle(ctx, identity.UserID, date, Toggle{MealID: mealID, Completed: req.Completed})
	switch {
	case err == nil:
		pkg.WriteJSON(w, state, http.StatusOK)
	case errors.Is(err, ErrPersistFailed) && state.Logs != nil:
		pkg.WriteJSON(w, state, http.StatusServiceUnavailable)
	default:
		nutrition.WriteError(w, err)
	}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.summary")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	date, ok := dateVar(w, r)
	if !ok {
		return
	}

	studentID := identity.UserID
	if student, found := mux.Vars(r)["student"]; found {
		studentID = student
	}

	summary, err := handler.tracker.SummaryFor(ctx, identity, studentID, date)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}
