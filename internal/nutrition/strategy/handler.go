package strategy

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/macros"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

type ListResponse struct {
	Strategies []Info `json:"strategies"`
}

// Handler serves the stateless calculators: macro targets and strategy
// schedules. Nothing here touches storage.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.strategy.list")
	defer span.End()

	pkg.WriteJSON(w, ListResponse{Strategies: List()}, http.StatusOK)
}

func (handler *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.strategy.compute")
	defer span.End()

	s := Strategy(mux.Vars(r)["strategy"])
	caloriesStr := r.URL.Query().Get("calories")
	if caloriesStr == "" {
		http.Error(w, "error, calories empty", http.StatusBadRequest)
		return
	}
	calories, err := strconv.ParseFloat(caloriesStr, 64)
	if err != nil {
		http.Error(w, "error, calories NaN", http.StatusBadRequest)
		return
	}

	res, err := Compute(s, calories)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	log.Tracef("strategy %s computed for %.0f kcal", s, calories)
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (handler *Handler) HandleTargets(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.strategy.targets")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var profile macros.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("compute targets, unmarshal json params: %s", err)
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}

	targets, err := macros.ComputeTargets(profile)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, targets, http.StatusOK)
}
