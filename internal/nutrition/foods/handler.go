package foods

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

type SearchResponse struct {
	Results []Match `json:"results"`
	Total   int     `json:"total"`
	// Ranked is false when no macro target was given.
	Ranked bool `json:"ranked"`
}

type SelectRequest struct {
	Targets  Targets `json:"targets"`
	Quantity float64 `json:"quantity"`
}

type SelectResponse struct {
	Food     Food             `json:"food"`
	Quantity float64          `json:"quantity"`
	Unit     string           `json:"unit"`
	IsMatch  bool             `json:"isMatch"`
	Score    float64          `json:"score"`
	Macros   nutrition.Macros `json:"macros"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// targetsFromQuery reads the optional protein, carbs, fat and calories params.
func targetsFromQuery(r *http.Request) (Targets, error) {
	targets := Targets{}
	query := r.URL.Query()
	for _, m := range nutrition.AllMacros {
		raw := query.Get(string(m))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nutrition.Validation("parse targets", string(m)+" target must be a non-negative number")
		}
		targets[m] = v
	}
	return targets, nil
}

func foodIDFromVars(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.search")
	defer span.End()

	targets, err := targetsFromQuery(r)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	params := SearchParams{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if identity, ok := auth.IdentityFrom(ctx); ok {
		params.UserID = identity.UserID
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		params.Limit, err = strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "error, limit NaN", http.StatusBadRequest)
			return
		}
	}

	found, err := handler.catalog.Search(ctx, params)
	if err != nil {
		log.Errorf("search foods [%s]: %s", params.Query, err)
		nutrition.WriteError(w, nutrition.Transient("search foods", err))
		return
	}

	ranked := Rank(found, targets)
	span.SetAttributes(
		attribute.Int("foods.count", len(ranked)),
		attribute.Int("targets.active", len(targets.Active())),
	)

	pkg.WriteJSON(w, SearchResponse{
		Results: ranked,
		Total:   len(ranked),
		Ranked:  !targets.IsEmpty(),
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.get")
	defer span.End()

	id, ok := foodIDFromVars(r)
	if !ok {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	food, err := handler.catalog.Get(ctx, id, identity.UserID)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, food, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.add")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var food Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		log.Tracef("add food, unmarshal json: %s", err)
		http.Error(w, "add food failed", http.StatusBadRequest)
		return
	}

	added, err := handler.catalog.AddCustom(ctx, food, identity.UserID)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	log.Debugf("custom food added by %s: %d [%s]", identity.UserID, added.ID, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.update")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	id, ok := foodIDFromVars(r)
	if !ok {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	var food Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		log.Tracef("update food, unmarshal json: %s", err)
		http.Error(w, "update food failed", http.StatusBadRequest)
		return
	}
	food.ID = id

	if err := handler.catalog.UpdateCustom(ctx, food, identity.UserID); err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, food, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.delete")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	id, ok := foodIDFromVars(r)
	if !ok {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.DeleteCustom(ctx, id, identity.UserID); err != nil {
		nutrition.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect resolves the quantity to use when a food is added to a meal.
func (handler *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.foods.select")
	defer span.End()

	id, ok := foodIDFromVars(r)
	if !ok {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("select food, unmarshal json: %s", err)
		http.Error(w, "select food failed", http.StatusBadRequest)
		return
	}

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	food, err := handler.catalog.Get(ctx, id, identity.UserID)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	match := MatchFood(*food, req.Targets)
	quantity, err := ResolveQuantity(match, req.Quantity)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, SelectResponse{
		Food:     *food,
		Quantity: quantity,
		Unit:     food.ServingUnit,
		IsMatch:  match.IsMatch,
		Score:    match.Score,
		Macros:   food.MacrosFor(quantity),
	}, http.StatusOK)
}
