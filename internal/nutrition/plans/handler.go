package plans

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

// PlanRequest is the body of plan create and update calls. Dates are
// YYYY-MM-DD.
type PlanRequest struct {
	StudentID      string   `json:"studentId"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	PlanType       PlanType `json:"planType"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Status         Status   `json:"status"`
	TargetCalories float64  `json:"targetCalories"`
	TargetProtein  float64  `json:"targetProtein"`
	TargetCarbs    float64  `json:"targetCarbs"`
	TargetFat      float64  `json:"targetFat"`
	SourcePlanID   int      `json:"sourcePlanId"`
}

func (req PlanRequest) toPlan() (Plan, error) {
	const op = "parse plan"
	p := Plan{
		StudentID:      req.StudentID,
		Name:           req.Name,
		Description:    req.Description,
		PlanType:       req.PlanType,
		Status:         req.Status,
		TargetCalories: req.TargetCalories,
		TargetProtein:  req.TargetProtein,
		TargetCarbs:    req.TargetCarbs,
		TargetFat:      req.TargetFat,
	}
	if req.StartDate != "" {
		start, err := nutrition.ParseDate(req.StartDate)
		if err != nil {
			return Plan{}, nutrition.Validation(op, "start date must be YYYY-MM-DD")
		}
		p.StartDate = start
	}
	if req.EndDate != "" {
		end, err := nutrition.ParseDate(req.EndDate)
		if err != nil {
			return Plan{}, nutrition.Validation(op, "end date must be YYYY-MM-DD")
		}
		p.EndDate = &end
	}
	return p, nil
}

type FinishRequest struct {
	Status Status `json:"status"`
}

type StudentPlanResponse struct {
	// Plan is nil when the student has no active plan.
	Plan *Plan `json:"plan"`
}

type ClearDayResponse struct {
	Deleted int `json:"deleted"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return identity, ok
}

func intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		http.Error(w, "error, "+name+" invalid", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func dayVar(w http.ResponseWriter, r *http.Request) (nutrition.Weekday, bool) {
	v, err := strconv.Atoi(mux.Vars(r)["day"])
	day := nutrition.Weekday(v)
	if err != nil || !day.IsValid() {
		http.Error(w, "error, day invalid", http.StatusBadRequest)
		return 0, false
	}
	return day, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("%s, unmarshal json: %s", op, err)
		http.Error(w, op+" failed", http.StatusBadRequest)
		return false
	}
	return true
}

func (handler *Handler) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.create")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req PlanRequest
	if !decodeBody(w, r, &req, "create plan") {
		return
	}
	plan, err := req.toPlan()
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	created, err := handler.service.CreatePlan(ctx, identity, plan, req.SourcePlanID)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	plan, err := handler.service.GetPlan(ctx, identity, id)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	var req PlanRequest
	if !decodeBody(w, r, &req, "update plan") {
		return
	}
	plan, err := req.toPlan()
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}
	plan.ID = id

	updated, err := handler.service.UpdatePlan(ctx, identity, plan)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.DeletePlan(ctx, identity, id); err != nil {
		nutrition.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleActivatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.activate")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	plan, err := handler.service.ActivatePlan(ctx, identity, id)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleFinishPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.finish")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	var req FinishRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req, "finish plan") {
		return
	}

	plan, err := handler.service.FinishPlan(ctx, identity, id, req.Status)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (handler *Handler) HandleListStudentPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	plans, err := handler.service.ListPlans(ctx, identity, mux.Vars(r)["student"])
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, plans, http.StatusOK)
}

// HandleStudentPlan returns the active plan of a student. No active plan is
// not an error, the response just carries a null plan.
func (handler *Handler) HandleStudentPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.student_plan")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}

	plan, err := handler.service.StudentPlan(ctx, identity, mux.Vars(r)["student"])
	if err != nil && !nutrition.IsNotFound(err) {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, StudentPlanResponse{Plan: plan}, http.StatusOK)
}

func (handler *Handler) HandleAddMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.add_meal")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	planID, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	var meal Meal
	if !decodeBody(w, r, &meal, "add meal") {
		return
	}
	meal.PlanID = planID

	added, err := handler.service.AddMeal(ctx, identity, meal)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update_meal")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	mealID, ok := intVar(w, r, "meal")
	if !ok {
		return
	}

	var meal Meal
	if !decodeBody(w, r, &meal, "update meal") {
		return
	}
	meal.ID = mealID

	updated, err := handler.service.UpdateMeal(ctx, identity, meal)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete_meal")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	mealID, ok := intVar(w, r, "meal")
	if !ok {
		return
	}

	if err := handler.service.DeleteMeal(ctx, identity, mealID); err != nil {
		nutrition.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.add_item")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	mealID, ok := intVar(w, r, "meal")
	if !ok {
		return
	}

	var item MealItem
	if !decodeBody(w, r, &item, "add item") {
		return
	}
	item.MealID = mealID

	added, err := handler.service.AddItem(ctx, identity, item)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update_item")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	itemID, ok := intVar(w, r, "item")
	if !ok {
		return
	}

	var item MealItem
	if !decodeBody(w, r, &item, "update item") {
		return
	}
	item.ID = itemID

	updated, err := handler.service.UpdateItem(ctx, identity, item)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete_item")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	itemID, ok := intVar(w, r, "item")
	if !ok {
		return
	}

	if err := handler.service.DeleteItem(ctx, identity, itemID); err != nil {
		nutrition.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleCopyDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.copy_day")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	planID, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	day, ok := dayVar(w, r)
	if !ok {
		return
	}

	snapshot, err := handler.service.CopyDay(ctx, identity, planID, day)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, snapshot, http.StatusOK)
}

func (handler *Handler) HandlePasteDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.paste_day")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	planID, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	day, ok := dayVar(w, r)
	if !ok {
		return
	}

	meals, err := handler.service.PasteDay(ctx, identity, planID, day)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, meals, http.StatusOK)
}

func (handler *Handler) HandleClearDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.clear_day")
	defer span.End()

	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	planID, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	day, ok := dayVar(w, r)
	if !ok {
		return
	}

	deleted, err := handler.service.ClearDay(ctx, identity, planID, day)
	if err != nil {
		nutrition.WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, ClearDayResponse{Deleted: deleted}, http.StatusOK)
}
