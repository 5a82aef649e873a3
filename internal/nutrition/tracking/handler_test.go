package tracking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition/plans"
	"github.com/2beens/dietplan/internal/nutrition/tracking"
)

func newTestRouter(t *testing.T) (*mux.Router, *MocklogsRepo, *MockplanSource) {
	t.Helper()
	tracker, repo, planSource, _ := newTestTracker(t)
	h := tracking.NewHandler(tracker)
	r := mux.NewRouter()
	r.HandleFunc("/tracking/{date}", h.HandleDayState).Methods("GET")
	r.HandleFunc("/tracking/{date}/meals/{meal}", h.HandleToggle).Methods("PUT")
	r.HandleFunc("/tracking/{date}/summary", h.HandleSummary).Methods("GET")
	r.HandleFunc("/students/{student}/tracking/{date}/summary", h.HandleSummary).Methods("GET")
	return r, repo, planSource
}

var studentIdentity = auth.Identity{UserID: "student-1", Role: auth.RoleStudent}

func asStudent(req *http.Request) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), studentIdentity))
}

func TestHandler_Toggle(t *testing.T) {
	router, repo, planSource := newTestRouter(t)

	planSource.EXPECT().ActivePlanDetails(gomock.Any(), "student-1").Return(testPlan(plans.PlanTypeCyclic), nil)
	repo.EXPECT().ListForDate(gomock.Any(), "student-1", day).Return(nil, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(41, nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/tracking/2026-10-16/meals/3", strings.NewReader(`{"completed":true}`))
	require.NoError(t, err)
	router.ServeHTTP(rec, asStudent(req))
	require.Equal(t, http.StatusOK, rec.Code)

	var state tracking.DayState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 41, state.Logs[3].ID)
	assert.True(t, state.Logs[3].Completed)
}

func TestHandler_Toggle_PersistFailure(t *testing.T) {
	router, repo, planSource := newTestRouter(t)

	planSource.EXPECT().ActivePlanDetails(gomock.Any(), "student-1").Return(testPlan(plans.PlanTypeCyclic), nil)
	gomock.InOrder(
		repo.EXPECT().ListForDate(gomock.Any(), "student-1", day).Return(nil, nil),
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(0, errStoreDown),
		repo.EXPECT().ListForDate(gomock.Any(), "student-1", day).Return(nil, nil),
	)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/tracking/2026-10-16/meals/3", strings.NewReader(`{"completed":true}`))
	require.NoError(t, err)
	router.ServeHTTP(rec, asStudent(req))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var state tracking.DayState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.Logs)
}

func TestHandler_Toggle_ForeignMeal(t *testing.T) {
	router, _, planSource := newTestRouter(t)
	planSource.EXPECT().ActivePlanDetails(gomock.Any(), "student-1").Return(testPlan(plans.PlanTypeCyclic), nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("PUT", "/tracking/2026-10-16/meals/99", strings.NewReader(`{"completed":true}`))
	require.NoError(t, err)
	router.ServeHTTP(rec, asStudent(req))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Toggle_BadRequests(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for name, tc := range map[string]struct {
		path, body string
		identity   bool
		want       int
	}{
		"no identity": {path: "/tracking/2026-10-16/meals/3", body: `{"completed":true}`, want: http.StatusUnauthorized},
		"bad date":    {path: "/tracking/16-10-2026/meals/3", body: `{"completed":true}`, identity: true, want: http.StatusBadRequest},
		"bad meal":    {path: "/tracking/2026-10-16/meals/x", body: `{"completed":true}`, identity: true, want: http.StatusBadRequest},
		"bad body":    {path: "/tracking/2026-10-16/meals/3", body: `{`, identity: true, want: http.StatusBadRequest},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req, err := http.NewRequest("PUT", tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			if tc.identity {
				req = asStudent(req)
			}
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandler_Summary(t *testing.T) {
	router, repo, planSource := newTestRouter(t)

	planSource.EXPECT().ActivePlanDetails(gomock.Any(), "student-1").Return(testPlan(plans.PlanTypeCyclic), nil)
	repo.EXPECT().ListForDate(gomock.Any(), "student-1", day).Return([]tracking.DailyLog{
		{ID: 10, StudentID: "student-1", MealID: 1, LoggedDate: day, Completed: true},
		{ID: 20, StudentID: "student-1", MealID: 2, LoggedDate: day, Completed: true},
	}, nil)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/tracking/2026-10-16/summary", nil)
	require.NoError(t, err)
	router.ServeHTTP(rec, asStudent(req))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary tracking.DailySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 100, summary.Progress.Protein)
	assert.Equal(t, 2, summary.MealsCompleted)
}

func TestHandler_Summary_ForeignStudent(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/students/student-2/tracking/2026-10-16/summary", nil)
	require.NoError(t, err)
	router.ServeHTTP(rec, asStudent(req))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
