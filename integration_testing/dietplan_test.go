//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition/foods"
	"github.com/2beens/dietplan/internal/nutrition/plans"
	"github.com/2beens/dietplan/internal/nutrition/tracking"
)

const (
	coachToken   = "coach-token"
	studentToken = "student-token"
	studentID    = "student-1"
	trackedDate  = "2026-10-16" // a friday
)

type DietPlanTestSuite struct {
	suite.Suite

	env        *Suite
	httpClient *http.Client
}

func TestDietPlanTestSuite(t *testing.T) {
	suite.Run(t, new(DietPlanTestSuite))
}

func (s *DietPlanTestSuite) SetupSuite() {
	ctx := context.Background()
	s.env = newSuite(ctx)
	s.httpClient = &http.Client{Timeout: 10 * time.Second}

	s.Require().NoError(s.env.NewSession(ctx, coachToken, "coach-1", auth.RolePersonal))
	s.Require().NoError(s.env.NewSession(ctx, studentToken, studentID, auth.RoleStudent))

	// wait for the listener
	s.Require().Eventually(func() bool {
		resp, err := s.httpClient.Get(serverEndpoint + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)
}

func (s *DietPlanTestSuite) TearDownSuite() {
	s.env.cleanup()
}

func (s *DietPlanTestSuite) do(method, path, token string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func (s *DietPlanTestSuite) countMeals(planID int) int {
	var count int
	s.Require().NoError(s.env.DB.QueryRow(`SELECT count(*) FROM diet_meal WHERE diet_plan_id = $1`, planID).Scan(&count))
	return count
}

func (s *DietPlanTestSuite) TestPlanLifecycle() {
	status, body := s.do(http.MethodPost, "/foods", coachToken, foods.Food{
		Name:        "Aveia em flocos",
		Category:    "cereais",
		ServingSize: 100,
		ServingUnit: "g",
		Calories:    389,
		Protein:     16.9,
		Carbs:       66.3,
		Fat:         6.9,
	})
	s.Require().Equal(http.StatusCreated, status, string(body))
	var oats foods.Food
	s.Require().NoError(json.Unmarshal(body, &oats))

	status, body = s.do(http.MethodGet, "/foods/search?q=aveia&protein=20", coachToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var search foods.SearchResponse
	s.Require().NoError(json.Unmarshal(body, &search))
	s.Require().NotEmpty(search.Results)
	s.True(search.Ranked)

	planReq := plans.PlanRequest{
		StudentID:      studentID,
		Name:           "Cutting outubro",
		PlanType:       plans.PlanTypeCyclic,
		StartDate:      "2026-10-01",
		TargetCalories: 2000,
		TargetProtein:  150,
		TargetCarbs:    200,
		TargetFat:      60,
	}
	status, body = s.do(http.MethodPost, "/plans", coachToken, planReq)
	s.Require().Equal(http.StatusCreated, status, string(body))
	var plan plans.Plan
	s.Require().NoError(json.Unmarshal(body, &plan))
	s.Equal(plans.StatusActive, plan.Status)

	// single active plan per student
	status, body = s.do(http.MethodPost, "/plans", coachToken, planReq)
	s.Equal(http.StatusConflict, status)
	s.Contains(string(body), "finish the current plan first")

	mealTime := "07:30"
	status, body = s.do(http.MethodPost, fmt.Sprintf("/plans/%d/meals", plan.ID), coachToken, plans.Meal{
		DayOfWeek: 5,
		MealType:  "breakfast",
		Name:      "Café da manhã",
		MealTime:  &mealTime,
	})
	s.Require().Equal(http.StatusCreated, status, string(body))
	var meal plans.Meal
	s.Require().NoError(json.Unmarshal(body, &meal))

	status, body = s.do(http.MethodPost, fmt.Sprintf("/meals/%d/items", meal.ID), coachToken, plans.MealItem{
		FoodID:   oats.ID,
		Quantity: 50,
		Unit:     "g",
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	// students cannot edit
	status, _ = s.do(http.MethodPost, fmt.Sprintf("/plans/%d/meals", plan.ID), studentToken, plans.Meal{
		DayOfWeek: 1, MealType: "lunch", Name: "Almoço",
	})
	s.Equal(http.StatusNotFound, status)

	// the student's fetches schedule reminders once per debounce window
	for i := 0; i < 2; i++ {
		status, body = s.do(http.MethodGet, "/students/"+studentID+"/plan", studentToken, nil)
		s.Require().Equal(http.StatusOK, status, string(body))
	}
	var studentPlan plans.StudentPlanResponse
	s.Require().NoError(json.Unmarshal(body, &studentPlan))
	s.Require().NotNil(studentPlan.Plan)
	s.Require().Len(studentPlan.Plan.Meals, 1)
	s.Require().Len(studentPlan.Plan.Meals[0].Items, 1)

	status, _ = s.do(http.MethodGet, "/students/"+studentID+"/plan", coachToken, nil)
	s.Equal(http.StatusOK, status)

	schedules := s.env.Notifications.Schedules()
	s.Require().Len(schedules, 1)
	s.Equal(plan.ID, schedules[0].PlanID)
	s.Require().Len(schedules[0].Reminders, 1)
	s.Equal("07:30", schedules[0].Reminders[0].MealTime)
	s.Equal([]string{"Aveia em flocos"}, schedules[0].Reminders[0].FoodNames)

	// completion tracking
	status, body = s.do(http.MethodPut, fmt.Sprintf("/tracking/%s/meals/%d", trackedDate, meal.ID), studentToken, tracking.ToggleRequest{Completed: true})
	s.Require().Equal(http.StatusOK, status, string(body))
	var state tracking.DayState
	s.Require().NoError(json.Unmarshal(body, &state))
	s.True(state.Logs[meal.ID].Completed)
	s.Positive(state.Logs[meal.ID].ID)

	status, _ = s.do(http.MethodPut, fmt.Sprintf("/tracking/%s/meals/%d", trackedDate, meal.ID+1000), studentToken, tracking.ToggleRequest{Completed: true})
	s.Equal(http.StatusNotFound, status)

	status, body = s.do(http.MethodGet, "/tracking/"+trackedDate+"/summary", studentToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var summary tracking.DailySummary
	s.Require().NoError(json.Unmarshal(body, &summary))
	s.Equal(plan.ID, summary.PlanID)
	s.Equal(1, summary.MealsScheduled)
	s.Equal(1, summary.MealsCompleted)
	s.InDelta(194.5, summary.Consumed.Calories, 1)
	s.Equal(10, summary.Progress.Calories)

	status, _ = s.do(http.MethodGet, "/students/"+studentID+"/tracking/"+trackedDate+"/summary", coachToken, nil)
	s.Equal(http.StatusOK, status)

	// copy friday onto saturday, then clear it again
	status, body = s.do(http.MethodPost, fmt.Sprintf("/plans/%d/days/5/copy", plan.ID), coachToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	status, body = s.do(http.MethodPost, fmt.Sprintf("/plans/%d/days/6/paste", plan.ID), coachToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Equal(2, s.countMeals(plan.ID))

	status, body = s.do(http.MethodDelete, fmt.Sprintf("/plans/%d/days/6", plan.ID), coachToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.JSONEq(`{"deleted":1}`, string(body))
	s.Equal(1, s.countMeals(plan.ID))

	status, body = s.do(http.MethodPost, fmt.Sprintf("/plans/%d/finish", plan.ID), coachToken, nil)
	s.Require().Equal(http.StatusOK, status, string(body))

	status, body = s.do(http.MethodGet, "/students/"+studentID+"/plan", studentToken, nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(`{"plan":null}`, string(body))
}

func (s *DietPlanTestSuite) TestUnauthorized() {
	status, body := s.do(http.MethodGet, "/plans/1", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("no can do\n", string(body))

	status, _ = s.do(http.MethodGet, "/plans/1", "unknown-token", nil)
	s.Equal(http.StatusUnauthorized, status)

	status, body = s.do(http.MethodGet, "/version", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("test-version-info", string(body))
}
