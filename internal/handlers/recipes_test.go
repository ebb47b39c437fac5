package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartchef/internal/models"
	"smartchef/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

func TestListRecipes(t *testing.T) {
	recipes := &mockRecipes{listResp: []models.RecipeInput{
		{ID: "r1", Name: "番茄炒蛋"},
		{ID: "r2", Name: "红烧肉"},
	}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Recipes:       recipes,
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count   int                  `json:"count"`
		Recipes []models.RecipeInput `json:"recipes"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 || len(resp.Recipes) != 2 || resp.Recipes[0].Name != "番茄炒蛋" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestListRecipes_ServiceError(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Recipes:       &mockRecipes{listErr: errors.New("boom")},
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
