package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/models"
)

func getAdmin(h *AdminHandler, path string) *httptest.ResponseRecorder {
	return serve(http.MethodGet, path, nil, nil, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.GET("/activity", append(pre, h.Activity)...)
		r.GET("/logs", append(pre, h.Logs)...)
	})
}

func TestActivity(t *testing.T) {
	logs := &fakeActionLogRepo{stored: []models.ActionLog{
		{ID: 1, Action: models.ActionLoginSuccess, Actor: "alice@example.com"},
		{ID: 2, Action: models.ActionLoginFailure, Actor: "bob@example.com"},
	}}
	h := NewAdminHandler(logs)

	w := getAdmin(h, "/activity")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if logs.recentLimit != 10 {
		t.Errorf("Recent() limit = %d, want 10", logs.recentLimit)
	}
}

func TestLogs_PassesFilters(t *testing.T) {
	logs := &fakeActionLogRepo{}
	h := NewAdminHandler(logs)

	w := getAdmin(h, "/logs?type=login_failure&search=alice&limit=25")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if logs.searchCall.action != "login_failure" {
		t.Errorf("action = %q, want login_failure", logs.searchCall.action)
	}
	if logs.searchCall.search != "alice" {
		t.Errorf("search = %q, want alice", logs.searchCall.search)
	}
	if logs.searchCall.limit != 25 {
		t.Errorf("limit = %d, want 25", logs.searchCall.limit)
	}
}

func TestLogs_CapsLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no limit", "", 100},
		{"over cap", "?limit=5000", 100},
		{"zero", "?limit=0", 100},
		{"negative", "?limit=-5", 100},
		{"not a number", "?limit=ten", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &fakeActionLogRepo{}
			h := NewAdminHandler(logs)

			w := getAdmin(h, "/logs"+tt.query)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if logs.searchCall.limit != tt.want {
				t.Errorf("limit = %d, want %d", logs.searchCall.limit, tt.want)
			}
		})
	}
}
