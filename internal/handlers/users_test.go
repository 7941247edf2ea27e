package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	findByIDFunc    func(ctx context.Context, id int64) (*models.User, error)
	listFunc        func(ctx context.Context) ([]models.User, error)
	updateFunc      func(ctx context.Context, user *models.User) error
	deleteFunc      func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc == nil {
		return nil, errNotImplemented
	}
	return m.findByEmailFunc(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDFunc == nil {
		return nil, errNotImplemented
	}
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	if m.listFunc == nil {
		return nil, errNotImplemented
	}
	return m.listFunc(ctx)
}

func (m *mockUserRepo) Create(context.Context, *models.User) error { return errNotImplemented }

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateFunc == nil {
		return errNotImplemented
	}
	return m.updateFunc(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc == nil {
		return errNotImplemented
	}
	return m.deleteFunc(ctx, id)
}

func (m *mockUserRepo) SetOTP(context.Context, int64, string, time.Time) error {
	return errNotImplemented
}

func (m *mockUserRepo) ClearOTP(context.Context, int64) error { return errNotImplemented }

func (m *mockUserRepo) ResetPassword(context.Context, int64, string) error {
	return errNotImplemented
}

func notFoundErr(id int64) error {
	return fmt.Errorf("failed to find user by id %d: %w", id, gorm.ErrRecordNotFound)
}

func TestListUsers(t *testing.T) {
	repo := &mockUserRepo{listFunc: func(context.Context) ([]models.User, error) {
		return []models.User{
			{ID: 1, Email: "alice@example.com", Role: rbac.RoleSuperAdmin},
			{ID: 2, Email: "bob@example.com", Role: rbac.RoleHR},
		}, nil
	}}
	h := NewUserHandler(&mockAuthService{}, repo, &fakeActionLogRepo{}, newTestMetrics())

	w := serve(http.MethodGet, "/users", nil, nil, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.GET("/users", append(pre, h.List)...)
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func putUser(h *UserHandler, id string, body any, identity *models.User) *httptest.ResponseRecorder {
	return serve(http.MethodPut, "/users/"+id, body, identity, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.PUT("/users/:id", append(pre, h.Update)...)
	})
}

func TestUpdateUser_InvalidID(t *testing.T) {
	h := NewUserHandler(&mockAuthService{}, &mockUserRepo{}, &fakeActionLogRepo{}, newTestMetrics())

	w := putUser(h, "abc", UpdateUserRequest{Name: "New"}, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	h := NewUserHandler(&mockAuthService{}, &mockUserRepo{}, &fakeActionLogRepo{}, newTestMetrics())

	w := putUser(h, "1", UpdateUserRequest{Role: "root"}, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := &mockUserRepo{findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
		return nil, notFoundErr(id)
	}}
	h := NewUserHandler(&mockAuthService{}, repo, &fakeActionLogRepo{}, newTestMetrics())

	w := putUser(h, "99", UpdateUserRequest{Name: "New"}, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	var saved *models.User
	repo := &mockUserRepo{
		findByIDFunc: func(context.Context, int64) (*models.User, error) {
			return &models.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: rbac.RoleHR, PasswordHash: "old-hash"}, nil
		},
		updateFunc: func(_ context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	logs := &fakeActionLogRepo{}
	h := NewUserHandler(&mockAuthService{}, repo, logs, newTestMetrics())

	actor := &models.User{ID: 1, Email: "root@example.com", Role: rbac.RoleSuperAdmin}
	w := putUser(h, "2", UpdateUserRequest{Name: "Robert", Password: "new-password"}, actor)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if saved == nil {
		t.Fatal("Update() was not called")
	}
	if saved.Name != "Robert" {
		t.Errorf("name = %q, want Robert", saved.Name)
	}
	if saved.Email != "bob@example.com" || saved.Role != rbac.RoleHR {
		t.Error("fields absent from the payload must keep their value")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("new-password")); err != nil {
		t.Error("password hash should match the new password")
	}
	if len(logs.entries) != 1 || logs.entries[0].Action != models.ActionUserUpdated {
		t.Errorf("audit entries = %+v, want one %s", logs.entries, models.ActionUserUpdated)
	}
}

func deleteUser(h *UserHandler, id string, identity *models.User) *httptest.ResponseRecorder {
	return serve(http.MethodDelete, "/users/"+id, nil, identity, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.DELETE("/users/:id", append(pre, h.Delete)...)
	})
}

func TestDeleteUser_Success(t *testing.T) {
	var deleted int64
	repo := &mockUserRepo{
		findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "bob@example.com"}, nil
		},
		deleteFunc: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	logs := &fakeActionLogRepo{}
	h := NewUserHandler(&mockAuthService{}, repo, logs, newTestMetrics())

	w := deleteUser(h, "2", &models.User{Email: "root@example.com"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if deleted != 2 {
		t.Errorf("deleted id = %d, want 2", deleted)
	}
	if len(logs.entries) != 1 || logs.entries[0].Action != models.ActionUserDeleted {
		t.Errorf("audit entries = %+v, want one %s", logs.entries, models.ActionUserDeleted)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo := &mockUserRepo{findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
		return nil, notFoundErr(id)
	}}
	h := NewUserHandler(&mockAuthService{}, repo, &fakeActionLogRepo{}, newTestMetrics())

	w := deleteUser(h, "99", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func getTheme(h *UserHandler, identity *models.User) *httptest.ResponseRecorder {
	return serve(http.MethodGet, "/users/me/theme", nil, identity, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.GET("/users/me/theme", append(pre, h.GetTheme)...)
	})
}

func TestGetTheme_DefaultsToLight(t *testing.T) {
	h := NewUserHandler(&mockAuthService{}, &mockUserRepo{}, &fakeActionLogRepo{}, newTestMetrics())

	w := getTheme(h, &models.User{ID: 1})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeBody(t, w)["theme"]; got != "light" {
		t.Errorf("theme = %v, want light", got)
	}
}

func putTheme(h *UserHandler, body any, identity *models.User) *httptest.ResponseRecorder {
	return serve(http.MethodPut, "/users/me/theme", body, identity, func(r *gin.Engine, pre ...gin.HandlerFunc) {
		r.PUT("/users/me/theme", append(pre, h.UpdateTheme)...)
	})
}

func TestUpdateTheme_InvalidValue(t *testing.T) {
	h := NewUserHandler(&mockAuthService{}, &mockUserRepo{}, &fakeActionLogRepo{}, newTestMetrics())

	for _, theme := range []string{"", "solarized", "LIGHT"} {
		w := putTheme(h, map[string]string{"theme": theme}, &models.User{ID: 1})
		if w.Code != http.StatusBadRequest {
			t.Errorf("theme %q: status = %d, want %d", theme, w.Code, http.StatusBadRequest)
		}
	}
}

func TestUpdateTheme_Success(t *testing.T) {
	var saved *models.User
	repo := &mockUserRepo{
		findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Theme: "light"}, nil
		},
		updateFunc: func(_ context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	h := NewUserHandler(&mockAuthService{}, repo, &fakeActionLogRepo{}, newTestMetrics())

	w := putTheme(h, ThemeRequest{Theme: "dark"}, &models.User{ID: 1})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if saved == nil || saved.Theme != "dark" {
		t.Errorf("saved theme = %+v, want dark", saved)
	}
}
