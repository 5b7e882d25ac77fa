package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/auth"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) FindByProviderID(ctx context.Context, provider, providerID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Provider == provider && u.ProviderID == providerID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, provider, providerID, displayName, avatarURL string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := provider + ":" + providerID
	u := &model.User{ID: id, Provider: provider, ProviderID: providerID, DisplayName: displayName, AvatarURL: avatarURL, CreatedAt: time.Now()}
	f.users[id] = u
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.DisplayName = displayName
	}
	return nil
}

func newUserTestHandler() (*UserHandler, *fakeUserRepo) {
	users := newFakeUserRepo()
	gameSvc := service.NewGameService(newFakeGameRepo(), newFakeCache())
	return NewUserHandler(users, gameSvc), users
}

func TestGetMe(t *testing.T) {
	h, users := newUserTestHandler()
	u, _ := users.Upsert(context.Background(), "google", "goog-1", "Grant", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(auth.SetUserIDForTest(req.Context(), u.ID))
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		User  model.User   `json:"user"`
		Games []model.Game `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.DisplayName != "Grant" {
		t.Errorf("display name = %q, want Grant", body.User.DisplayName)
	}
}

func TestGetMeUnknownUser(t *testing.T) {
	h, _ := newUserTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(auth.SetUserIDForTest(req.Context(), "nobody"))
	rec := httptest.NewRecorder()
	h.GetMe(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateMe(t *testing.T) {
	h, users := newUserTestHandler()
	u, _ := users.Upsert(context.Background(), "google", "goog-2", "Lee", "")

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/me", strings.NewReader(`{"display_name":"R. E. Lee"}`))
	req = req.WithContext(auth.SetUserIDForTest(req.Context(), u.ID))
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	updated, _ := users.FindByID(context.Background(), u.ID)
	if updated.DisplayName != "R. E. Lee" {
		t.Errorf("display name = %q, want updated", updated.DisplayName)
	}
}

func TestUpdateMeRequiresName(t *testing.T) {
	h, _ := newUserTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/me", strings.NewReader(`{}`))
	req = req.WithContext(auth.SetUserIDForTest(req.Context(), "whoever"))
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
