package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"grinder_relay/internal/models"
	"grinder_relay/internal/service"
)

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{
		loginToken: "signed-token",
		loginUser:  models.UserIdentity{Username: "admin", Role: models.RoleAdmin},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := bytes.NewBufferString(`{"username":"admin","password":"hunter2"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Token   string              `json:"token"`
		User    models.UserIdentity `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Token != "signed-token" {
		t.Fatalf("bad response: %+v", resp)
	}
	if resp.User.Username != "admin" || resp.User.Role != models.RoleAdmin {
		t.Fatalf("bad user: %+v", resp.User)
	}
	if auth.lastLoginUsername != "admin" || auth.lastLoginPassword != "hunter2" {
		t.Fatalf("credentials not forwarded: %q/%q", auth.lastLoginUsername, auth.lastLoginPassword)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := bytes.NewBufferString(`{"username":"admin","password":"wrong"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrAuthNotConfigured}
	r := newTestRouter(&service.Service{Authorization: auth})

	body := bytes.NewBufferString(`{"username":"admin","password":"hunter2"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unconfigured auth, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_BadBody(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	body := bytes.NewBufferString(`{"username":"admin"}`) // password missing
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}
