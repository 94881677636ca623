package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/neurolearn/backend/internal/middleware"
	"github.com/neurolearn/backend/internal/models"
	"github.com/neurolearn/backend/internal/storage"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")
	raw, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := tokens.ParseToken(raw)
	if err != nil || got != "alice" {
		t.Errorf("ParseToken = (%q, %v), want (alice, nil)", got, err)
	}
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("test-secret")
	raw, _ := tokens.Issue("alice")

	if _, err := NewTokens("other-secret").ParseToken(raw); err == nil {
		t.Error("token signed with another secret accepted")
	}

	expired := NewTokens("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-100 * time.Hour) }
	old, _ := expired.Issue("alice")
	if _, err := tokens.ParseToken(old); err == nil {
		t.Error("expired token accepted")
	}

	if _, err := tokens.ParseToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestRegisterLoginMe(t *testing.T) {
	tokens := NewTokens("test-secret")
	h := NewHandler(storage.NewMemoryStore(), tokens, nil)

	rec := post(h.Register, `{"username":"Alice_1","name":"Alice Smith","password":"password123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var reg models.AuthResponse
	json.Unmarshal(rec.Body.Bytes(), &reg)
	if reg.Learner.Username != "alice_1" || reg.DisplayName != "Alice S." || reg.Token == "" {
		t.Errorf("register response = %+v", reg)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("register response leaks password hash")
	}

	if rec := post(h.Register, `{"username":"alice_1","name":"Other","password":"password123"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	if rec := post(h.Login, `{"username":"alice_1","password":"wrong-password"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", rec.Code)
	}
	if rec := post(h.Login, `{"username":"nobody","password":"password123"}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", rec.Code)
	}

	rec = post(h.Login, `{"username":"ALICE_1","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	var login models.AuthResponse
	json.Unmarshal(rec.Body.Bytes(), &login)

	protected := middleware.AuthMiddleware(tokens)(http.HandlerFunc(h.GetCurrentLearner))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	me := httptest.NewRecorder()
	protected.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"username":"alice_1"`) {
		t.Errorf("me = %d %s", me.Code, me.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	h := NewHandler(storage.NewMemoryStore(), NewTokens("s"), nil)
	bodies := []string{
		`{`,
		`{"username":"","name":"A","password":"password123"}`,
		`{"username":"a b","name":"A","password":"password123"}`,
		`{"username":"abc","name":"A","password":"short"}`,
	}
	for _, body := range bodies {
		if rec := post(h.Register, body); rec.Code != http.StatusBadRequest {
			t.Errorf("Register(%s) status = %d, want 400", body, rec.Code)
		}
	}
}
