package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/auth"
	"resume-booster/internal/shared/validation"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	router := gin.New()
	authn := func(c *gin.Context) {
		c.Set("identity", auth.Identity{Subject: "fid1", Email: "a@b.com"})
		c.Next()
	}
	requireUser := func(c *gin.Context) {
		c.Set("userId", int64(1))
		c.Next()
	}
	NewHandler(svc).RegisterRoutes(router.Group("/api"), authn, requireUser)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterReturnsCreatedUser(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	resp := postJSON(router, "/api/auth/register", `{"email":"a@b.com","name":"A","firebaseId":"fid1"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	want := `{"id":1,"email":"a@b.com","name":"A","photoUrl":null,"firebaseId":"fid1"}`
	if resp.Body.String() != want {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}

	again := postJSON(router, "/api/auth/register", `{"email":"a@b.com","name":"A","firebaseId":"fid1"}`)
	if again.Code != http.StatusOK {
		t.Fatalf("expected 200 for repeat registration, got %d", again.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing email", body: `{"name":"A","firebaseId":"fid1"}`, wantField: "email"},
		{name: "bad email", body: `{"email":"nope","name":"A","firebaseId":"fid1"}`, wantField: "email"},
		{name: "bad photo", body: `{"email":"a@b.com","name":"A","firebaseId":"fid1","photoUrl":"not a url"}`, wantField: "photoUrl"},
		{name: "missing firebaseId", body: `{"email":"a@b.com","name":"A"}`, wantField: "firebaseId"},
		{name: "malformed", body: `{"email":`, wantField: "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(router, "/api/auth/register", tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			var body struct {
				Error struct {
					Code    string            `json:"code"`
					Details map[string]string `json:"details"`
				} `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != "validation_error" {
				t.Fatalf("unexpected code: %s", body.Error.Code)
			}
			if _, ok := body.Error.Details[tt.wantField]; !ok {
				t.Fatalf("expected detail for %s, got %v", tt.wantField, body.Error.Details)
			}
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))
	postJSON(router, "/api/auth/register", `{"email":"a@b.com","name":"A","firebaseId":"fid1"}`)

	resp := postJSON(router, "/api/auth/register", `{"email":"a@b.com","name":"A","firebaseId":"fid2"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestRegisterKnownIdentityWithOtherEmail(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))
	postJSON(router, "/api/auth/register", `{"email":"victim@example.com","name":"Victim","photoUrl":"https://x.io/p.png","firebaseId":"victim-uid"}`)

	resp := postJSON(router, "/api/auth/register", `{"email":"attacker@evil.com","name":"X","firebaseId":"victim-uid"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	for _, leaked := range []string{"victim@example.com", "Victim", "p.png", `"id"`} {
		if strings.Contains(resp.Body.String(), leaked) {
			t.Fatalf("conflict body leaks %q: %s", leaked, resp.Body.String())
		}
	}
}

func TestMeAndVerifyToken(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))
	postJSON(router, "/api/auth/register", `{"email":"a@b.com","name":"A","firebaseId":"fid1"}`)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var user User
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != 1 || user.ExternalAuthID != "fid1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	verify := postJSON(router, "/api/auth/verify-token", ``)
	if verify.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", verify.Code)
	}
	if !strings.Contains(verify.Body.String(), `"valid":true`) || !strings.Contains(verify.Body.String(), `"subject":"fid1"`) {
		t.Fatalf("unexpected verify body: %s", verify.Body.String())
	}
}
