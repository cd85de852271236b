package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wishify/wishify/internal/authctx"
	"github.com/wishify/wishify/internal/domain"
	"github.com/wishify/wishify/internal/transport/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register    func(ctx context.Context, username, email, password string) (string, error)
	login       func(ctx context.Context, email, password string) (string, error)
	currentUser func(ctx context.Context, id string) (*domain.User, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, username, email, password string) (string, error) {
	return f.register(ctx, username, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return f.currentUser(ctx, id)
}

// asUser is a stand-in for the auth middleware in handler tests.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(authctx.WithUserID(c.Request.Context(), id))
		c.Next()
	}
}

func newAuthEngine(uc *fakeAuthUsecase, callerID string) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/users", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users/me", asUser(callerID), h.Me)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_MissingField_Returns400(t *testing.T) {
	cases := map[string]string{
		"no username": `{"email":"a@x.com","password":"secret1"}`,
		"no email":    `{"username":"alice","password":"secret1"}`,
		"no password": `{"username":"alice","email":"a@x.com"}`,
		"bad email":   `{"username":"alice","email":"not-an-email","password":"secret1"}`,
		"bad json":    `{nope}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			uc := &fakeAuthUsecase{
				register: func(_ context.Context, _, _, _ string) (string, error) {
					called = true
					return "", nil
				},
			}
			w := postJSON(newAuthEngine(uc, ""), "/users", body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if called {
				t.Error("usecase reached despite validation failure")
			}
		})
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _, _ string) (string, error) {
			return "", domain.ErrEmailTaken
		},
	}
	w := postJSON(newAuthEngine(uc, ""), "/users",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_Success_Returns201WithToken(t *testing.T) {
	const fakeJWT = "header.payload.signature"
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, username, email, password string) (string, error) {
			if username != "alice" || email != "a@x.com" || password != "secret1" {
				t.Errorf("unexpected args: %q %q %q", username, email, password)
			}
			return fakeJWT, nil
		},
	}
	w := postJSON(newAuthEngine(uc, ""), "/users",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["token"] != fakeJWT {
		t.Errorf("token = %q, want %q", resp["token"], fakeJWT)
	}
	if resp["message"] == "" {
		t.Error("message missing from response")
	}
}

func TestRegister_InternalError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _, _ string) (string, error) {
			return "", errors.New("db down")
		},
	}
	w := postJSON(newAuthEngine(uc, ""), "/users",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Error("internal error detail leaked to the client")
	}
}

// ---- Login ----

func TestLogin_MissingField_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(newAuthEngine(uc, ""), "/users/login", `{"email":"a@x.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin_InvalidCredentials_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	w := postJSON(newAuthEngine(uc, ""), "/users/login",
		`{"email":"a@x.com","password":"wrong"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin_Success_Returns200WithToken(t *testing.T) {
	const fakeJWT = "header.payload.signature"
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return fakeJWT, nil
		},
	}
	w := postJSON(newAuthEngine(uc, ""), "/users/login",
		`{"email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), fakeJWT) {
		t.Errorf("body %q does not contain token", w.Body.String())
	}
}

// ---- Me ----

func TestMe_ReturnsUserWithoutPasswordField(t *testing.T) {
	uc := &fakeAuthUsecase{
		currentUser: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{
				ID:           id,
				Username:     "alice",
				Email:        "a@x.com",
				PasswordHash: "$2a$12$should-never-appear",
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	newAuthEngine(uc, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"id":"user-1"`) {
		t.Errorf("body %q missing user id", body)
	}
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Errorf("password digest leaked across the boundary: %q", body)
	}
}

func TestMe_UserGone_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		currentUser: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	newAuthEngine(uc, "user-1").ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
