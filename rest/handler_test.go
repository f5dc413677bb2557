package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-scraps/auth"
	"github.com/goliatone/go-scraps/pkg/testsupport"
	"github.com/goliatone/go-scraps/rest"
	"github.com/goliatone/go-scraps/scraps"
	"github.com/goliatone/go-scraps/users"
)

type api struct {
	mux   *http.ServeMux
	store *testsupport.CacheStore
}

func newAPI(t *testing.T) *api {
	t.Helper()

	tokens := auth.NewTokenManager(auth.Config{Secret: []byte("test-secret")})
	store := testsupport.NewCacheStore()
	scrapSvc := scraps.NewService(testsupport.NewScrapRepo(), store, 0, nil)
	userSvc := users.NewService(testsupport.NewUserRepo(), tokens)

	handler := rest.NewHandler(scrapSvc, userSvc, tokens, 0, nil)
	return &api{mux: handler.Router(), store: store}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.mux.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns a valid bearer token for it.
func (a *api) register(t *testing.T, username, password string) string {
	t.Helper()

	if rr := a.do(t, http.MethodPost, "/users", "", map[string]string{
		"username": username, "password": password,
	}); rr.Code != http.StatusOK {
		t.Fatalf("register %s: status %d, body %s", username, rr.Code, rr.Body)
	}

	rr := a.do(t, http.MethodPost, "/auth", "", map[string]string{
		"username": username, "password": password,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("authenticate %s: status %d, body %s", username, rr.Code, rr.Body)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("authenticate returned an empty token")
	}
	return out.Token
}

func decodeScrap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out struct {
		Scrap map[string]any `json:"scrap"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode scrap response: %v", err)
	}
	if out.Scrap == nil {
		t.Fatalf("response %s carries no scrap", rr.Body)
	}
	return out.Scrap
}

func wantBody(t *testing.T, rr *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rr.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rr.Code, status, rr.Body)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != body {
		t.Errorf("body = %s, want %s", got, body)
	}
}

func TestWelcome(t *testing.T) {
	a := newAPI(t)
	rr := a.do(t, http.MethodGet, "/", "", nil)
	wantBody(t, rr, http.StatusOK, `{"message":"Welcome to the API!"}`)
}

func TestRegisterDoesNotLeakPasswordHash(t *testing.T) {
	a := newAPI(t)

	rr := a.do(t, http.MethodPost, "/users", "", map[string]string{
		"username": "ada", "password": "hunter2",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body)
	}
	if strings.Contains(rr.Body.String(), "password") || strings.Contains(rr.Body.String(), "hunter2") {
		t.Errorf("register response leaks credentials: %s", rr.Body)
	}

	// the user is the top-level body, not wrapped in an envelope
	var out struct {
		UID      string `json:"uid"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.UID == "" || out.Username != "ada" {
		t.Errorf("register returned %+v, want top-level uid and username", out)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if _, ok := raw["user"]; ok {
		t.Errorf("register response wraps the user in an envelope: %s", rr.Body)
	}
}

func TestRegisterMissingField(t *testing.T) {
	a := newAPI(t)
	rr := a.do(t, http.MethodPost, "/users", "", map[string]string{"username": "ada"})
	wantBody(t, rr, http.StatusBadRequest, `{"error":"Missing param: password"}`)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	a := newAPI(t)
	a.register(t, "ada", "pw")

	rr := a.do(t, http.MethodPost, "/users", "", map[string]string{
		"username": "ada", "password": "other",
	})
	wantBody(t, rr, http.StatusConflict, `{"error":"Username already exists"}`)
}

func TestUsernameAvailability(t *testing.T) {
	a := newAPI(t)

	rr := a.do(t, http.MethodGet, "/users/free-name", "", nil)
	wantBody(t, rr, http.StatusOK, `{}`)

	a.register(t, "ada", "pw")
	rr = a.do(t, http.MethodGet, "/users/ada", "", nil)
	wantBody(t, rr, http.StatusConflict, `{"error":"Username already exists"}`)
}

func TestAuthenticateFailures(t *testing.T) {
	a := newAPI(t)
	a.register(t, "ada", "pw")

	rr := a.do(t, http.MethodPost, "/auth", "", map[string]string{
		"username": "nobody", "password": "pw",
	})
	wantBody(t, rr, http.StatusNotFound, `{"error":"Data not found"}`)

	rr = a.do(t, http.MethodPost, "/auth", "", map[string]string{
		"username": "ada", "password": "wrong",
	})
	wantBody(t, rr, http.StatusForbidden, `{"error":"access denied"}`)

	rr = a.do(t, http.MethodPost, "/auth", "", map[string]string{"username": "ada"})
	wantBody(t, rr, http.StatusBadRequest, `{"error":"Missing param: password"}`)
}

func TestScrapsRequireAuthentication(t *testing.T) {
	a := newAPI(t)

	rr := a.do(t, http.MethodGet, "/scraps", "", nil)
	wantBody(t, rr, http.StatusUnauthorized, `{"error":"you must authenticate first"}`)

	rr = a.do(t, http.MethodGet, "/scraps", "not-a-real-token", nil)
	wantBody(t, rr, http.StatusUnauthorized, `{"error":"you must authenticate first"}`)
}

func TestAuthRunsBeforeValidation(t *testing.T) {
	a := newAPI(t)

	// no token and no body: the auth failure must win
	rr := a.do(t, http.MethodPost, "/scraps", "", nil)
	wantBody(t, rr, http.StatusUnauthorized, `{"error":"you must authenticate first"}`)
}

func TestCreateScrapMissingDescription(t *testing.T) {
	a := newAPI(t)
	token := a.register(t, "ada", "pw")

	rr := a.do(t, http.MethodPost, "/scraps", token, map[string]string{"title": "t"})
	wantBody(t, rr, http.StatusBadRequest, `{"error":"Missing param: description"}`)
}

func TestShowScrapMalformedUID(t *testing.T) {
	a := newAPI(t)
	token := a.register(t, "ada", "pw")

	rr := a.do(t, http.MethodGet, "/scraps/not-a-uuid", token, nil)
	wantBody(t, rr, http.StatusBadRequest, `{"error":"Invalid param: uid"}`)
}

func TestScrapLifecycle(t *testing.T) {
	a := newAPI(t)
	token := a.register(t, "ada", "pw")

	// empty list first
	rr := a.do(t, http.MethodGet, "/scraps", token, nil)
	wantBody(t, rr, http.StatusOK, `{"scraps":[]}`)

	rr = a.do(t, http.MethodPost, "/scraps", token, map[string]string{
		"title": "groceries", "description": "milk",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create: status %d, body %s", rr.Code, rr.Body)
	}
	created := decodeScrap(t, rr)
	uid, _ := created["uid"].(string)
	if uid == "" {
		t.Fatalf("created scrap has no uid: %v", created)
	}

	rr = a.do(t, http.MethodGet, "/scraps/"+uid, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("show: status %d, body %s", rr.Code, rr.Body)
	}
	if got := decodeScrap(t, rr); got["title"] != "groceries" || got["description"] != "milk" {
		t.Errorf("show returned %v, want the created scrap", got)
	}

	rr = a.do(t, http.MethodPut, "/scraps/"+uid, token, map[string]string{
		"title": "groceries v2", "description": "milk and eggs",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rr.Code, rr.Body)
	}
	if got := decodeScrap(t, rr); got["title"] != "groceries v2" {
		t.Errorf("update returned %v, want the new title", got)
	}

	// the read after update sees the new value
	rr = a.do(t, http.MethodGet, "/scraps/"+uid, token, nil)
	if got := decodeScrap(t, rr); got["description"] != "milk and eggs" {
		t.Errorf("show after update returned %v, want the new description", got)
	}

	rr = a.do(t, http.MethodDelete, "/scraps/"+uid, token, nil)
	wantBody(t, rr, http.StatusOK, `{}`)

	rr = a.do(t, http.MethodGet, "/scraps/"+uid, token, nil)
	wantBody(t, rr, http.StatusNotFound, `{"error":"Data not found"}`)

	rr = a.do(t, http.MethodGet, "/scraps", token, nil)
	wantBody(t, rr, http.StatusOK, `{"scraps":[]}`)
}

func TestScrapListNewestFirst(t *testing.T) {
	a := newAPI(t)
	token := a.register(t, "ada", "pw")

	for _, title := range []string{"first", "second"} {
		rr := a.do(t, http.MethodPost, "/scraps", token, map[string]string{
			"title": title, "description": "d",
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("create %s: status %d, body %s", title, rr.Code, rr.Body)
		}
	}

	rr := a.do(t, http.MethodGet, "/scraps", token, nil)
	var out struct {
		Scraps []struct {
			Title string `json:"title"`
		} `json:"scraps"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(out.Scraps) != 2 || out.Scraps[0].Title != "second" {
		t.Errorf("list = %v, want newest first", out.Scraps)
	}
}

func TestCrossTenantIsolation(t *testing.T) {
	a := newAPI(t)
	adaToken := a.register(t, "ada", "pw")
	bobToken := a.register(t, "bob", "pw")

	rr := a.do(t, http.MethodPost, "/scraps", adaToken, map[string]string{
		"title": "private", "description": "ada only",
	})
	uid, _ := decodeScrap(t, rr)["uid"].(string)

	rr = a.do(t, http.MethodGet, "/scraps/"+uid, bobToken, nil)
	wantBody(t, rr, http.StatusNotFound, `{"error":"Data not found"}`)

	rr = a.do(t, http.MethodDelete, "/scraps/"+uid, bobToken, nil)
	wantBody(t, rr, http.StatusNotFound, `{"error":"Data not found"}`)

	rr = a.do(t, http.MethodGet, "/scraps", bobToken, nil)
	wantBody(t, rr, http.StatusOK, `{"scraps":[]}`)

	// ada still sees the scrap
	rr = a.do(t, http.MethodGet, "/scraps/"+uid, adaToken, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("owner read: status %d, body %s", rr.Code, rr.Body)
	}
}
