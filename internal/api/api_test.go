package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/starford/gigtags/internal/facetservice"
	"github.com/starford/gigtags/internal/lint"
	"github.com/starford/gigtags/internal/models"
	"github.com/starford/gigtags/internal/testutil"
)

// testEnv sets up a temp vault, linter and router for testing.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) (string, http.Handler) {
	t.Helper()
	return testEnvFull(t, authToken != "", authToken, nil)
}

func testEnvFull(t *testing.T, authEnabled bool, authToken string, sseHandler http.Handler) (string, http.Handler) {
	t.Helper()
	vaultDir, store := testutil.TestVault(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	linter := lint.New(store, nil, logger)
	router := NewRouter(facetservice.NewService(), linter, authEnabled, authToken, sseHandler)
	return vaultDir, router
}

func inspect(t *testing.T, router http.Handler, f string) (int, Inspection) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/facets/inspect?facet="+url.QueryEscape(f), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var res Inspection
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return w.Code, res
}

func TestInspectFacet(t *testing.T) {
	_, router := testEnv(t, "")

	code, res := inspect(t, router, "a~20220625")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !res.Valid || !res.HasDateLikeSuffix || res.HasInvalidDateLikeSuffix {
		t.Errorf("unexpected flags: %+v", res)
	}
	if res.Prefix == nil || *res.Prefix != "a" {
		t.Errorf("prefix = %v", res.Prefix)
	}
	if res.Date != "2022-06-25" || !res.ValidDate {
		t.Errorf("date = %q, valid_date = %v, want 2022-06-25 and true", res.Date, res.ValidDate)
	}
}

func TestInspectFacet_InvalidSuffix(t *testing.T) {
	_, router := testEnv(t, "")

	_, res := inspect(t, router, "a ~20220625")
	if res.HasDateLikeSuffix || !res.HasInvalidDateLikeSuffix {
		t.Errorf("unexpected flags: %+v", res)
	}
	if res.Prefix == nil || *res.Prefix != "a " {
		t.Errorf("prefix = %v", res.Prefix)
	}
}

func TestInspectFacet_Empty(t *testing.T) {
	_, router := testEnv(t, "")

	code, res := inspect(t, router, "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !res.Valid || !res.Empty {
		t.Errorf("empty facet should be valid and empty: %+v", res)
	}
}

func TestInspectFacet_MissingParam(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/facets/inspect", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing facet = %d, want 400", w.Code)
	}
}

func TestBuildFacet(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]string{"prefix": "tag", "date": "2022-06-25"})
	req := httptest.NewRequest(http.MethodPost, "/facets/build", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("build status = %d, body = %s", w.Code, w.Body.String())
	}
	var res BuildFacetResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Facet != "tag~20220625" {
		t.Errorf("facet = %q", res.Facet)
	}
}

func TestBuildFacet_BadInput(t *testing.T) {
	_, router := testEnv(t, "")

	cases := []string{
		`{"prefix": "tag", "date": "2022-13-01"}`,
		`{"prefix": "tag"}`,
		`{"prefix": "tag ", "date": "2022-06-25"}`,
		`{"prefix": "/tag", "date": "2022-06-25"}`,
		`not json`,
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/facets/build", bytes.NewReader([]byte(c)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c, w.Code)
		}
	}
}

func TestLintVault(t *testing.T) {
	vaultDir, router := testEnv(t, "")
	testutil.WriteNote(t, vaultDir, "a.md", "---\ntags: [\"x ~20220625\", ok]\n---\n")
	testutil.WriteNote(t, vaultDir, "b.md", "#fine~20220625\n")

	req := httptest.NewRequest(http.MethodGet, "/lint", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("lint status = %d", w.Code)
	}
	var res VaultReport
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Notes != 2 || res.Findings != 1 {
		t.Errorf("notes = %d, findings = %d", res.Notes, res.Findings)
	}
	if len(res.Reports) != 1 || res.Reports[0].Path != "a.md" {
		t.Fatalf("reports = %+v", res.Reports)
	}
	if res.Reports[0].Findings[0].Kind != models.KindInvalidDateLikeSuffix {
		t.Errorf("kind = %q", res.Reports[0].Findings[0].Kind)
	}
}

func TestLintNote(t *testing.T) {
	vaultDir, router := testEnv(t, "")
	testutil.WriteNote(t, vaultDir, "topics/n.md", "#x~20220230\n")

	req := httptest.NewRequest(http.MethodGet, "/lint/topics%2Fn.md", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("lint note status = %d", w.Code)
	}
	var res NoteReport
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Path != "topics/n.md" || len(res.Findings) != 1 {
		t.Errorf("report = %+v", res)
	}
}

func TestLintNote_NotFound(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/lint/nope.md", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing note = %d, want 404", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/facets/inspect?facet=a", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authed inspect = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/lint", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")

	req := httptest.NewRequest(http.MethodGet, "/lint", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/lint", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("no auth = %d, want 200", w.Code)
	}
}

// sseStub writes headers and blocks until the request context is done.
var sseStub = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	<-r.Context().Done()
})

func TestSSEEvents_AuthProtected(t *testing.T) {
	_, router := testEnvFull(t, true, "secret", sseStub)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}
}

func TestSSEEvents_ValidToken(t *testing.T) {
	_, router := testEnvFull(t, true, "tok", sseStub)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("SSE with valid token = %d, want 200", w.Code)
	}
}

func TestSSEEvents_NotMountedWithoutHandler(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("SSE without handler = %d, want 404", w.Code)
	}
}
