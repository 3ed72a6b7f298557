package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/builder"
	"resumeforge/internal/config"
	"resumeforge/pkg/models"
)

func testSessions() *builder.SessionManager {
	cfg := &config.Config{}
	cfg.Builder.DebounceInterval = 500 * time.Millisecond
	cfg.Builder.MaxSessions = 10
	cfg.Builder.SessionMaxAge = time.Hour
	cfg.Builder.CleanupInterval = time.Hour
	return builder.NewSessionManager(cfg)
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, path, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestCreateAndGetDraft(t *testing.T) {
	sessions := testSessions()

	rec := doJSON(t, CreateDraftHandler(sessions), http.MethodPost, "/api/v1/drafts", `{}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created models.DraftResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.DraftID == "" {
		t.Fatal("draft ID missing")
	}
	if created.Dirty {
		t.Error("fresh draft should not be dirty")
	}

	rec = doJSON(t, GetDraftHandler(sessions), http.MethodGet, "/", "", map[string]string{"id": created.DraftID})
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = doJSON(t, GetDraftHandler(sessions), http.MethodGet, "/", "", map[string]string{"id": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("get missing draft status = %d, want 404", rec.Code)
	}
}

func TestUpdateFieldEndpoint(t *testing.T) {
	sessions := testSessions()
	id, _, err := sessions.Create(nil, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatal(err)
	}
	params := map[string]string{"id": id}

	rec := doJSON(t, UpdateFieldHandler(sessions), http.MethodPut, "/",
		`{"section":"basicDetails","field":"name","value":"Ada Lovelace"}`, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.DraftResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Document.BasicDetails.Name != "Ada Lovelace" {
		t.Errorf("name = %q", resp.Document.BasicDetails.Name)
	}
	if !resp.Dirty {
		t.Error("draft should be dirty after an edit")
	}
	if len(resp.Touched) != 1 || resp.Touched[0] != "basicDetails.name" {
		t.Errorf("touched = %v", resp.Touched)
	}

	rec = doJSON(t, UpdateFieldHandler(sessions), http.MethodPut, "/",
		`{"section":"hobbies","field":"name","value":"x"}`, params)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown section status = %d, want 400", rec.Code)
	}
}

func TestPatchArrayEndpoint(t *testing.T) {
	sessions := testSessions()
	id, ctrl, err := sessions.Create(nil, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatal(err)
	}
	params := map[string]string{"id": id}

	rec := doJSON(t, PatchArrayHandler(sessions), http.MethodPost, "/",
		`{"section":"education","op":"add","item":{"year":"2020","degree":"MSc","university":"Example"}}`, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}

	edus := ctrl.Document().Education
	if len(edus) != 2 || edus[1].Degree != "MSc" {
		t.Errorf("education after add = %+v", edus)
	}

	rec = doJSON(t, PatchArrayHandler(sessions), http.MethodPost, "/",
		`{"section":"techSkills","op":"add","item":"Go"}`, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("skill add status = %d", rec.Code)
	}
	skills := ctrl.Document().TechSkills
	if skills[len(skills)-1] != "Go" {
		t.Errorf("techSkills after add = %v", skills)
	}
}

func TestValidateDraftEndpoint(t *testing.T) {
	sessions := testSessions()
	id, _, err := sessions.Create(nil, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, ValidateDraftHandler(sessions), http.MethodPost, "/", "", map[string]string{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d", rec.Code)
	}

	var resp models.ValidationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Valid {
		t.Error("template document should not validate")
	}
	if resp.Errors == nil {
		t.Error("invalid draft should report errors")
	}
}

func TestVisibilityEndpoint(t *testing.T) {
	sessions := testSessions()
	id, ctrl, err := sessions.Create(nil, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatal(err)
	}
	params := map[string]string{"id": id}

	rec := doJSON(t, VisibilityHandler(sessions), http.MethodPost, "/",
		`{"section":"experience","op":"hide"}`, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("visibility status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ctrl.Visibility().Experience {
		t.Error("experience should be hidden")
	}

	rec = doJSON(t, VisibilityHandler(sessions), http.MethodPost, "/",
		`{"section":"about","op":"hide"}`, params)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("hiding a core section status = %d, want 400", rec.Code)
	}
}
