package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/generator"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, whose view worker starts in init
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeGenerator struct {
	out  model.Output
	err  error
	last generator.Request
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(_ context.Context, req generator.Request) (model.Output, error) {
	f.last = req
	return f.out, f.err
}

func demoConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Generator:     config.GeneratorMock,
		AdminEmail:    model.DemoEmail,
		AdminPassword: model.DemoPassword,
		AdminUID:      model.DemoUID,
	}
}

func newTestRouter(t *testing.T, gen generator.Generator) http.Handler {
	t.Helper()
	r, err := NewRouter(demoConfig(), gen, zap.NewNop())
	require.NoError(t, err)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return string(resp.Detail)
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t, generator.Mock{})

	t.Run("demo credentials", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/login", `{"email":"admin@demo.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, model.DemoUID, resp.UID)
		assert.Equal(t, "Demo Login successful.", resp.Message)
	})

	for _, body := range []string{
		`{"email":"admin@demo.com","password":"nope"}`,
		`{"email":"someone@else.com","password":"password123"}`,
		`{"email":"","password":""}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.Equal(t, "Invalid credentials. Use admin@demo.com / password123.", detailOf(t, rec))
	}

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/login", `{"email":`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotEmpty(t, detailOf(t, rec))
	})
}

func TestLogin_CustomAccountHidesHint(t *testing.T) {
	cfg := demoConfig()
	cfg.AdminPassword = "s3cret"
	h, err := NewRouter(cfg, generator.Mock{}, zap.NewNop())
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/login", `{"email":"admin@demo.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", detailOf(t, rec))

	rec = do(t, h, http.MethodPost, "/api/login", `{"email":"admin@demo.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDisabledEndpoints(t *testing.T) {
	h := newTestRouter(t, generator.Mock{})

	rec := do(t, h, http.MethodPost, "/api/register", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Registration disabled in demo mode.", detailOf(t, rec))

	rec = do(t, h, http.MethodPost, "/api/update_password", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Password update disabled in demo mode.", detailOf(t, rec))
}

func TestListTasks(t *testing.T) {
	h := newTestRouter(t, generator.Mock{})
	rec := do(t, h, http.MethodGet, "/api/tasks/"+model.DemoUID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"tasks":[]}`, rec.Body.String())
}

func TestGenerateTask(t *testing.T) {
	out := model.Output{Tagline: "t", PosterContent: "p", EmailContent: "e", VideoScript: "v"}

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{out: out}
		h := newTestRouter(t, gen)

		rec := do(t, h, http.MethodPost, "/api/generate_task",
			`{"uid":"DEMO_UID_001","prompt":"Eco bottle","audience":"hikers","image_base64":null}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.GenerateTaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Task generated successfully (not saved to DB).", resp.Message)
		assert.Regexp(t, `^DEMO_TASK_[0-9a-f]{8}$`, resp.TaskID)
		require.NotNil(t, resp.Output)
		assert.Equal(t, out, *resp.Output)

		assert.Equal(t, "Eco bottle", gen.last.Prompt)
		assert.Equal(t, "hikers", gen.last.Audience)
		assert.Nil(t, gen.last.Image)
	})

	t.Run("image is forwarded", func(t *testing.T) {
		gen := &fakeGenerator{out: out}
		h := newTestRouter(t, gen)

		body, _ := json.Marshal(api.GenerateTaskRequest{
			UID: model.DemoUID, Prompt: "p", Audience: "a",
			ImageBase64: strPtr("data:image/png;base64,aGVsbG8="),
		})
		rec := do(t, h, http.MethodPost, "/api/generate_task", string(body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gen.last.Image)
		assert.Equal(t, "image/png", gen.last.Image.MIMEType)
		assert.Equal(t, []byte("hello"), gen.last.Image.Data)
	})

	t.Run("unreadable image is ignored", func(t *testing.T) {
		gen := &fakeGenerator{out: out}
		h := newTestRouter(t, gen)

		rec := do(t, h, http.MethodPost, "/api/generate_task",
			`{"uid":"DEMO_UID_001","prompt":"p","audience":"a","image_base64":"not a data url"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, gen.last.Image)
	})

	tests := []struct {
		name       string
		uid        string
		genErr     error
		wantStatus int
		wantDetail string
	}{
		{"unknown uid", "someone", nil, http.StatusForbidden, "Unauthorized access."},
		{"generator error", model.DemoUID, errors.New("quota exceeded"), http.StatusInternalServerError, "AI generation failed: quota exceeded"},
		{"invalid output", model.DemoUID, fmt.Errorf("%w: eof", generator.ErrInvalidOutput), http.StatusInternalServerError, "AI generated invalid content structure."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &fakeGenerator{err: tt.genErr})
			body := fmt.Sprintf(`{"uid":%q,"prompt":"p","audience":"a"}`, tt.uid)
			rec := do(t, h, http.MethodPost, "/api/generate_task", body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detailOf(t, rec))
		})
	}
}

func TestMissingFields(t *testing.T) {
	h := newTestRouter(t, &fakeGenerator{})

	tests := []struct {
		path       string
		body       string
		wantDetail string
	}{
		{"/api/login", `{}`, "missing required field(s): email, password"},
		{"/api/login", `{"email":"admin@demo.com","password":null}`, "missing required field(s): password"},
		{"/api/generate_task", `{}`, "missing required field(s): uid, prompt, audience"},
		{"/api/generate_task", `{"uid":"DEMO_UID_001","prompt":"p"}`, "missing required field(s): audience"},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tt.body)
		assert.Equal(t, tt.wantDetail, detailOf(t, rec), tt.body)
	}
}

func TestPagesAndMiddleware(t *testing.T) {
	h := newTestRouter(t, generator.Mock{})

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","generator":"mock"}`, rec.Body.String())
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1>AdCraft AI</h1>")
	assert.Contains(t, rec.Body.String(), "<table>")

	rec = do(t, h, http.MethodOptions, "/api/login", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", bytes.NewReader(nil)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", detailOf(t, rec))
}

func strPtr(s string) *string { return &s }
