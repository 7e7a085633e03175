package inquiry_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/inquiry"
	"github.com/AlHayahDevelopments/property-inquiry/internal/notificacao"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var today = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

type outbox struct {
	sent []notificacao.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg notificacao.Message) error {
	o.sent = append(o.sent, msg)
	return o.err
}

type testEnv struct {
	router *mux.Router
	dir    string
	mail   *outbox
}

func newTestEnv(t *testing.T, sendErr error) *testEnv {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "submissions")
	mail := &outbox{err: sendErr}

	repo := inquiry.NewFileRepository(dir, inquiry.WithClock(func() time.Time { return today }))
	notifier := notificacao.NewNotifier(mail, notificacao.PlainRenderer{}, "noreply@example.com", "sales@example.com", zap.NewNop())
	store := sessions.NewCookieStore([]byte("test-secret-0123456789abcdef"))

	h := inquiry.NewHandler(repo, notifier, store, zap.NewNop(), "Al Hayah Developments", "Call us").
		WithClock(func() time.Time { return today })

	r := mux.NewRouter()
	h.Register(r)
	return &testEnv{router: r, dir: dir, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func janeDoeForm() url.Values {
	return url.Values{
		"client_name":   {"Jane Doe"},
		"client_phone":  {"0100000000"},
		"unit_type":     {"Villa"},
		"area":          {"New Cairo"},
		"budget":        {"5000000"},
		"min_unit_area": {"300"},
		"max_unit_area": {"350"},
		"delivery_date": {"2026-01-01"},
	}
}

func TestHandler_Page_FreshSessionShowsForm(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, http.MethodGet, "/", nil, nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Property Inquiry Form")
	assert.Contains(t, body, "Submit Inquiry")
	assert.Contains(t, body, "Client Information")
	assert.Contains(t, body, "Location and Financial Details")
	assert.Contains(t, body, `min="2025-06-15"`)
	assert.Contains(t, body, "Call us")
	assert.NotContains(t, body, "Submit Another Inquiry")
}

func TestHandler_Page_GarbageCookieStartsFresh(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, http.MethodGet, "/", nil, []*http.Cookie{{Name: inquiry.SessionName, Value: "garbage"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Submit Inquiry")
}

func TestHandler_Submit_ValidationError(t *testing.T) {
	env := newTestEnv(t, nil)
	form := url.Values{"client_name": {"  "}, "client_phone": {"0100000000"}}

	resp := env.do(t, http.MethodPost, "/submit", form, nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, inquiry.MsgMissingFields)
	assert.Contains(t, body, `value="0100000000"`, "entered values are kept")
	assert.Empty(t, env.mail.sent)
	_, err := os.Stat(env.dir)
	assert.True(t, errors.Is(err, os.ErrNotExist), "nothing persisted")
}

// Cenário ponta a ponta: Jane Doe.
func TestHandler_Submit_JaneDoeEndToEnd(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, http.MethodPost, "/submit", janeDoeForm(), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// registro gravado
	entries, err := os.ReadDir(env.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "Jane_Doe")
	assert.Equal(t, "20250615_103000_Jane_Doe.json", entries[0].Name())

	raw, err := os.ReadFile(filepath.Join(env.dir, entries[0].Name()))
	require.NoError(t, err)
	var flat map[string]string
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "5,000,000 EGP", flat["Budget"])
	assert.Equal(t, "300 - 350 m²", flat["Unit Area"])

	// email
	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "New Property Inquiry from Jane Doe", env.mail.sent[0].Subject)
	assert.Equal(t, "sales@example.com", env.mail.sent[0].To)

	// confirmação
	page := env.do(t, http.MethodGet, "/", nil, resp.Cookies())
	body := readBody(t, page)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, body, inquiry.MsgSuccess)
	assert.Contains(t, body, "Property Inquiry Details")
	assert.Contains(t, body, "Submit Another Inquiry")
	assert.Equal(t, 13, strings.Count(body, "<li><strong>"))
	assert.Contains(t, body, "<strong>Budget:</strong> 5,000,000 EGP")
	assert.Contains(t, body, "<strong>Unit Type:</strong> Villa")
	assert.Contains(t, body, "<strong>Area:</strong> New Cairo")
	assert.Contains(t, body, "<strong>Delivery Date:</strong> 2026-01-01")
}

func TestHandler_Submit_DeliveryFailureInvisible(t *testing.T) {
	env := newTestEnv(t, errors.New("535 5.7.8 authentication failed"))

	resp := env.do(t, http.MethodPost, "/submit", janeDoeForm(), nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Len(t, env.mail.sent, 1)

	body := readBody(t, env.do(t, http.MethodGet, "/", nil, resp.Cookies()))
	assert.Contains(t, body, inquiry.MsgSuccess)
}

func TestHandler_Reset(t *testing.T) {
	env := newTestEnv(t, nil)

	submitted := env.do(t, http.MethodPost, "/submit", janeDoeForm(), nil)
	require.Equal(t, http.StatusSeeOther, submitted.StatusCode)

	reset := env.do(t, http.MethodPost, "/reset", nil, submitted.Cookies())
	require.Equal(t, http.StatusSeeOther, reset.StatusCode)

	body := readBody(t, env.do(t, http.MethodGet, "/", nil, reset.Cookies()))
	assert.Contains(t, body, "Submit Inquiry")
	assert.NotContains(t, body, "Property Inquiry Details")
	assert.NotContains(t, body, "Jane Doe", "fields are cleared")
}

func TestHandler_SubmitTwiceKeepsFirst(t *testing.T) {
	env := newTestEnv(t, nil)

	first := env.do(t, http.MethodPost, "/submit", janeDoeForm(), nil)
	require.Equal(t, http.StatusSeeOther, first.StatusCode)

	other := url.Values{"client_name": {"John Roe"}, "client_phone": {"0122"}}
	second := env.do(t, http.MethodPost, "/submit", other, first.Cookies())
	require.Equal(t, http.StatusSeeOther, second.StatusCode)

	assert.Len(t, env.mail.sent, 1)
	body := readBody(t, env.do(t, http.MethodGet, "/", nil, second.Cookies()))
	assert.Contains(t, body, "Jane Doe")
	assert.NotContains(t, body, "John Roe")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, http.MethodGet, "/submit", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
