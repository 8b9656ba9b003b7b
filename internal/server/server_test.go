package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/kv"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/prefs"
	"github.com/theirongolddev/payoff/internal/theme"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	clock := func() time.Time { return testNow }
	p, err := prefs.Load(context.Background(), store, theme.DefaultID, prefs.WithClock(clock))
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	s := New(Config{
		Invest:       config.InvestConfig{MonthlyContribution: 100, AnnualReturnPct: 7, Years: 10},
		EventsBuffer: 3,
	}, ledger.New(store, ledger.WithClock(clock)), p, nil)
	s.now = clock
	return s, store
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
	errObj, ok := parseJSON(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got: %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Fatalf("error code = %v, want %q", errObj["code"], code)
	}
}

func addDebt(t *testing.T, h http.Handler, body string) map[string]any {
	t.Helper()
	rec := doRequest(h, "POST", "/v1/debts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add debt status = %d: %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["debt"].(map[string]any)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s.Handler(), "GET", "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestDebtLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	d := addDebt(t, h, `{"name":"Visa","balance":1000,"rate":19.9,"minPayment":50}`)
	id := d["id"].(string)
	if d["originalBalance"].(float64) != 1000 {
		t.Fatalf("originalBalance = %v, want 1000", d["originalBalance"])
	}

	rec := doRequest(h, "GET", "/v1/debts", "")
	body := parseJSON(t, rec)
	if n := len(body["debts"].([]any)); n != 1 {
		t.Fatalf("debts = %d, want 1", n)
	}
	summary := body["summary"].(map[string]any)
	if summary["debtFreeIn"].(float64) != 25 {
		t.Fatalf("debtFreeIn = %v, want 25", summary["debtFreeIn"])
	}

	rec = doRequest(h, "PATCH", "/v1/debts/"+id, `{"minPayment":100}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["debt"].(map[string]any)["minPayment"].(float64); got != 100 {
		t.Fatalf("minPayment = %v, want 100", got)
	}

	rec = doRequest(h, "DELETE", "/v1/debts/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	assertErrorCode(t, doRequest(h, "DELETE", "/v1/debts/"+id, ""), http.StatusNotFound, "DEBT_NOT_FOUND")
}

func TestAddDebtValidation(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"balance":1000,"rate":5,"minPayment":50}`},
		{"blank name", `{"name":"   ","balance":1000,"rate":5,"minPayment":50}`},
		{"negative balance", `{"name":"Visa","balance":-1,"rate":5,"minPayment":50}`},
		{"zero minimum", `{"name":"Visa","balance":1000,"rate":5,"minPayment":0}`},
		{"balance too large", `{"name":"Visa","balance":1e308,"rate":5,"minPayment":50}`},
		{"rate too large", `{"name":"Visa","balance":1000,"rate":5000,"minPayment":50}`},
		{"malformed json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertErrorCode(t, doRequest(h, "POST", "/v1/debts", tt.body), http.StatusBadRequest, "INVALID_INPUT")
		})
	}
}

func TestHugeDebtsKeepListReadable(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	for range 2 {
		assertErrorCode(t, doRequest(h, "POST", "/v1/debts", `{"name":"Huge","balance":1e308,"minPayment":1}`),
			http.StatusBadRequest, "INVALID_INPUT")
	}
	addDebt(t, h, `{"name":"Big","balance":1e12,"rate":1000,"minPayment":1e12}`)
	addDebt(t, h, `{"name":"Big too","balance":1e12,"rate":1000,"minPayment":1e12}`)

	rec := doRequest(h, "GET", "/v1/debts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d: %s", rec.Code, rec.Body.String())
	}
	if n := len(parseJSON(t, rec)["debts"].([]any)); n != 2 {
		t.Fatalf("debts = %d, want 2", n)
	}
}

func TestUnencodableSummaryIsAnError(t *testing.T) {
	s, store := newTestServer(t)
	h := s.Handler()

	raw := `[{"id":"a","name":"A","balance":1e308,"originalBalance":1e308,"minPayment":1},` +
		`{"id":"b","name":"B","balance":1e308,"originalBalance":1e308,"minPayment":1}]`
	if err := store.Set(context.Background(), ledger.KeyDebts, []byte(raw)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	assertErrorCode(t, doRequest(h, "GET", "/v1/debts", ""), http.StatusInternalServerError, "MALFORMED_DATA")
	assertErrorCode(t, doRequest(h, "GET", "/v1/status", ""), http.StatusInternalServerError, "MALFORMED_DATA")
}

func TestPatchUnknownAndEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	assertErrorCode(t, doRequest(h, "PATCH", "/v1/debts/nope", `{"rate":3}`), http.StatusNotFound, "DEBT_NOT_FOUND")
	assertErrorCode(t, doRequest(h, "PATCH", "/v1/debts/nope", `{}`), http.StatusBadRequest, "INVALID_INPUT")
}

func TestRecordPayment(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	id := addDebt(t, h, `{"name":"Visa","balance":1000,"rate":19.9,"minPayment":50}`)["id"].(string)

	rec := doRequest(h, "POST", "/v1/payments", `{"debtId":"`+id+`","amount":1200}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment status = %d: %s", rec.Code, rec.Body.String())
	}
	body := parseJSON(t, rec)
	if body["orphan"] != false {
		t.Fatalf("orphan = %v, want false", body["orphan"])
	}
	if bal := body["debt"].(map[string]any)["balance"].(float64); bal != 0 {
		t.Fatalf("balance = %v, want 0 (floored)", bal)
	}

	rec = doRequest(h, "POST", "/v1/payments", `{"debtId":"gone","amount":10}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("orphan payment status = %d", rec.Code)
	}
	if parseJSON(t, rec)["orphan"] != true {
		t.Fatal("payment against unknown debt should be reported as orphan")
	}

	body = parseJSON(t, doRequest(h, "GET", "/v1/payments?debt="+id, ""))
	if n := len(body["payments"].([]any)); n != 1 {
		t.Fatalf("payments for debt = %d, want 1", n)
	}
	if body["total"].(float64) != 1200 {
		t.Fatalf("total = %v, want 1200", body["total"])
	}

	assertErrorCode(t, doRequest(h, "POST", "/v1/payments", `{"debtId":"`+id+`","amount":-5}`), http.StatusBadRequest, "INVALID_INPUT")
}

func TestDebtProjection(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	id := addDebt(t, h, `{"name":"Visa","balance":1000,"rate":19.9,"minPayment":50}`)["id"].(string)

	body := parseJSON(t, doRequest(h, "GET", "/v1/debts/"+id+"/projection?limit=3", ""))
	if body["months"].(float64) != 25 {
		t.Fatalf("months = %v, want 25", body["months"])
	}
	if n := len(body["schedule"].([]any)); n != 3 {
		t.Fatalf("schedule = %d entries, want 3", n)
	}
	if !strings.HasPrefix(body["payoffDate"].(string), "2028-02-01") {
		t.Fatalf("payoffDate = %v, want 2028-02-01", body["payoffDate"])
	}

	body = parseJSON(t, doRequest(h, "GET", "/v1/debts/"+id+"/projection?payment=16", ""))
	if body["never"] != true || body["months"].(float64) != -1 {
		t.Fatalf("payment below interest: never=%v months=%v", body["never"], body["months"])
	}
	if _, ok := body["payoffDate"]; ok {
		t.Fatal("payoffDate should be omitted when never paid off")
	}

	assertErrorCode(t, doRequest(h, "GET", "/v1/debts/"+id+"/projection?payment=abc", ""), http.StatusBadRequest, "INVALID_INPUT")
	assertErrorCode(t, doRequest(h, "GET", "/v1/debts/missing/projection", ""), http.StatusNotFound, "DEBT_NOT_FOUND")
}

func TestInvestmentProjection(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	body := parseJSON(t, doRequest(h, "GET", "/v1/projection/investment", ""))
	if body["contributed"].(float64) != 12000 {
		t.Fatalf("contributed = %v, want 12000", body["contributed"])
	}
	if fv := body["futureValue"].(float64); fv < 17308 || fv > 17309 {
		t.Fatalf("futureValue = %v, want ~17308.48", fv)
	}
	if n := len(body["byYear"].([]any)); n != 10 {
		t.Fatalf("byYear = %d, want 10", n)
	}

	body = parseJSON(t, doRequest(h, "GET", "/v1/projection/investment?monthly=0", ""))
	if body["futureValue"].(float64) != 0 {
		t.Fatalf("futureValue = %v, want 0", body["futureValue"])
	}
	assertErrorCode(t, doRequest(h, "GET", "/v1/projection/investment?years=NaN", ""), http.StatusBadRequest, "INVALID_INPUT")
	assertErrorCode(t, doRequest(h, "GET", "/v1/projection/investment?monthly=100&return=1000&years=100", ""),
		http.StatusBadRequest, "INVALID_INPUT")
}

func TestAccountAndTheme(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	body := parseJSON(t, doRequest(h, "GET", "/v1/account", ""))
	if body["name"] != "Friend" {
		t.Fatalf("name = %v, want Friend", body["name"])
	}

	rec := doRequest(h, "PATCH", "/v1/account", `{"displayName":" Ada ","onboardingComplete":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch account = %d: %s", rec.Code, rec.Body.String())
	}
	acct := parseJSON(t, rec)["account"].(map[string]any)
	if acct["displayName"] != "Ada" || acct["onboardingComplete"] != true {
		t.Fatalf("account = %v", acct)
	}
	assertErrorCode(t, doRequest(h, "PATCH", "/v1/account", `{"onboardingComplete":false}`), http.StatusBadRequest, "INVALID_INPUT")

	rec = doRequest(h, "PUT", "/v1/theme", `{"id":"tokyo-night"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put theme = %d: %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, doRequest(h, "GET", "/v1/theme", ""))["id"]; got != "tokyo-night" {
		t.Fatalf("theme = %v, want tokyo-night", got)
	}
	assertErrorCode(t, doRequest(h, "PUT", "/v1/theme", `{"id":"neon"}`), http.StatusBadRequest, "UNKNOWN_THEME")
}

func TestClearData(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	addDebt(t, h, `{"name":"Visa","balance":1000,"rate":19.9,"minPayment":50}`)
	oldID := s.prefs.Account().ID

	if rec := doRequest(h, "DELETE", "/v1/data", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear = %d", rec.Code)
	}
	if n := len(parseJSON(t, doRequest(h, "GET", "/v1/debts", ""))["debts"].([]any)); n != 0 {
		t.Fatalf("debts after clear = %d, want 0", n)
	}
	if s.prefs.Account().ID != oldID {
		t.Fatal("account should survive a data-only clear")
	}

	if rec := doRequest(h, "DELETE", "/v1/data?account=true", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear account = %d", rec.Code)
	}
	if s.prefs.Account().ID == oldID {
		t.Fatal("account id not regenerated")
	}
}

func TestStoreErrorsMapToStatus(t *testing.T) {
	s, store := newTestServer(t)
	h := s.Handler()

	store.Fail(kv.ErrUnavailable, "get")
	assertErrorCode(t, doRequest(h, "GET", "/v1/debts", ""), http.StatusServiceUnavailable, "STORE_UNAVAILABLE")

	store.Fail(nil)
	if err := store.Set(context.Background(), ledger.KeyDebts, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	assertErrorCode(t, doRequest(h, "GET", "/v1/debts", ""), http.StatusInternalServerError, "MALFORMED_DATA")
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	assertErrorCode(t, doRequest(s.Handler(), "GET", "/v2/nothing", ""), http.StatusNotFound, "NOT_FOUND")
}

func TestEventsRingBuffer(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	for _, name := range []string{"A", "B", "C", "D"} {
		addDebt(t, h, `{"name":"`+name+`","balance":100,"rate":0,"minPayment":10}`)
	}

	body := parseJSON(t, doRequest(h, "GET", "/v1/events", ""))
	events := body["events"].([]any)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	first := events[0].(map[string]any)
	if first["id"].(float64) != 2 || first["type"] != EventDebtAdded {
		t.Fatalf("oldest event = %v, want id 2 debt_added", first)
	}
	last := events[2].(map[string]any)["summary"].(map[string]any)
	if last["debts"].(float64) != 4 {
		t.Fatalf("latest summary debts = %v, want 4", last["debts"])
	}
}

func TestPublishReachesSubscribers(t *testing.T) {
	s, _ := newTestServer(t)
	ch := make(chan Event, 1)
	id := s.addSubscriber(ch)

	s.publish(EventThemeChanged, "terminal", calc.Summary{})
	select {
	case ev := <-ch:
		if ev.Type != EventThemeChanged || ev.Subject != "terminal" {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	s.removeSubscriber(id)
	s.publish(EventThemeChanged, "terminal", calc.Summary{})
	if len(ch) != 0 {
		t.Fatal("removed subscriber still receives events")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(b) != "ok\n" {
		t.Fatalf("healthz body = %q", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
