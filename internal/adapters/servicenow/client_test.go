package servicenow_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/changebot/internal/adapters/servicenow"
	"github.com/DanielPopoola/changebot/internal/config"
	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}
		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			assert.NoError(t, json.Unmarshal(body, &rec.Body))
		}
		requests = append(requests, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func newClient(baseURL string) *servicenow.HTTPChangeClient {
	return servicenow.NewChangeClient(config.ServiceNowConfig{
		Instance:     "example.service-now.com",
		APIKey:       "secret-key",
		APIKeyHeader: "x-sn-apikey",
		APIPath:      "/api/sn_chg_rest/change",
		BaseURL:      baseURL + "/api/sn_chg_rest/change",
		ConnTimeout:  5 * time.Second,
	}).(*servicenow.HTTPChangeClient)
}

func testDraft() domain.ChangeRequestDraft {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return domain.NewPayloadBuilder(domain.DraftDefaults{
		AssignmentGroup: "Help Desk",
		Service:         "SAP Payroll",
	}, time.UTC).Build(domain.TimeWindow{Start: now, End: now.Add(5 * time.Minute)}, now, domain.OverrideSet{"u_custom": "x"})
}

func TestHTTPChangeClient_Create(t *testing.T) {
	srv, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":{"sys_id":{"value":"abc123","display_value":"abc123"},"number":{"value":"CHG0030001","display_value":"CHG0030001"}}}`))
	})
	client := newClient(srv.URL)

	resp, err := client.Create(context.Background(), testDraft())

	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Result.SysID.String())
	assert.Equal(t, domain.FieldReference, resp.Result.SysID.Kind)
	assert.Equal(t, "CHG0030001", resp.Result.Number.String())
	assert.NotEmpty(t, resp.Raw)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/sn_chg_rest/change", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "secret-key", req.Header.Get("x-sn-apikey"))
	assert.Equal(t, "SAP Payroll", req.Body["service"])
	assert.Equal(t, "x", req.Body["u_custom"])
	assert.Equal(t, "2026-03-14 09:00:00", req.Body["planned_start_date"])
}

func TestHTTPChangeClient_Create_ScalarSysID(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"sys_id":"abc123"}}`))
	})

	resp, err := newClient(srv.URL).Create(context.Background(), testDraft())

	require.NoError(t, err)
	assert.Equal(t, domain.FieldScalar, resp.Result.SysID.Kind)
	assert.Equal(t, "abc123", resp.Result.SysID.String())
}

func TestHTTPChangeClient_Create_ErrorPayload(t *testing.T) {
	body := `{"error":{"message":"Operation Failed","detail":"Invalid assignment group"},"status":"failure"}`
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(body))
	})

	resp, err := newClient(srv.URL).Create(context.Background(), testDraft())

	require.Error(t, err)
	assert.Nil(t, resp)

	apiErr, ok := servicenow.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Operation Failed", apiErr.Message)
	assert.Equal(t, "Invalid assignment group", apiErr.Detail)
	assert.Equal(t, body, domain.ErrorPayload(err))
}

func TestHTTPChangeClient_Create_ServerErrorWithoutJSON(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := newClient(srv.URL).Create(context.Background(), testDraft())

	require.Error(t, err)
	assert.EqualError(t, err, "servicenow returned status 500")
	assert.Equal(t, "servicenow returned status 500", domain.ErrorPayload(err))
}

func TestHTTPChangeClient_Create_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login</html>`))
	})

	_, err := newClient(srv.URL).Create(context.Background(), testDraft())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json response")
}

func TestHTTPChangeClient_UpdateState(t *testing.T) {
	srv, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := newClient(srv.URL).UpdateState(context.Background(), "abc123", domain.StateUpdateRequest{State: -4})

	require.NoError(t, err)
	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/sn_chg_rest/change/abc123", req.Path)
	assert.Equal(t, float64(-4), req.Body["state"])
	assert.Equal(t, "secret-key", req.Header.Get("x-sn-apikey"))
}

func TestHTTPChangeClient_UpdateState_AcceptsNonJSONSuccess(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	resp, err := newClient(srv.URL).UpdateState(context.Background(), "abc123", domain.StateUpdateRequest{State: 2})

	require.NoError(t, err)
	assert.Equal(t, "OK", string(resp.Raw))
}

func TestHTTPChangeClient_UpdateState_Rejected(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"State transition not allowed"},"status":"failure"}`))
	})

	_, err := newClient(srv.URL).UpdateState(context.Background(), "abc123", domain.StateUpdateRequest{State: 3})

	apiErr, ok := servicenow.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "State transition not allowed", apiErr.Message)
}

func TestHTTPChangeClient_Get(t *testing.T) {
	srv, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"sys_id":{"value":"abc123","display_value":"abc123"},"state":{"value":"-4","display_value":"Assess"}}}`))
	})

	resp, err := newClient(srv.URL).Get(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "-4", resp.Result.State.String())
	assert.Equal(t, "Assess", resp.Result.State.DisplayValue)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/api/sn_chg_rest/change/abc123", (*requests)[0].Path)
}

func TestHTTPChangeClient_ContextCanceled(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"sys_id":"abc123"}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv.URL).Create(ctx, testDraft())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceNowConfig_ChangeURL(t *testing.T) {
	cfg := config.ServiceNowConfig{Instance: "dev1.service-now.com", APIPath: "/api/sn_chg_rest/change"}
	assert.Equal(t, "https://dev1.service-now.com/api/sn_chg_rest/change", cfg.ChangeURL())

	cfg.BaseURL = "http://127.0.0.1:8080/change/"
	assert.Equal(t, "http://127.0.0.1:8080/change", cfg.ChangeURL())
}
