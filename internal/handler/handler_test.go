package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeData unwraps a {"success": true, "data": ...} response into v
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "body: %s", rr.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	return body
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestWriteData(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteData(rr, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, rr.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Identifier string `json:"identifier"`
	}
	err := DecodeJSON(makeJSONRequest(http.MethodPost, "/", `{"identifier":"a","extra":1}`), &v)
	assert.Error(t, err)
}
