package challenge

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallenge_GetAndPost(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 90)
	require.NoError(t, err)
	h := NewHandler(store)

	rec := httptest.NewRecorder()
	h.Challenge(rec, httptest.NewRequest(http.MethodGet, "/api/money-challenge", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Selected []int `json:"selected"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Selected)

	rec = httptest.NewRecorder()
	h.Challenge(rec, httptest.NewRequest(http.MethodPost, "/api/money-challenge",
		bytes.NewReader([]byte(`{"selected": [4, 2, 4, 91]}`))))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []int{2, 4}, resp.Selected)

	// selected must be an array
	rec = httptest.NewRecorder()
	h.Challenge(rec, httptest.NewRequest(http.MethodPost, "/api/money-challenge",
		bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Challenge(rec, httptest.NewRequest(http.MethodDelete, "/api/money-challenge", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
