package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/abhinaya/internal/store"
)

func newTestHandler(t *testing.T) (*AssetHandler, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewAssetHandler(st), st
}

func doRequest(h *AssetHandler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAsset(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/api/assets",
		`{"category":"wave","name":"hello","path":"/assets/wave/hello.gif"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp assetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "wave", resp.Category)
	assert.Equal(t, "hello", resp.Name)
}

func TestCreateAssetValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/api/assets", `{"category":"wave"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/assets", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDuplicateAsset(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"category":"wave","name":"hello"}`
	require.Equal(t, http.StatusCreated, doRequest(h, http.MethodPost, "/api/assets", body).Code)
	assert.Equal(t, http.StatusConflict, doRequest(h, http.MethodPost, "/api/assets", body).Code)
}

func TestListAssets(t *testing.T) {
	h, st := newTestHandler(t)

	require.NoError(t, st.Assets().Create(&store.Asset{Category: "wave", Name: "a"}))
	require.NoError(t, st.Assets().Create(&store.Asset{Category: "happy", Name: "b"}))

	rec := doRequest(h, http.MethodGet, "/api/assets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listAssetsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Assets, 2)
}

func TestGetAsset(t *testing.T) {
	h, st := newTestHandler(t)

	a := &store.Asset{Category: "wave", Name: "hello"}
	require.NoError(t, st.Assets().Create(a))

	rec := doRequest(h, http.MethodGet, "/api/assets/"+a.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp assetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, a.ID, resp.ID)
}

func TestGetAssetNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/api/assets/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAsset(t *testing.T) {
	h, st := newTestHandler(t)

	a := &store.Asset{Category: "wave", Name: "hello"}
	require.NoError(t, st.Assets().Create(a))

	assert.Equal(t, http.StatusNoContent, doRequest(h, http.MethodDelete, "/api/assets/"+a.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(h, http.MethodDelete, "/api/assets/"+a.ID, "").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(h, http.MethodPut, "/api/assets", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(h, http.MethodPost, "/api/assets/some-id", "").Code)
}
