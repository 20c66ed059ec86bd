package adminconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMerge(t *testing.T) {
	doc := Empty()
	doc.GameCategories["doom"] = "action"
	doc.HiddenTabs = []string{"beta"}

	doc.Merge(&Document{
		GameCategories: map[string]string{"quake": "action", "doom": "finished"},
	})

	// Categories merge key-wise, hidden tabs untouched when absent.
	assert.Equal(t, map[string]string{"doom": "finished", "quake": "action"}, doc.GameCategories)
	assert.Equal(t, []string{"beta"}, doc.HiddenTabs)
	assert.False(t, doc.LastUpdated.IsZero())

	// Hidden tabs replace wholesale when present.
	doc.Merge(&Document{HiddenTabs: []string{"wip"}})
	assert.Equal(t, []string{"wip"}, doc.HiddenTabs)
}

func TestStoreLoadMissingAndCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-config.json")
	store := NewStore(path)

	doc := store.Load()
	assert.Empty(t, doc.HiddenTabs)
	assert.Empty(t, doc.GameCategories)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	doc = store.Load()
	assert.Empty(t, doc.GameCategories)
}

func TestStoreApplyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-config.json")
	store := NewStore(path)

	_, err := store.Apply(&Document{GameCategories: map[string]string{"doom": "action"}})
	require.NoError(t, err)

	// A fresh store sees the persisted document.
	doc := NewStore(path).Load()
	assert.Equal(t, "action", doc.GameCategories["doom"])
}

func testServer(t *testing.T, secret string) *httptest.Server {
	t.Helper()

	srv := NewServer(ServerConfig{
		StorePath: filepath.Join(t.TempDir(), "admin-config.json"),
		Secret:    secret,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServerRoundTrip(t *testing.T) {
	ts := testServer(t, "s3cret")
	ctx := context.Background()

	client := NewClient(ts.URL, "s3cret")

	doc, err := client.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.GameCategories)

	_, err = client.Publish(ctx, &Document{
		HiddenTabs:     []string{"beta"},
		GameCategories: map[string]string{"doom": "action"},
	})
	require.NoError(t, err)

	doc, err = client.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, doc.HiddenTabs)
	assert.Equal(t, "action", doc.GameCategories["doom"])
	assert.False(t, doc.LastUpdated.IsZero())
}

func TestServerRejectsWrongSecret(t *testing.T) {
	ts := testServer(t, "s3cret")
	ctx := context.Background()

	client := NewClient(ts.URL, "wrong")
	_, err := client.Publish(ctx, &Document{HiddenTabs: []string{"beta"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	// No secret configured disables writes entirely.
	ts = testServer(t, "")
	client = NewClient(ts.URL, "")
	_, err = client.Publish(ctx, &Document{HiddenTabs: []string{"beta"}})
	require.Error(t, err)
}

func TestServerRejectsMalformedBody(t *testing.T) {
	ts := testServer(t, "s3cret")

	resp, err := ts.Client().Post(ts.URL+"/admin-config", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	// Missing secret beats malformed body.
	assert.Equal(t, 403, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/admin-config", strings.NewReader("{not json"))
	require.NoError(t, err)
	req.Header.Set(SecretHeader, "s3cret")

	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := testServer(t, "")

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
