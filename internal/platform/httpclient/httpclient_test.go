package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestDoJSON_SendsAuthAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/things", r.URL.Path)
		assert.Equal(t, "x", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/api/v1/", Token: "secret"})
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "things", url.Values{"q": {"x"}}, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusConflict)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusCode(err))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "nope", he.Body)
}
