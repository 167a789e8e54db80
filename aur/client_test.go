package aur_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacbucket/pacbucket/aur"
)

func TestVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("v"))
		assert.Equal(t, "info", q.Get("type"))
		assert.ElementsMatch(t, []string{"localsend-bin", "yay-git", "not-a-package"}, q["arg[]"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"type": "multiinfo",
			"resultcount": 2,
			"results": [
				{"Name": "localsend-bin", "Version": "1.14.4-1"},
				{"Name": "yay-git", "Version": "12.3.5.r0.g1234abc-1"}
			]
		}`))
	}))
	defer srv.Close()

	client := aur.NewClient(aur.WithBaseURL(srv.URL))

	versions, err := client.Versions(context.Background(), []string{"localsend-bin", "yay-git", "not-a-package"})
	require.NoError(t, err)

	// Unknown packages are absent rather than an error.
	assert.Equal(t, map[string]string{
		"localsend-bin": "1.14.4-1",
		"yay-git":       "12.3.5.r0.g1234abc-1",
	}, versions)
}

func TestVersions_EmptyNames(t *testing.T) {
	client := aur.NewClient(aur.WithBaseURL("http://aur.invalid"))

	versions, err := client.Versions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestVersions_RPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type": "error", "error": "Incorrect request type specified."}`))
	}))
	defer srv.Close()

	client := aur.NewClient(aur.WithBaseURL(srv.URL))

	_, err := client.Versions(context.Background(), []string{"anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect request type specified.")
}

func TestVersions_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := aur.NewClient(aur.WithBaseURL(srv.URL))

	_, err := client.Versions(context.Background(), []string{"anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestVersions_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := aur.NewClient(aur.WithBaseURL(srv.URL))

	_, err := client.Versions(context.Background(), []string{"anything"})
	assert.Error(t, err)
}
