package dispatch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacbucket/pacbucket/dispatch"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := dispatch.NewClient(dispatch.Config{Repository: "owner/repo"})
	assert.ErrorContains(t, err, "token")

	_, err = dispatch.NewClient(dispatch.Config{Token: "tok"})
	assert.ErrorContains(t, err, "repository")
}

func TestTriggerBuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/owner/repo/actions/workflows/build.yml/dispatches", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))

		var payload struct {
			Ref    string            `json:"ref"`
			Inputs map[string]string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "master", payload.Ref)
		assert.Equal(t, map[string]string{"repo-name": "localsend-bin"}, payload.Inputs)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := dispatch.NewClient(
		dispatch.Config{Token: "tok", Repository: "owner/repo"},
		dispatch.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)

	assert.NoError(t, client.TriggerBuild(context.Background(), "localsend-bin"))
}

func TestTriggerBuild_CustomWorkflowAndRef(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/actions/workflows/rebuild.yml/dispatches", r.URL.Path)

		var payload struct {
			Ref string `json:"ref"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "main", payload.Ref)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := dispatch.NewClient(
		dispatch.Config{Token: "tok", Repository: "owner/repo", Workflow: "rebuild.yml", Ref: "main"},
		dispatch.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)

	assert.NoError(t, client.TriggerBuild(context.Background(), "pkg"))
}

func TestTriggerBuild_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := dispatch.NewClient(
		dispatch.Config{Token: "bad", Repository: "owner/repo"},
		dispatch.WithBaseURL(srv.URL),
	)
	require.NoError(t, err)

	err = client.TriggerBuild(context.Background(), "pkg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
