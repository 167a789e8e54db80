package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	pbhttp "github.com/pacbucket/pacbucket/http"
)

func TestWriteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	pbhttp.WriteNotFound(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}
