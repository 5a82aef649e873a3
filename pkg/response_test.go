package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResponseBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteResponseBytes(rr, ContentType.JSON, []byte(`{"deleted":2}`), http.StatusAccepted)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, ContentType.JSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"deleted":2}`, rr.Body.String())

	// no content type given, none set
	rr = httptest.NewRecorder()
	WriteResponseBytes(rr, "", nil, http.StatusNoContent)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Type"))
}

func TestWriteTextResponseOK(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteTextResponseOK(rr, "I'm OK, thanks ;)")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType.Text, rr.Header().Get("Content-Type"))
	assert.Equal(t, "I'm OK, thanks ;)", rr.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, map[string]any{"plan": nil}, http.StatusOK)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType.JSON, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"plan":null}`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteJSON(rr, map[string]any{"ch": make(chan int)}, http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
