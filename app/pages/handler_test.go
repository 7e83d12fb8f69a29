package pages

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesanatorium/website/internal/web"
)

func TestPages(t *testing.T) {
	rn, err := web.NewRenderer()
	require.NoError(t, err)
	h := NewPageHandler(rn)

	testCases := []struct {
		name         string
		handler      http.HandlerFunc
		path         string
		expectedCode int
		expectedText string
	}{
		{name: "About", handler: h.HandleAbout, path: "/about", expectedCode: http.StatusOK, expectedText: "<title>About | The Sanatorium</title>"},
		{name: "Contact", handler: h.HandleContact, path: "/contact", expectedCode: http.StatusOK, expectedText: "<title>Contact | The Sanatorium</title>"},
		{name: "Not found", handler: h.HandleNotFound, path: "/nowhere", expectedCode: http.StatusNotFound, expectedText: "does not exist"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.handler(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tc.expectedText)
		})
	}
}
