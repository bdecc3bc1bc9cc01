package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func runMiddleware(method string, target string, mw echo.MiddlewareFunc) (error, bool) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerHit := false
	err := mw(func(c echo.Context) error {
		handlerHit = true
		return c.NoContent(http.StatusOK)
	})(c)

	return err, handlerHit
}

func TestValidateOptionalGranularityAttribute(t *testing.T) {
	t.Run("known values and absence pass through", func(t *testing.T) {
		for _, target := range []string{
			"/query?includeDatasetResponses=HIT",
			"/query?includeDatasetResponses=all",
			"/query",
		} {
			err, handlerHit := runMiddleware(http.MethodGet, target, ValidateOptionalGranularityAttribute)
			assert.Nil(t, err, target)
			assert.True(t, handlerHit, target)
		}
	})

	t.Run("unknown values are rejected on any method", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			err, handlerHit := runMiddleware(method,
				"/query?includeDatasetResponses=SOME", ValidateOptionalGranularityAttribute)

			assert.False(t, handlerHit, method)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok, method)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code, method)
		}
	})
}

func TestValidateOptionalReferenceNameAttribute(t *testing.T) {
	t.Run("human chromosomes and absence pass through", func(t *testing.T) {
		for _, target := range []string{
			"/query?referenceName=1",
			"/query?referenceName=MT",
			"/query",
		} {
			err, handlerHit := runMiddleware(http.MethodGet, target, ValidateOptionalReferenceNameAttribute)
			assert.Nil(t, err, target)
			assert.True(t, handlerHit, target)
		}
	})

	t.Run("invalid chromosomes are rejected on any method", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			err, handlerHit := runMiddleware(method,
				"/query?referenceName=chr25", ValidateOptionalReferenceNameAttribute)

			assert.False(t, handlerHit, method)

			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok, method)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code, method)
		}
	})
}
