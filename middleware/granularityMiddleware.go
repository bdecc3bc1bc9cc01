package middleware

import (
	"net/http"

	"beacon/api/models/constants/granularity"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure an `includeDatasetResponses` HTTP
	query parameter is a known granularity if provided
*/
func ValidateOptionalGranularityAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		granularityQP := c.QueryParam("includeDatasetResponses")
		if len(granularityQP) > 0 && !granularity.IsKnownGranularity(granularityQP) {
			// if an unknown granularity was provided, return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown includeDatasetResponses! Use one of ALL, HIT, MISS, NONE")
		}

		return next(c)
	}
}
