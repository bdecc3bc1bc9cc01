package middleware

import (
	"net/http"

	"beacon/api/models/constants/chromosome"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a `referenceName` HTTP query
	parameter names a human chromosome if provided (presence
	itself is the validator's concern, not ours)
*/
func ValidateOptionalReferenceNameAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		referenceNameQP := c.QueryParam("referenceName")
		if len(referenceNameQP) > 0 && !chromosome.IsValidHumanChromosome(referenceNameQP) {
			// if an invalid chromosome was provided, return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid referenceName! Use 1-22, X, Y or MT")
		}

		return next(c)
	}
}
