package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"medibook/internal/errors"
)

// currentUserID extracts the authenticated account id from the JWT placed in
// context by the echo-jwt middleware.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return uint(userID), nil
}

// queryUserID parses a required numeric user id query parameter.
func queryUserID(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: name + " query parameter is required",
			Code:  "VALIDATION_ERROR",
		})
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "VALIDATION_ERROR",
		})
	}
	return uint(id), nil
}

// queryInt parses an optional numeric query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

// queryCategoryIDs collects the repeated categories[] query parameter.
func queryCategoryIDs(c echo.Context) []uint {
	values := c.QueryParams()["categories[]"]
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// domainError translates a domain error into the standardized HTTP shape.
func domainError(err error) error {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
