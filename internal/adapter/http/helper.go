package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "loan-portal/internal/adapter/middleware"
	"loan-portal/internal/domain/identity"
	"loan-portal/pkg/id"
)

// bind decodes and validates the body into req. On failure it has already
// written the response and returns false.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func pathID(c echo.Context, name string) (string, bool, error) {
	v := c.Param(name)
	if v == "" {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
	}
	if !id.Valid(v) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
	}
	return v, true, nil
}

func session(c echo.Context) (identity.Session, bool, error) {
	s, ok := mw.CurrentSession(c)
	if !ok {
		return s, false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	return s, true, nil
}
