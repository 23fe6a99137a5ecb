package http_util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/labstack/echo"
)

type HTTPResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

type HTTPErrorResponse[T any] struct {
	HTTPResponse[T]
	Errors []ErrorResponse `json:"errors"`
}

type Validate interface {
	Validate(ctx context.Context) (problems map[string][]string)
}

func Encode[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, v)
}

func Decode[T any](c echo.Context) (T, error) {
	var v T
	if err := c.Bind(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func DecodeBody[T any](body []byte, v T) (T, error) {
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// EncodeError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is reported as a 500 with a generic detail.
func EncodeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	detail := "internal error"

	switch {
	case errors.Is(err, entity.ErrSelfSwipe),
		errors.Is(err, entity.ErrInvalidDecision),
		errors.Is(err, entity.ErrEmptyMessage):
		status = http.StatusBadRequest
		detail = err.Error()
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
		detail = err.Error()
	case errors.Is(err, entity.ErrTargetNotFound),
		errors.Is(err, entity.ErrPairingNotFound):
		status = http.StatusNotFound
		detail = err.Error()
	case errors.Is(err, entity.ErrDuplicateDecision):
		status = http.StatusConflict
		detail = err.Error()
	}

	return c.JSON(status, HTTPErrorResponse[struct{}]{
		HTTPResponse: HTTPResponse[struct{}]{
			Message: http.StatusText(status),
		},
		Errors: []ErrorResponse{{Property: "request", Detail: detail}},
	})
}

// EncodeProblems reports request-validation problems in the same envelope.
func EncodeProblems(c echo.Context, problems map[string][]string) error {
	errs := make([]ErrorResponse, 0, len(problems))
	for property, details := range problems {
		for _, detail := range details {
			errs = append(errs, ErrorResponse{Property: property, Detail: detail})
		}
	}

	return c.JSON(http.StatusBadRequest, HTTPErrorResponse[struct{}]{
		HTTPResponse: HTTPResponse[struct{}]{
			Message: "Bad request check your request",
		},
		Errors: errs,
	})
}
