package model

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewAPIError(errReason error) APIError {
	switch errReason.Error() {
	case "USER_NOT_FOUND":
		return APIError{
			Code:    "USER_NOT_FOUND",
			Message: "user not found. check the username and try again",
		}

	case "REPOSITORY_NOT_FOUND":
		return APIError{
			Code:    "REPOSITORY_NOT_FOUND",
			Message: "repository not found. check the owner and repository name and try again",
		}

	case "RATE_LIMIT_REACHED":
		return APIError{
			Code:    "RATE_LIMIT_REACHED",
			Message: "github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
		}

	case "FETCH_ERROR":
		return APIError{
			Code:    "FETCH_ERROR",
			Message: "unable to fetch data from github. try again later",
		}

	default:
		return APIError{
			Code:    errReason.Error(),
			Message: "internal server error. contact our support with the reason code for assistance",
		}
	}
}

// HTTPStatus maps a service error to the status code returned to the caller
func HTTPStatus(errReason error) int {
	switch errReason.Error() {
	case "USER_NOT_FOUND", "REPOSITORY_NOT_FOUND":
		return http.StatusNotFound
	case "RATE_LIMIT_REACHED":
		return http.StatusForbidden
	case "FETCH_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// OAuthExchangeError carries the error and description returned by GitHub
// when an authorization code exchange is rejected. It is passed through to
// the caller instead of being collapsed into a generic error.
type OAuthExchangeError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *OAuthExchangeError) Error() string {
	return fmt.Sprintf("github rejected the code exchange: %s (%s)", e.Code, e.Description)
}
