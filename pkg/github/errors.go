package github

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v68/github"

	"github.com/holon-run/gitflow/pkg/forge"
)

// unknownError is reported when GitHub returns no message.
const unknownError = "Unknown error"

// toAPIError converts a go-github error into a *forge.APIError. kind picks
// the failure class from the status code.
func toAPIError(resp *github.Response, err error, kind func(int) error) *forge.APIError {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &forge.APIError{
			StatusCode:  statusOf(rateErr.Response),
			Message:     rateErr.Message,
			Kind:        forge.ErrRequestFailed,
			RateLimited: true,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &forge.APIError{
			StatusCode:  statusOf(abuseErr.Response),
			Message:     abuseErr.Message,
			Kind:        forge.ErrRequestFailed,
			RateLimited: true,
		}
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		status := statusOf(errResp.Response)
		return &forge.APIError{StatusCode: status, Message: errResp.Message, Kind: kind(status)}
	}

	// Transport failures carry no response.
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &forge.APIError{StatusCode: status, Message: msg, Kind: kind(status)}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// createRepoKind classifies repository creation failures.
func createRepoKind(status int) error {
	switch status {
	case http.StatusUnprocessableEntity:
		return forge.ErrRepositoryExists
	case http.StatusUnauthorized:
		return forge.ErrAuthentication
	default:
		return forge.ErrRequestFailed
	}
}

// userKind classifies identity lookup failures.
func userKind(status int) error {
	if status == http.StatusUnauthorized {
		return forge.ErrAuthentication
	}
	return forge.ErrUnexpectedStatus
}

// pullRequestKind classifies pull request failures; all are reported with
// the remote message verbatim.
func pullRequestKind(status int) error {
	if status == http.StatusUnauthorized {
		return forge.ErrAuthentication
	}
	return forge.ErrRequestFailed
}
