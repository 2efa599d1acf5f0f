package workflow

import (
	"errors"
	"fmt"

	"github.com/holon-run/gitflow/pkg/forge"
	"github.com/holon-run/gitflow/pkg/git"
)

// Actions, one per command.
const (
	ActionCreate = "create"
	ActionPush   = "push"
	ActionCommit = "commit"
	ActionBranch = "branch"
	ActionPR     = "pr"
)

// Status is the outcome of a command.
type Status string

const (
	StatusCreated   Status = "created"
	StatusSuccess   Status = "success"
	StatusNoChanges Status = "no_changes"
	StatusFailed    Status = "failed"
)

// Error codes reported in Result.Error.
const (
	CodeTokenMissing         = "token_missing"
	CodeInvalidConfig        = "invalid_config"
	CodeNameRequired         = "name_required"
	CodeBranchNameRequired   = "branch_name_required"
	CodePathNotFound         = "path_not_found"
	CodeNotAGitRepo          = "not_a_git_repo"
	CodeNoRemoteInfo         = "no_remote_info"
	CodeInvalidBranch        = "invalid_branch"
	CodeGitInitFailed        = "git_init_failed"
	CodeGitAddFailed         = "git_add_failed"
	CodeGitStatusFailed      = "git_status_failed"
	CodeGitCommitFailed      = "git_commit_failed"
	CodeGitRemoteFailed      = "git_remote_failed"
	CodeGitCheckoutFailed    = "git_checkout_failed"
	CodeGitPushFailed        = "git_push_failed"
	CodeRepositoryExists     = "repository_exists"
	CodeAuthenticationFailed = "authentication_failed"
	CodeRequestFailed        = "request_failed"
	CodeUserLookupFailed     = "user_lookup_failed"
)

// Result is the single record produced by every command invocation.
type Result struct {
	Action         string `json:"action" yaml:"action"`
	Status         Status `json:"status" yaml:"status"`
	Repository     string `json:"repository,omitempty" yaml:"repository,omitempty"`
	URL            string `json:"url,omitempty" yaml:"url,omitempty"`
	Private        *bool  `json:"private,omitempty" yaml:"private,omitempty"`
	Push           *bool  `json:"push,omitempty" yaml:"push,omitempty"`
	Branch         string `json:"branch,omitempty" yaml:"branch,omitempty"`
	PreviousBranch string `json:"previous_branch,omitempty" yaml:"previous_branch,omitempty"`
	LocalPath      string `json:"local_path,omitempty" yaml:"local_path,omitempty"`
	PushStatus     Status `json:"push_status,omitempty" yaml:"push_status,omitempty"`
	Message        string `json:"message,omitempty" yaml:"message,omitempty"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Head           string `json:"head,omitempty" yaml:"head,omitempty"`
	Base           string `json:"base,omitempty" yaml:"base,omitempty"`
	PRNumber       int    `json:"pr_number,omitempty" yaml:"pr_number,omitempty"`
	PRURL          string `json:"pr_url,omitempty" yaml:"pr_url,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	HTTPStatus     int    `json:"http_status,omitempty" yaml:"http_status,omitempty"`

	// Detail carries git's diagnostic output or the underlying error text.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Failed reports whether the invocation must exit non-zero.
func (r *Result) Failed() bool {
	return r.Status == StatusFailed || r.PushStatus == StatusFailed
}

// Failure is a classified workflow error.
type Failure struct {
	Code string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Code
	}
	return fmt.Sprintf("%s: %v", f.Code, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// fail wraps err with a failure code.
func fail(code string, err error) *Failure {
	return &Failure{Code: code, Err: err}
}

// NewFailedResult builds a failed result for errors raised before a command
// runs, such as a missing credential or an unreadable config file.
func NewFailedResult(action, code string, err error) *Result {
	res := &Result{Action: action}
	res.markFailed(fail(code, err))
	return res
}

// markFailed records err on the result. Failures without a code are
// reported as request failures.
func (r *Result) markFailed(err error) {
	r.Status = StatusFailed

	var f *Failure
	if !errors.As(err, &f) {
		f = fail(CodeRequestFailed, err)
	}
	r.Error = f.Code
	r.Detail = detailOf(f.Err)
	if status := forge.StatusCode(f.Err); status != 0 {
		r.HTTPStatus = status
	}
}

func detailOf(err error) string {
	if err == nil {
		return ""
	}
	if d := git.Diagnostic(err); d != "" {
		return d
	}
	return err.Error()
}

func boolPtr(v bool) *bool {
	return &v
}
