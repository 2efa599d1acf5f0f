package workflow

import (
	"strings"
	"unicode"

	"github.com/valyala/fasttemplate"

	"github.com/holon-run/gitflow/pkg/forge"
)

// Humanize turns a branch name into a pull request title: dashes and
// underscores become spaces and every word is title-cased, where a word
// starts at any letter that follows a non-letter ("fix-login-bug" becomes
// "Fix Login Bug", "feature/v2fix" becomes "Feature/V2Fix").
func Humanize(branch string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(branch)

	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, c := range s {
		cased := unicode.IsUpper(c) || unicode.IsLower(c) || unicode.IsTitle(c)
		switch {
		case cased && !prevCased:
			b.WriteRune(unicode.ToTitle(c))
		case cased:
			b.WriteRune(unicode.ToLower(c))
		default:
			b.WriteRune(c)
		}
		prevCased = cased
	}
	return b.String()
}

// Placeholders recognised in commit messages.
const (
	tagBranch     = "branch"
	tagRepository = "repository"
	tagDate       = "date"
)

// stamp expands {branch}, {repository} and {date} in a commit message.
// Unknown placeholders are left as written.
func (r *Runner) stamp(message, branch string, ref *forge.RepoRef) string {
	if !strings.Contains(message, "{") {
		return message
	}

	values := map[string]any{
		tagBranch: branch,
		tagDate:   r.now().Format("2006-01-02"),
	}
	if ref != nil {
		values[tagRepository] = ref.Name
	}
	return fasttemplate.ExecuteStringStd(message, "{", "}", values)
}
