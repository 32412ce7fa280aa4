package skills

import (
	"fmt"

	"github.com/pkg/errors"
)

// Format violations are distinct sentinels so callers can report exactly
// which rule a malformed SKILL.md breaks. They survive wrapping and can
// be matched with errors.Is.
var (
	ErrMissingOpenDelimiter  = errors.New("missing opening frontmatter delimiter")
	ErrMissingCloseDelimiter = errors.New("missing closing frontmatter delimiter")
	ErrMissingName           = errors.New("missing name field in frontmatter")
	ErrMissingDescription    = errors.New("missing description field in frontmatter")
)

// NotFoundError reports a skill name absent from the most recent
// registry snapshot.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("skill %q not found; run discovery again to pick up newly added skills", e.Name)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
