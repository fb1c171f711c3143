package confluence

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument marks an input rejected locally, before any request is
// sent. Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// NotFoundError is returned when a space, page or attachment lookup matched
// nothing on the server.
type NotFoundError struct {
	Resource string // "space", "page" or "attachment"
	Name     string
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %q not found: %s", e.Resource, e.Name, e.Detail)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

// AmbiguousError is returned when a space name lookup matched more than one
// space. The caller should retry with the space key instead.
type AmbiguousError struct {
	Name string
	Keys []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("space name %q matches multiple spaces (%s), use the space key instead",
		e.Name, strings.Join(e.Keys, ", "))
}

// RemoteError carries a non-2xx response from the Confluence API. The body
// is the server's response text, untouched.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
