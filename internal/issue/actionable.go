// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error that says what was being done, on what,
	// and how the user can fix it.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("decode input").
	//		WithResource("stdin").
	//		WithSuggestion("Retry with --mode lenient").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "decode input".
		Operation string
		// Resource names the file, argument or vector involved. Optional.
		Resource string
		// Suggestions are shown as a bullet list under the message.
		Suggestions []string
		// Issue links the error to a catalog entry. Zero when none applies.
		Issue Id
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext builds an ActionableError step by step.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation wraps err with an operation and the suggestions of the
// catalog entry err classifies to. It returns nil for a nil err.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return NewErrorContext().WithOperation(operation).Wrap(err).Build()
}

// Error returns "failed to <operation>: <resource>: <cause>".
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message and its suggestions. In verbose mode the
// unwrapped error chain is appended, one numbered line per level.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return msg.String()
}

// WithOperation sets the operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a suggestion. Duplicates are dropped.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	for _, have := range c.suggestions {
		if have == s {
			return c
		}
	}
	c.suggestions = append(c.suggestions, s)
	return c
}

// WithIssue links a catalog entry and adds its suggestions.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	if is := Get(id); is != nil {
		for _, s := range is.suggestions {
			c.WithSuggestion(s)
		}
	}
	return c
}

// Wrap sets the cause. When no issue has been linked yet, the cause is
// classified and the matching catalog entry is linked.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	if c.issue == 0 {
		if id := Classify(err); id != 0 {
			c.WithIssue(id)
		}
	}
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build returning an error interface, so that a missing
// operation yields an untyped nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
