// Package scsserr implements the error and warning taxonomy shared by the
// evaluator, extender, and serializer: a single Error type carrying a kind,
// a source span, a message, and a call-stack of frames, plus the four
// output shapes (single-line, formatted block, CSS body, JSON) that
// compiler.Compiler's inspector methods and cmd/scssc's diagnostic printer
// both render from. Grounded on the teacher's own error strings
// (`renderer.Renderer`/`evaluator.Evaluator` return plain `fmt.Errorf`
// values with no span or stack) generalized into a structured type, since a
// source-mapped compiler needs to point back at the offending span and
// unwind the @include/@import call chain the way dart-sass's error reports
// do.
package scsserr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/titpetric/scssgo/ast"
	"github.com/titpetric/scssgo/source"
)

// Kind classifies an Error for callers that branch on it (e.g. compiler.Compiler
// deciding whether a warning should abort compilation).
type Kind string

const (
	KindSyntax      Kind = "syntax"
	KindRuntime     Kind = "runtime"
	KindUser        Kind = "error"       // raised by @error
	KindImport      Kind = "import"
	KindDeprecation Kind = "deprecation" // @warn and deprecation notices
)

// Frame is one entry in an Error's call stack: the span active when a
// @include/@import/function-call frame was entered, the construct's name,
// and whether it's "transparent" (an @import, which dart-sass's stack
// traces fold into the surrounding frame rather than showing as its own
// line).
type Frame struct {
	Span        ast.Span
	Name        string
	Transparent bool
}

// Error is a span-aware, stack-carrying compile error or warning.
type Error struct {
	Kind    Kind
	Span    ast.Span
	Message string
	Stack   []Frame

	reg *source.Registry
}

// New builds an Error. reg may be nil (e.g. for errors raised before any
// source is registered); span-aware renderers then fall back to the
// single-line form.
func New(reg *source.Registry, kind Kind, span ast.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...), reg: reg}
}

// Wrap promotes a plain error (typically from package value or package
// builtin, which have no span of their own) into a scsserr.Error at span.
func Wrap(reg *source.Registry, kind Kind, span ast.Span, err error) *Error {
	if se, ok := err.(*Error); ok {
		return se
	}
	return New(reg, kind, span, "%s", err)
}

// WithFrame returns a copy of e with frame appended to its call stack,
// innermost-first (the frame describing where evaluation currently is gets
// pushed as evaluation unwinds outward through @include/@import/function
// bodies).
func (e *Error) WithFrame(span ast.Span, name string, transparent bool) *Error {
	cp := *e
	cp.Stack = append(append([]Frame{}, e.Stack...), Frame{Span: span, Name: name, Transparent: transparent})
	return &cp
}

func (e *Error) Error() string {
	return e.Formatted()
}

// location renders "file:line:col" for span, or "-" if no registry is
// attached or the span is synthetic.
func (e *Error) location(span ast.Span) string {
	if e.reg == nil || span.IsZero() {
		return "-"
	}
	entry := e.reg.ByID(span.Source)
	off := entry.Offset(span.Start.Byte)
	return fmt.Sprintf("%s:%d:%d", entry.Path, off.Line+1, off.Column+1)
}

// Formatted is the multi-line developer-facing rendering: the message, the
// primary location, a source snippet with a caret under the offending
// span, and the call stack (innermost frame first), mirroring dart-sass's
// CLI error output.
func (e *Error) Formatted() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Error: %s\n", e.Message)
	if e.reg != nil && !e.Span.IsZero() {
		entry := e.reg.ByID(e.Span.Source)
		snippet, caretCol := e.snippet(entry)
		fmt.Fprintf(&b, "  %s\n", e.location(e.Span))
		if snippet != "" {
			fmt.Fprintf(&b, "  |\n%3d | %s\n", e.Span.Start.Line+1, snippet)
			fmt.Fprintf(&b, "  | %s^\n", spaces(caretCol))
		}
	}
	for _, f := range e.Stack {
		if f.Transparent {
			continue
		}
		fmt.Fprintf(&b, "  %s\n    %s\n", f.Name, e.location(f.Span))
	}
	return b.String()
}

func (e *Error) snippet(entry *source.Entry) (string, int) {
	lineStart, lineEnd := lineBounds(entry.Text, e.Span.Start.Line)
	if lineStart < 0 {
		return "", 0
	}
	return entry.Text[lineStart:lineEnd], e.Span.Start.Column
}

// lineBounds returns the [start, end) byte range of the given 0-based line
// within text, or (-1, -1) if text has fewer lines than that.
func lineBounds(text string, line int) (int, int) {
	cur, start := 0, 0
	found := line == 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			cur++
			if cur == line {
				start = i + 1
				found = true
			} else if cur == line+1 {
				return start, i
			}
		}
	}
	if !found {
		return -1, -1
	}
	return start, len(text)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return string(bytes.Repeat([]byte{' '}, n))
}

// CSS renders e the way dart-sass emits a failed-compile CSS document: a
// single comment plus a `body::before { content: ... }` rule so a browser
// that loads the failed stylesheet directly still shows the error text.
func (e *Error) CSS() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "/* %s */\n", oneLine(e.Message))
	fmt.Fprintf(&b, "body::before {\n  font-family: monospace;\n  white-space: pre;\n  content: %s; }\n", jsonString(e.Formatted()))
	return b.String()
}

// jsonPayload is the shape rendered by JSON.
type jsonPayload struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	Formatted string `json:"formatted"`
}

// JSON renders e in the shape a scssc.toml-driven CLI invocation reports on
// failure: a nonzero status, location fields, and the same Formatted() text.
func (e *Error) JSON() ([]byte, error) {
	p := jsonPayload{Status: 1, Message: e.Message, Formatted: e.Formatted()}
	if e.reg != nil && !e.Span.IsZero() {
		entry := e.reg.ByID(e.Span.Source)
		off := entry.Offset(e.Span.Start.Byte)
		p.File = entry.Path
		p.Line = off.Line + 1
		p.Column = off.Column + 1
	}
	return json.Marshal(p)
}

func oneLine(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, ' ')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
