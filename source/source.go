// Package source owns the registry of loaded stylesheet text: every file,
// string, or synthetic buffer that participates in a compilation is
// registered here exactly once and handed an ast.SourceID, so later stages
// can carry a cheap integer instead of a path and can recover the original
// text for diagnostics and source maps.
package source

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sync"
	"unicode/utf8"

	"github.com/titpetric/scssgo/ast"
)

// Kind distinguishes how a source entered the registry, which in turn
// affects how the loader is allowed to resolve relative URLs against it.
type Kind int

const (
	// KindFile was read from a filesystem path.
	KindFile Kind = iota
	// KindString was supplied directly as in-memory text (the §6.1
	// string-entrypoint API), with no filesystem location of its own.
	KindString
	// KindImported was loaded by the module loader resolving another
	// source's @use/@forward/@import.
	KindImported
)

// Entry is one registered source's text plus the bookkeeping needed to turn
// byte offsets back into line/column pairs.
type Entry struct {
	ID       ast.SourceID
	Kind     Kind
	Path     string // filesystem path or synthetic label, for diagnostics
	Text     string // BOM-stripped text; line endings are left as read
	lineStarts []int // byte offset of the first byte of each line
}

// Registry is the single owner of every Entry in a compilation. It is not
// safe to share across concurrent compilations; a fresh Registry belongs to
// each compiler.Compiler instance.
type Registry struct {
	mu      sync.Mutex
	entries []*Entry
	byPath  map[string]ast.SourceID
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byPath: make(map[string]ast.SourceID)}
}

// RegisterString adds an in-memory source under a synthetic label (used for
// the string-entrypoint API and for tests) and returns its ID.
func (r *Registry) RegisterString(label, text string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(KindString, label, text)
}

// RegisterFile reads path from fsys, strips a byte-order mark if present,
// and registers the result. Reads of the same path are deduplicated: a
// second call returns the Entry already in the registry.
func (r *Registry) RegisterFile(fsys fs.FS, filePath string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clean := path.Clean(filePath)
	if id, ok := r.byPath[clean]; ok {
		return r.entries[id], nil
	}

	raw, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("source: reading %q: %w", clean, err)
	}

	text, err := stripBOM(raw)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", clean, err)
	}

	entry := r.register(KindFile, clean, text)
	r.byPath[clean] = entry.ID
	return entry, nil
}

// RegisterImported is like RegisterString but tags the entry KindImported so
// diagnostics can distinguish "this file was loaded, not passed at top
// level" when rendering call-stack traces.
func (r *Registry) RegisterImported(label, text string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(KindImported, label, text)
}

func (r *Registry) register(kind Kind, label, text string) *Entry {
	id := ast.SourceID(len(r.entries))
	e := &Entry{ID: id, Kind: kind, Path: label, Text: text}
	e.indexLines()
	r.entries = append(r.entries, e)
	return e
}

// ByID returns the Entry for id. It panics on an out-of-range id, since a
// SourceID only ever comes from a Span produced by this same Registry.
func (r *Registry) ByID(id ast.SourceID) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id]
}

// Len reports how many sources have been registered so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (e *Entry) indexLines() {
	e.lineStarts = []int{0}
	for i := 0; i < len(e.Text); i++ {
		if e.Text[i] == '\n' {
			e.lineStarts = append(e.lineStarts, i+1)
		}
	}
}

// Offset converts a byte offset into an ast.Offset. byteOffset must be
// within [0, len(e.Text)].
func (e *Entry) Offset(byteOffset int) ast.Offset {
	line := searchLineStarts(e.lineStarts, byteOffset)
	col := utf8.RuneCountInString(e.Text[e.lineStarts[line]:byteOffset])
	return ast.Offset{Line: line, Column: col, Byte: byteOffset}
}

func searchLineStarts(starts []int, byteOffset int) int {
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Slice returns the substring of e.Text covered by sp. sp.Source is not
// consulted; callers look the Entry up by Span.Source first.
func (e *Entry) Slice(sp ast.Span) string {
	start := sp.Start.Byte
	end := start + sp.Length
	if start < 0 || end > len(e.Text) || start > end {
		return ""
	}
	return e.Text[start:end]
}

// bomSignature is one recognized byte-order mark. Longer/more specific
// prefixes (the 4-byte UTF-32 marks, which otherwise collide with a UTF-16
// mark's leading two bytes) must be checked before shorter ones.
type bomSignature struct {
	prefix []byte
	name   string
}

// bomSignatures is spec §6.3's BOM sniff table: every entry past UTF-8 is a
// named, unsupported encoding, rejected outright rather than transcoded —
// this repo carries no BOM-to-UTF-8 transcoder (see DESIGN.md for why
// golang.org/x/text's encoding package, the only candidate in the pack for
// this, isn't wired in: its UTF-16/UTF-32 decoders exist, but none of the
// rarer marks here — UTF-7, UTF-1, SCSU, BOCU-1, GB-18030 — have a decoder
// anywhere in the examples, so sniff-and-reject is the only uniformly
// groundable behavior across the whole table).
var bomSignatures = []bomSignature{
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, "UTF-32 (big-endian)"},
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, "UTF-32 (little-endian)"},
	{[]byte{0x84, 0x31, 0x95, 0x33}, "GB-18030"},
	{[]byte{0xFB, 0xEE, 0x28}, "BOCU-1"},
	{[]byte{0xF7, 0x64, 0x4C}, "UTF-1"},
	{[]byte{0x0E, 0xFE, 0xFF}, "SCSU"},
	{[]byte{0x2B, 0x2F, 0x76, 0x38, 0x2D}, "UTF-7"},
	{[]byte{0x2B, 0x2F, 0x76, 0x38}, "UTF-7"},
	{[]byte{0x2B, 0x2F, 0x76, 0x39}, "UTF-7"},
	{[]byte{0x2B, 0x2F, 0x76, 0x2B}, "UTF-7"},
	{[]byte{0x2B, 0x2F, 0x76, 0x2F}, "UTF-7"},
	{[]byte{0xFE, 0xFF}, "UTF-16 (big-endian)"},
	{[]byte{0xFF, 0xFE}, "UTF-16 (little-endian)"},
}

// stripBOM strips a UTF-8 byte-order mark when present and otherwise
// validates raw is already UTF-8. Any other recognized BOM (UTF-16/32/7/1,
// EBCDIC, SCSU, BOCU-1, GB-18030) is a hard error naming the encoding, per
// spec §6.3 — only UTF-8 source is ever accepted.
func stripBOM(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		raw = raw[3:]
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("source is not valid UTF-8 after its BOM")
		}
		return string(raw), nil
	}
	for _, sig := range bomSignatures {
		if bytes.HasPrefix(raw, sig.prefix) {
			return "", fmt.Errorf("source is encoded as %s; only UTF-8 source is supported", sig.name)
		}
	}
	if looksLikeEBCDIC(raw) {
		return "", fmt.Errorf("source is encoded as EBCDIC; only UTF-8 source is supported")
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("source is not valid UTF-8 and carries no recognized byte-order mark")
	}
	return string(raw), nil
}

// looksLikeEBCDIC reports whether raw, which is not valid UTF-8, opens with
// the EBCDIC encoding of a common leading byte for a stylesheet ("/*", "@",
// ".", "="); EBCDIC has no byte-order mark of its own to sniff. Those bytes
// are printable ASCII, so valid UTF-8 input is never reported. This is a
// heuristic, not a full EBCDIC decoder.
func looksLikeEBCDIC(raw []byte) bool {
	if len(raw) == 0 || utf8.Valid(raw) {
		return false
	}
	switch raw[0] {
	case 0x4B, 0x7C, 0x61, 0x7E: // EBCDIC '.', '@', '/', '='
		return true
	}
	return false
}
