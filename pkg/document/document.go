// Package document provides the mutable line model the fix drivers operate on.
//
// A Document is built once per fix pass. Lines keep a stable identity for the
// whole pass, so a driver can insert or remove lines around an anchor without
// re-deriving index offsets, and violations stay attached to the text they
// were reported against even after earlier drivers shifted line numbers.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/stylefix/pkg/rules"
)

// Sentinel errors.
var (
	// ErrLineOutOfRange indicates a violation refers to a line the document does not have.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrNotInDocument indicates an anchor line does not belong to the document.
	ErrNotInDocument = errors.New("line not in document")
)

// Violation is a reported deviation from a rule at a specific line.
type Violation struct {
	// Rule is the rule identifier.
	Rule rules.ID

	// Line is the 1-based line number as reported by the analyzer.
	Line int

	// Message is the analyzer's description text.
	Message string

	// Resolved is set when a driver claims the violation.
	Resolved bool
}

// Line is a single line of the document.
type Line struct {
	// ID is unique within the document and never reused.
	ID int

	// Key orders lines by insertion hint. It is not an index.
	Key float64

	// Text is the line content without its line ending.
	Text string

	// Removed marks a line that is kept for bookkeeping but not emitted.
	Removed bool

	// Violations attached to this line.
	Violations []*Violation
}

// Indent returns the leading whitespace of the line.
func (l *Line) Indent() string {
	return l.Text[:len(l.Text)-len(strings.TrimLeft(l.Text, " \t"))]
}

// IsBlank reports whether the line is empty or whitespace only.
func (l *Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Document is the ordered line sequence of one file.
type Document struct {
	lines    []*Line
	original []*Line
	nextID   int

	newline         string
	trailingNewline bool

	filter func(rules.ID) bool
}

// Build creates a document from raw text, one Line per input line.
// The line ending style and trailing newline are remembered for Text.
func Build(text string) *Document {
	doc := &Document{newline: "\n"}

	if strings.Contains(text, "\r\n") {
		doc.newline = "\r\n"
	}

	if text == "" {
		return doc
	}

	doc.trailingNewline = strings.HasSuffix(text, "\n")
	body := strings.TrimSuffix(text, "\n")
	if doc.newline == "\r\n" {
		body = strings.TrimSuffix(body, "\r")
	}

	for i, raw := range strings.Split(body, "\n") {
		if doc.newline == "\r\n" {
			raw = strings.TrimSuffix(raw, "\r")
		}
		doc.lines = append(doc.lines, doc.newLine(float64(i+1), raw))
	}
	doc.original = append([]*Line(nil), doc.lines...)

	return doc
}

func (d *Document) newLine(key float64, text string) *Line {
	d.nextID++
	return &Line{ID: d.nextID, Key: key, Text: text}
}

// SetFilter installs a predicate that disables rules. IsViolated reports
// false for any rule the filter rejects.
func (d *Document) SetFilter(filter func(rules.ID) bool) {
	d.filter = filter
}

// Newline returns the line ending used when emitting.
func (d *Document) Newline() string {
	return d.newline
}

// Len returns the number of lines, including removed ones.
func (d *Document) Len() int {
	return len(d.lines)
}

// At returns the line at index i.
func (d *Document) At(i int) *Line {
	return d.lines[i]
}

// Lines returns a snapshot of the current line order, including removed
// lines. Insertions made while ranging over the snapshot are not visited.
func (d *Document) Lines() []*Line {
	return append([]*Line(nil), d.lines...)
}

// OriginalLines returns the lines as built, before any insertion.
func (d *Document) OriginalLines() []*Line {
	return append([]*Line(nil), d.original...)
}

// Index returns the current index of line, or -1.
func (d *Document) Index(line *Line) int {
	for i, l := range d.lines {
		if l == line {
			return i
		}
	}
	return -1
}

// Prev returns the nearest preceding line that is not removed, or nil.
func (d *Document) Prev(line *Line) *Line {
	for i := d.Index(line) - 1; i >= 0; i-- {
		if !d.lines[i].Removed {
			return d.lines[i]
		}
	}
	return nil
}

// Next returns the nearest following line that is not removed, or nil.
func (d *Document) Next(line *Line) *Line {
	idx := d.Index(line)
	if idx < 0 {
		return nil
	}
	for i := idx + 1; i < len(d.lines); i++ {
		if !d.lines[i].Removed {
			return d.lines[i]
		}
	}
	return nil
}

// InsertAt inserts a new line so that it ends up at index i.
// Indexes past the end append.
func (d *Document) InsertAt(i int, text string) *Line {
	if i < 0 {
		i = 0
	}
	if i > len(d.lines) {
		i = len(d.lines)
	}

	line := d.newLine(d.keyBetween(i), text)
	d.lines = append(d.lines, nil)
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line

	return line
}

// keyBetween computes the ordering key for a line inserted at index i.
func (d *Document) keyBetween(i int) float64 {
	switch {
	case len(d.lines) == 0:
		return 1
	case i == 0:
		return d.lines[0].Key - 1
	case i >= len(d.lines):
		return d.lines[len(d.lines)-1].Key + 1
	default:
		return (d.lines[i-1].Key + d.lines[i].Key) / 2
	}
}

// InsertBefore inserts a new line immediately before anchor.
func (d *Document) InsertBefore(anchor *Line, text string) (*Line, error) {
	idx := d.Index(anchor)
	if idx < 0 {
		return nil, ErrNotInDocument
	}
	return d.InsertAt(idx, text), nil
}

// InsertAfter inserts a new line immediately after anchor.
func (d *Document) InsertAfter(anchor *Line, text string) (*Line, error) {
	idx := d.Index(anchor)
	if idx < 0 {
		return nil, ErrNotInDocument
	}
	return d.InsertAt(idx+1, text), nil
}

// Remove marks line as removed. The line stays in the document.
func (d *Document) Remove(line *Line) {
	line.Removed = true
}

// Absorb moves the violations of src onto dst and removes src.
func (d *Document) Absorb(dst, src *Line) {
	dst.Violations = append(dst.Violations, src.Violations...)
	src.Violations = nil
	d.Remove(src)
}

// Detach physically removes line from the document. Its violations go with it.
func (d *Document) Detach(line *Line) error {
	idx := d.Index(line)
	if idx < 0 {
		return ErrNotInDocument
	}
	d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	return nil
}

// MoveAfter relocates line so it directly follows anchor, keeping its
// identity and violations.
func (d *Document) MoveAfter(line, anchor *Line) error {
	if line == anchor {
		return nil
	}
	if d.Index(anchor) < 0 {
		return ErrNotInDocument
	}
	if err := d.Detach(line); err != nil {
		return err
	}
	idx := d.Index(anchor)
	if idx < 0 {
		return ErrNotInDocument
	}

	line.Key = d.keyBetween(idx + 1)
	d.lines = append(d.lines, nil)
	copy(d.lines[idx+2:], d.lines[idx+1:])
	d.lines[idx+1] = line

	return nil
}

// MoveBefore places line directly before anchor. A line that is not yet in
// the document is inserted; otherwise it is relocated.
func (d *Document) MoveBefore(line, anchor *Line) error {
	if line == anchor {
		return nil
	}
	if d.Index(anchor) < 0 {
		return ErrNotInDocument
	}
	if d.Index(line) >= 0 {
		if err := d.Detach(line); err != nil {
			return err
		}
	}

	idx := d.Index(anchor)
	line.Key = d.keyBetween(idx)
	d.lines = append(d.lines, nil)
	copy(d.lines[idx+1:], d.lines[idx:])
	d.lines[idx] = line

	return nil
}

// Attach adds v to the line numbered v.Line in the document as built.
func (d *Document) Attach(v Violation) error {
	if v.Line < 1 || v.Line > len(d.original) {
		return fmt.Errorf("%w: %s at line %d of %d", ErrLineOutOfRange, v.Rule, v.Line, len(d.original))
	}
	line := d.original[v.Line-1]
	line.Violations = append(line.Violations, &v)
	return nil
}

// IsViolated reports whether line carries a violation of rule.
//
// The query is mutating: on true every matching violation on the line is
// marked resolved. Drivers call it once per line per rule they fix, and call
// Reopen if the fix turns out not to apply.
func (d *Document) IsViolated(line *Line, rule rules.ID) bool {
	if line.Removed || !d.enabled(rule) {
		return false
	}

	found := false
	for _, v := range line.Violations {
		if v.Rule == rule {
			v.Resolved = true
			found = true
		}
	}
	return found
}

// Reopen clears the resolved flag of every violation of rule on line.
func (d *Document) Reopen(line *Line, rule rules.ID) {
	for _, v := range line.Violations {
		if v.Rule == rule {
			v.Resolved = false
		}
	}
}

// Violation returns the first violation of rule on line, or nil.
func (d *Document) Violation(line *Line, rule rules.ID) *Violation {
	for _, v := range line.Violations {
		if v.Rule == rule {
			return v
		}
	}
	return nil
}

// HasViolation reports whether any line carries rule, without resolving it.
func (d *Document) HasViolation(rule rules.ID) bool {
	for _, line := range d.lines {
		if d.Violation(line, rule) != nil {
			return true
		}
	}
	return false
}

func (d *Document) enabled(rule rules.ID) bool {
	return d.filter == nil || d.filter(rule)
}

// Counts returns the total number of attached violations and how many are resolved.
func (d *Document) Counts() (total, resolved int) {
	for _, line := range d.lines {
		for _, v := range line.Violations {
			total++
			if v.Resolved {
				resolved++
			}
		}
	}
	return total, resolved
}

// Violations returns every attached violation in line order.
func (d *Document) Violations() []*Violation {
	var out []*Violation
	for _, line := range d.lines {
		out = append(out, line.Violations...)
	}
	return out
}

// Text joins the lines that are not removed using the original line ending.
func (d *Document) Text() string {
	var sb strings.Builder
	written := 0
	for _, line := range d.lines {
		if line.Removed {
			continue
		}
		if written > 0 {
			sb.WriteString(d.newline)
		}
		sb.WriteString(line.Text)
		written++
	}
	if written > 0 && d.trailingNewline {
		sb.WriteString(d.newline)
	}
	return sb.String()
}
