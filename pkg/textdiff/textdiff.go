// Package textdiff renders line-based unified diffs between the text a fix
// pass read and the text it produced.
package textdiff

import (
	"fmt"
	"strings"
)

// Kind classifies a diff line.
type Kind int

const (
	// Context is an unchanged line.
	Context Kind = iota

	// Added is a line only in the fixed text.
	Added

	// Removed is a line only in the original text.
	Removed
)

// prefix returns the unified diff marker for k.
func (k Kind) prefix() byte {
	switch k {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a group of nearby changes with surrounding context.
type Hunk struct {
	// OldStart and NewStart are 1-based.
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is the difference between two versions of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// ContextLines is the number of unchanged lines shown around a change.
const ContextLines = 3

// Compute diffs two texts. Line endings are normalized, so a file that only
// differs in CRLF vs LF produces no diff. It returns nil when nothing changed.
func Compute(path, before, after string) *Diff {
	a, b := split(before), split(after)

	ops := edits(a, b)
	hunks := group(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.Kind {
		case Added:
			d.Added++
		case Removed:
			d.Removed++
		}
	}
	return d
}

// HasChanges reports whether d holds any change.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d in unified format with a/ and b/ file headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			sb.WriteByte(l.Kind.prefix())
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func split(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// edits walks the LCS table of a and b and returns the full edit script,
// unchanged lines included. Removals are emitted before additions.
func edits(a, b []string) []Line {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, Line{Context, a[i]})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Removed, a[i]})
			i++
		default:
			ops = append(ops, Line{Added, b[j]})
			j++
		}
	}
	return ops
}

// group cuts the edit script into hunks, merging changes separated by at
// most twice the context size.
func group(ops []Line) []Hunk {
	var hunks []Hunk

	// Line numbers of ops[k] in the old and new text.
	oldNo, newNo := make([]int, len(ops)), make([]int, len(ops))
	o, n := 1, 1
	for k, op := range ops {
		oldNo[k], newNo[k] = o, n
		if op.Kind != Added {
			o++
		}
		if op.Kind != Removed {
			n++
		}
	}

	for k := 0; k < len(ops); {
		if ops[k].Kind == Context {
			k++
			continue
		}

		start := max(0, k-ContextLines)
		end := k
		for end < len(ops) {
			if ops[end].Kind != Context {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == Context {
				run++
			}
			if run == len(ops) || run-end > 2*ContextLines {
				end = min(end+ContextLines, len(ops))
				break
			}
			end = run
		}

		h := Hunk{OldStart: oldNo[start], NewStart: newNo[start]}
		for _, op := range ops[start:end] {
			h.Lines = append(h.Lines, op)
			if op.Kind != Added {
				h.OldCount++
			}
			if op.Kind != Removed {
				h.NewCount++
			}
		}
		hunks = append(hunks, h)
		k = end
	}
	return hunks
}
