// Package diff renders unified diffs of rewritten source files.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

type opKind byte

const (
	opEqual  opKind = ' '
	opDelete opKind = '-'
	opInsert opKind = '+'
)

type op struct {
	kind opKind
	line string
}

// Unified returns a unified diff from oldText to newText, or "" when they are
// equal. Line terminators are kept out of the output, so CRLF files render
// the same as LF files.
func Unified(path, oldText, newText string, context int) string {
	if oldText == newText {
		return ""
	}
	if context < 0 {
		context = DefaultContext
	}

	ops := lineOps(oldText, newText)

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	oldLine, newLine := 1, 1
	for i := 0; i < len(ops); {
		if ops[i].kind == opEqual {
			oldLine++
			newLine++
			i++
			continue
		}

		// hunk start, pulled back over the leading context
		start := max(i-context, 0)
		for k := start; k < i; k++ {
			oldLine--
			newLine--
		}

		// extend while the next change is within two contexts
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].kind != opEqual {
				end = j
				continue
			}
			if j-end > 2*context {
				break
			}
		}
		stop := min(end+context+1, len(ops))

		oldCount, newCount := 0, 0
		for _, o := range ops[start:stop] {
			if o.kind != opInsert {
				oldCount++
			}
			if o.kind != opDelete {
				newCount++
			}
		}
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", span(oldLine, oldCount), span(newLine, newCount))
		for _, o := range ops[start:stop] {
			b.WriteByte(byte(o.kind))
			b.WriteString(o.line)
			b.WriteByte('\n')
		}

		oldLine += oldCount
		newLine += newCount
		i = stop
	}
	return b.String()
}

func span(line, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", line-1)
	}
	if count == 1 {
		return fmt.Sprintf("%d", line)
	}
	return fmt.Sprintf("%d,%d", line, count)
}

// lineOps diffs the texts line by line.
func lineOps(oldText, newText string) []op {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []op
	for _, d := range diffs {
		kind := opEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = opDelete
		case diffmatchpatch.DiffInsert:
			kind = opInsert
		}
		for _, line := range splitLines(d.Text) {
			ops = append(ops, op{kind: kind, line: line})
		}
	}
	return ops
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
