package differ

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/anfieldrd/kopwatch/internal/config"
)

// ContentDiffer generates bounded unified diffs between two snapshots of
// normalized page text.
type ContentDiffer struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config config.DiffConfig
	logger zerolog.Logger
}

// NewContentDiffer creates a new ContentDiffer instance.
func NewContentDiffer(logger zerolog.Logger, cfg config.DiffConfig) *ContentDiffer {
	return &ContentDiffer{
		dmp:    diffmatchpatch.New(),
		config: cfg,
		logger: logger.With().Str("component", "ContentDiffer").Logger(),
	}
}

// UnifiedDiff compares previous and current line by line and renders the
// differences in unified diff format, truncated to the configured maximum
// number of lines. Identical inputs yield an empty string. Truncation is
// silent so notification payloads stay bounded.
func (cd *ContentDiffer) UnifiedDiff(previous, current string) string {
	if previous == current {
		return ""
	}

	ops := cd.lineOps(previous, current)
	hunks := buildHunks(ops, cd.config.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	lines := make([]string, 0, 64)
	lines = append(lines, "--- previous", "+++ current")
	for _, hunk := range hunks {
		lines = append(lines, hunk...)
	}

	if cd.config.MaxDiffLines > 0 && len(lines) > cd.config.MaxDiffLines {
		cd.logger.Debug().
			Int("total_lines", len(lines)).
			Int("max_lines", cd.config.MaxDiffLines).
			Msg("Truncating diff output")
		lines = lines[:cd.config.MaxDiffLines]
	}

	return strings.Join(lines, "\n")
}

// lineOps runs a line-mode diff and expands the result into per-line
// operations.
func (cd *ContentDiffer) lineOps(previous, current string) []lineOp {
	chars1, chars2, lineArray := cd.dmp.DiffLinesToChars(previous, current)
	diffs := cd.dmp.DiffMain(chars1, chars2, false)
	diffs = cd.dmp.DiffCharsToLines(diffs, lineArray)

	var ops []lineOp
	for _, diff := range diffs {
		var kind byte
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			kind = '-'
		case diffmatchpatch.DiffInsert:
			kind = '+'
		default:
			kind = ' '
		}
		for _, line := range splitDiffLines(diff.Text) {
			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}
	return ops
}

// lineOp is a single line of a line-mode diff: kept (' '), removed ('-')
// or added ('+').
type lineOp struct {
	kind byte
	text string
}

// splitDiffLines splits diff segment text into lines. Line-mode segments
// end each line with '\n' except possibly the document's final line, so a
// trailing empty element is dropped.
func splitDiffLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// buildHunks groups changed lines into unified diff hunks with up to
// contextLines of surrounding context, each rendered with its @@ header.
func buildHunks(ops []lineOp, contextLines int) [][]string {
	if contextLines < 0 {
		contextLines = 0
	}

	type span struct{ first, last int }
	var spans []span
	for i, op := range ops {
		if op.kind == ' ' {
			continue
		}
		if len(spans) > 0 && i-spans[len(spans)-1].last <= 2*contextLines {
			spans[len(spans)-1].last = i
			continue
		}
		spans = append(spans, span{first: i, last: i})
	}
	if len(spans) == 0 {
		return nil
	}

	// oldBefore[i] and newBefore[i] count how many old/new lines precede op i.
	oldBefore := make([]int, len(ops)+1)
	newBefore := make([]int, len(ops)+1)
	for i, op := range ops {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if op.kind != '+' {
			oldBefore[i+1]++
		}
		if op.kind != '-' {
			newBefore[i+1]++
		}
	}

	hunks := make([][]string, 0, len(spans))
	for _, sp := range spans {
		start := sp.first - contextLines
		if start < 0 {
			start = 0
		}
		end := sp.last + contextLines
		if end > len(ops)-1 {
			end = len(ops) - 1
		}

		oldCount := oldBefore[end+1] - oldBefore[start]
		newCount := newBefore[end+1] - newBefore[start]
		oldStart := oldBefore[start] + 1
		if oldCount == 0 {
			oldStart--
		}
		newStart := newBefore[start] + 1
		if newCount == 0 {
			newStart--
		}

		hunk := make([]string, 0, end-start+2)
		hunk = append(hunk, fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount))
		for i := start; i <= end; i++ {
			hunk = append(hunk, string(ops[i].kind)+ops[i].text)
		}
		hunks = append(hunks, hunk)
	}

	return hunks
}
