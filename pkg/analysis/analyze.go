// Package analysis turns a runner result into the views reporters render:
// a flat violation list, per-file and per-rule aggregates, and totals.
package analysis

import (
	"cmp"
	"errors"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts absPath to a path relative to workDir. If workDir is
// empty or conversion fails, it returns absPath.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

type builder struct {
	opts      Options
	report    *Report
	ruleMap   map[rules.ID]*RuleAnalysis
	ruleFiles map[rules.ID]map[string]bool
	files     []*FileAnalysis
	fileRules map[string]map[string]bool
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	b := &builder{
		opts:      opts,
		report:    report,
		ruleMap:   make(map[rules.ID]*RuleAnalysis),
		ruleFiles: make(map[rules.ID]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}

	for _, file := range result.Files {
		b.addFile(file)
	}

	if opts.IncludeByRule {
		report.ByRule = b.byRule()
	}
	if opts.IncludeByFile {
		report.ByFile = b.byFile()
	}
	return report
}

func (b *builder) addFile(file runner.FileOutcome) {
	totals := &b.report.Totals
	path := RelativePath(file.Path, b.opts.WorkingDir)

	if file.Error != nil {
		totals.FilesErrored++
		b.report.Errors = append(b.report.Errors, FileError{
			FilePath:     path,
			Message:      file.Error.Error(),
			CompileError: errors.Is(file.Error, engine.ErrCompileError),
		})
		return
	}
	if file.Ignored() {
		totals.FilesIgnored++
		return
	}
	out := file.Outcome
	if out == nil || out.Missing {
		return
	}

	totals.Files++
	if out.Changed {
		totals.FilesChanged++
	}
	if out.Written {
		totals.FilesWritten++
	}
	if len(out.Violations) == 0 {
		return
	}
	totals.FilesWithViolations++

	fa := &FileAnalysis{Path: path, Changed: out.Changed, Written: out.Written}
	b.files = append(b.files, fa)
	b.fileRules[path] = make(map[string]bool)

	reasons := skipReasons(out.Result.Skipped)

	for _, v := range out.Violations {
		totals.Violations++
		fa.Violations++

		ra := b.rule(v.Rule)
		ra.Violations++
		b.ruleFiles[v.Rule][path] = true
		b.fileRules[path][string(v.Rule)] = true

		if v.Resolved {
			totals.Fixed++
			fa.Fixed++
			ra.Fixed++
		} else {
			totals.Remaining++
			fa.Remaining++
			ra.Remaining++
		}

		if b.opts.IncludeViolations && (!v.Resolved || b.opts.IncludeFixed) {
			entry := ViolationEntry{
				FilePath: path,
				RuleID:   string(v.Rule),
				RuleName: ra.RuleName,
				Category: ra.Category,
				Line:     v.Line,
				Message:  v.Message,
				Fixed:    v.Resolved,
			}
			if !v.Resolved {
				entry.SkipReason = reasons[skipKey{v.Rule, v.Line}]
			}
			b.report.Violations = append(b.report.Violations, entry)
		}
	}
}

type skipKey struct {
	rule rules.ID
	line int
}

// skipReasons indexes skip reasons by rule and reported line. The first
// reason recorded for a key wins.
func skipReasons(skips []drivers.Skip) map[skipKey]string {
	out := make(map[skipKey]string, len(skips))
	for _, s := range skips {
		k := skipKey{s.Rule, s.Line}
		if _, ok := out[k]; !ok {
			out[k] = s.Reason
		}
	}
	return out
}

func (b *builder) rule(id rules.ID) *RuleAnalysis {
	if ra, ok := b.ruleMap[id]; ok {
		return ra
	}
	ra := &RuleAnalysis{RuleID: string(id)}
	if info, ok := rules.DefaultRegistry.GetByID(id); ok {
		ra.RuleName = info.Name
		ra.Category = info.Category.String()
	}
	b.ruleMap[id] = ra
	b.ruleFiles[id] = make(map[string]bool)
	return ra
}

func (b *builder) byRule() []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(b.ruleMap))
	for id, ra := range b.ruleMap {
		ra.Files = slices.Sorted(maps.Keys(b.ruleFiles[id]))
		out = append(out, *ra)
	}
	slices.SortFunc(out, func(left, right RuleAnalysis) int {
		return compare(b.opts, left.RuleID, right.RuleID,
			left.Violations, right.Violations, left.Remaining, right.Remaining)
	})
	return out
}

func (b *builder) byFile() []FileAnalysis {
	out := make([]FileAnalysis, 0, len(b.files))
	for _, fa := range b.files {
		fa.Rules = slices.Sorted(maps.Keys(b.fileRules[fa.Path]))
		out = append(out, *fa)
	}
	slices.SortFunc(out, func(left, right FileAnalysis) int {
		return compare(b.opts, left.Path, right.Path,
			left.Violations, right.Violations, left.Remaining, right.Remaining)
	})
	return out
}

// compare orders two rows. Ties fall back to the key so output is stable.
func compare(opts Options, leftKey, rightKey string, leftCount, rightCount, leftOpen, rightOpen int) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
		return cmp.Compare(leftKey, rightKey)
	case SortByRemaining:
		result = cmp.Compare(rightOpen, leftOpen)
	default:
		result = cmp.Compare(leftCount, rightCount)
		if opts.SortDesc {
			result = -result
		}
	}
	if result == 0 {
		result = cmp.Compare(leftKey, rightKey)
	}
	return result
}
