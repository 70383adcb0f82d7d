package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/stylefix/pkg/analysis"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIF result kinds and levels.
const (
	sarifKindPass    = "pass"
	sarifKindFail    = "fail"
	sarifLevelNone   = "none"
	sarifLevelWarn   = "warning"
	sarifLevelError  = "error"
	sarifToolName    = "stylefix"
	sarifInfoURI     = "https://github.com/yaklabco/stylefix"
	sarifFixedMarker = "fixed"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFResult represents one violation.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	Kind       string          `json:"kind"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected lines.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFInvocation reports files that could not be processed.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is one tool execution notification.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer writes the report as SARIF. Fixed violations are results of
// kind "pass"; open ones are of kind "fail".
type SARIFRenderer struct {
	opts Options
	out  io.Writer
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts, out: opts.Writer}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.build(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) build(report *analysis.Report) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           sarifToolName,
			Version:        version,
			InformationURI: sarifInfoURI,
			Rules:          make([]SARIFRule, 0, len(report.ByRule)),
		}},
		Results: make([]SARIFResult, 0, len(report.Violations)),
	}

	for _, ra := range report.ByRule {
		rule := SARIFRule{ID: ra.RuleID, Name: ra.RuleName}
		if info, ok := rules.DefaultRegistry.GetByID(rules.ID(ra.RuleID)); ok {
			rule.ShortDescription.Text = info.Description
			rule.Properties = map[string]any{"category": ra.Category}
		} else {
			rule.ShortDescription.Text = ra.RuleID
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
	}

	for _, v := range report.Violations {
		res := SARIFResult{
			RuleID:    v.RuleID,
			Kind:      sarifKindFail,
			Level:     sarifLevelWarn,
			Message:   SARIFMessage{Text: v.Message},
			Locations: []SARIFLocation{location(v.FilePath, v.Line)},
		}
		if v.Fixed {
			res.Kind = sarifKindPass
			res.Level = sarifLevelNone
			res.Properties = map[string]any{sarifFixedMarker: true}
		} else if v.SkipReason != "" {
			res.Properties = map[string]any{"skipReason": v.SkipReason}
		}
		run.Results = append(run.Results, res)
	}

	if len(report.Errors) > 0 {
		inv := SARIFInvocation{ExecutionSuccessful: false}
		for _, fe := range report.Errors {
			inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, SARIFNotification{
				Level:     sarifLevelError,
				Message:   SARIFMessage{Text: fe.Message},
				Locations: []SARIFLocation{location(fe.FilePath, 1)},
			})
		}
		run.Invocations = []SARIFInvocation{inv}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func location(path string, line int) SARIFLocation {
	return SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(path)},
		Region:           SARIFRegion{StartLine: max(line, 1)},
	}}
}
