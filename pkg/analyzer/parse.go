package analyzer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/stylefix/pkg/rules"
)

// Format names an analyzer output format.
type Format string

// Supported output formats.
const (
	// FormatText is one "RULE:source:line - message" per line.
	FormatText Format = "text"

	// FormatSARIF is a SARIF 2.1.0 log.
	FormatSARIF Format = "sarif"

	// FormatXML is a StyleCop violations report.
	FormatXML Format = "xml"
)

// ValidFormats lists the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatSARIF), string(FormatXML)}
}

// ParseFormat parses a format name. The empty string is FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatSARIF:
		return FormatSARIF, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, s, strings.Join(ValidFormats(), ", "))
	}
}

// Parse decodes analyzer output in the given format.
func Parse(format Format, data []byte) ([]Finding, error) {
	switch format {
	case FormatText, "":
		return ParseText(data), nil
	case FormatSARIF:
		return ParseSARIF(data)
	case FormatXML:
		return ParseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// textLine matches "SA1600:Widget.cs:12 - message". The source may itself
// contain colons, e.g. a drive letter.
//
//nolint:gochecknoglobals // Compiled pattern
var textLine = regexp.MustCompile(`^\s*([A-Za-z]{2}\d{4}):(.*):(\d+)\s+-\s+(.*?)\s*$`)

// ParseText parses console output. Lines that do not match the format are
// ignored, so banners and summaries printed by the analyzer are harmless.
func ParseText(data []byte) []Finding {
	var findings []Finding

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := textLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		line, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		findings = append(findings, Finding{
			Rule:    rules.ID(strings.ToUpper(m[1])),
			Source:  m[2],
			Line:    line,
			Message: m[4],
		})
	}
	return findings
}

// sarifLog is the subset of SARIF 2.1.0 read by ParseSARIF.
type sarifLog struct {
	Version string `json:"version"`
	Runs    []struct {
		Results []struct {
			RuleID  string `json:"ruleId"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine int `json:"startLine"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

// ParseSARIF parses a SARIF log. Results without a location are dropped.
func ParseSARIF(data []byte) ([]Finding, error) {
	var log sarifLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("%w: sarif: %w", ErrMalformedOutput, err)
	}

	var findings []Finding
	for _, run := range log.Runs {
		for _, res := range run.Results {
			for _, loc := range res.Locations {
				phys := loc.PhysicalLocation
				if phys.Region.StartLine <= 0 {
					continue
				}
				findings = append(findings, Finding{
					Rule:    rules.ID(strings.ToUpper(res.RuleID)),
					Source:  phys.ArtifactLocation.URI,
					Line:    phys.Region.StartLine,
					Message: res.Message.Text,
				})
			}
		}
	}
	return findings, nil
}

// xmlReport is a StyleCop violations report.
type xmlReport struct {
	XMLName    xml.Name `xml:"StyleCopViolations"`
	Violations []struct {
		RuleID     string `xml:"RuleId,attr"`
		Source     string `xml:"Source,attr"`
		LineNumber int    `xml:"LineNumber,attr"`
		Message    string `xml:",chardata"`
	} `xml:"Violation"`
}

// ParseXML parses a StyleCop violations report.
func ParseXML(data []byte) ([]Finding, error) {
	var report xmlReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: xml: %w", ErrMalformedOutput, err)
	}

	findings := make([]Finding, 0, len(report.Violations))
	for _, v := range report.Violations {
		findings = append(findings, Finding{
			Rule:    rules.ID(strings.ToUpper(v.RuleID)),
			Source:  v.Source,
			Line:    v.LineNumber,
			Message: strings.TrimSpace(v.Message),
		})
	}
	return findings, nil
}

// Load reads saved analyzer output from path and returns it as a Static
// analyzer that filters by file name.
func Load(path string, format Format) (Static, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path from the command line
	if err != nil {
		return nil, fmt.Errorf("reading analyzer output: %w", err)
	}

	findings, err := Parse(format, data)
	if err != nil {
		return nil, err
	}
	return Static{"": findings}, nil
}
