package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/stylefix/pkg/rules"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its description.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: FileFormatYAML or FileFormatTOML.
	Format FileFormat

	// Company and Author are written uncommented when set.
	Company string
	Author  string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	switch opts.Format {
	case FileFormatTOML:
		writeTOMLTemplate(&buf, opts)
	case FileFormatYAML, "":
		writeYAMLTemplate(&buf, opts)
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}

	return buf.Bytes(), nil
}

func writeYAMLTemplate(buf *bytes.Buffer, opts TemplateOptions) {
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	buf.WriteString("# Copyright header owner. No header is added when empty.\n")
	writeKey(buf, "company: %q\n", opts.Company)
	writeKey(buf, "author: %q\n", opts.Author)

	buf.WriteString(`
# Project or solution passed to the analyzer, or "auto" to use the
# nearest .csproj/.sln of each file
project: auto

# Fix files that the analyzer reports as not compiling
# force_fix: false

# Access modifier added for SA1400
# default_modifier: private

# External analyzer; {project}, {file} and {dir} are substituted
analyzer:
  command: ""
  # args: ["{project}", "{file}"]
  format: text # text, sarif or xml
  timeout: 2m

# External formatter run on the fixed text; {file} is a temporary copy
# arrange:
#   command: ""
#   args: []
#   timeout: 7s

# Backups written before a file is replaced
backups:
  enabled: false
  mode: sidecar

# Violation snapshot for editor integrations
# store:
#   snapshot: .stylefix/violations.msgpack

# File patterns to ignore (glob patterns)
ignore:
  - "**/bin/**"
  - "**/obj/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Enable or disable rules by ID
# rules:
#   SA1200: true
#   SA1633: false
`)
		return
	}

	buf.WriteString("\n# Enable or disable rules by ID\nrules:\n")
	for _, info := range rules.DefaultRegistry.Rules() {
		fmt.Fprintf(buf, "\n  # %s %s (%s)\n", info.ID, info.Name, info.Category)
		if info.Description != "" {
			fmt.Fprintf(buf, "  # %s\n", wrapComment(info.Description, commentWrapWidth, "  # "))
		}
		fmt.Fprintf(buf, "  %s: %t\n", info.ID, info.DefaultEnabled)
	}
}

func writeTOMLTemplate(buf *bytes.Buffer, opts TemplateOptions) {
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	buf.WriteString("# Copyright header owner. No header is added when empty.\n")
	writeKey(buf, "company = %q\n", opts.Company)
	writeKey(buf, "author = %q\n", opts.Author)

	buf.WriteString(`
# Project or solution passed to the analyzer, or "auto"
project = "auto"

# force_fix = false
# default_modifier = "private"

ignore = ["**/bin/**", "**/obj/**"]

[analyzer]
command = ""
# args = ["{project}", "{file}"]
format = "text"
timeout = "2m"

# [arrange]
# command = ""
# timeout = "7s"

[backups]
enabled = false
mode = "sidecar"

# [store]
# snapshot = ".stylefix/violations.msgpack"
`)

	if !opts.Full {
		buf.WriteString("\n# [rules]\n# SA1200 = true\n")
		return
	}

	buf.WriteString("\n[rules]\n")
	for _, info := range rules.DefaultRegistry.Rules() {
		if info.Description != "" {
			fmt.Fprintf(buf, "# %s\n", wrapComment(info.Description, commentWrapWidth, "# "))
		}
		fmt.Fprintf(buf, "%s = %t\n", info.ID, info.DefaultEnabled)
	}
}

// writeKey writes the formatted key, commented out when value is empty.
func writeKey(buf *bytes.Buffer, format, value string) {
	if value == "" {
		buf.WriteString("# ")
	}
	fmt.Fprintf(buf, format, value)
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# stylefix configuration
# See: https://github.com/yaklabco/stylefix`
}
