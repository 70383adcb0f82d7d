// Package emit turns a fixed document back into source text.
package emit

import (
	"strings"

	"github.com/yaklabco/stylefix/pkg/document"
)

// headerRule is the ruler line framing the copyright header.
//
//nolint:gochecknoglobals // Constant text
var headerRule = "//" + strings.Repeat("-", 94)

// copyrightMarker identifies an existing header.
const copyrightMarker = "<copyright file="

// Header describes the copyright header added to files that lack one.
type Header struct {
	// File is the file name shown in the header, without directories.
	File string

	// Company owns the copyright. No header is added when it is empty.
	Company string

	// Author is credited in the header.
	Author string
}

// Enabled reports whether the header would be added.
func (h Header) Enabled() bool {
	return h.Company != ""
}

// Lines returns the header lines.
func (h Header) Lines() []string {
	return []string{
		headerRule,
		`// <copyright file="` + h.File + `" company="` + h.Company + `" author="` + h.Author + `">`,
		"// Copyright (c) " + h.Company + ".  All rights reserved.",
		"// </copyright>",
		headerRule,
	}
}

// Emit returns the text of doc with the header prepended when it is enabled
// and the text has none.
func Emit(doc *document.Document, h Header) string {
	return WithHeader(doc.Text(), doc.Newline(), h)
}

// WithHeader prepends the header to text, using newline between lines, when
// the header is enabled and text has none.
func WithHeader(text, newline string, h Header) string {
	if !h.Enabled() || HasHeader(text) {
		return text
	}

	var sb strings.Builder
	for _, line := range h.Lines() {
		sb.WriteString(line)
		sb.WriteString(newline)
	}
	sb.WriteString(text)
	return sb.String()
}

// HasHeader reports whether text already carries a copyright header.
func HasHeader(text string) bool {
	return strings.Contains(text, copyrightMarker)
}
