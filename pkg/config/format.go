package config

// OutputFormat specifies the output format of a run.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// FileFormat is the encoding of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// FileFormatFor returns the encoding implied by a file extension, defaulting
// to YAML.
func FileFormatFor(ext string) FileFormat {
	if ext == ".toml" {
		return FileFormatTOML
	}
	return FileFormatYAML
}
