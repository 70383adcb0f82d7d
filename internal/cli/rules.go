package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/rules"
)

type rulesFlags struct {
	format   string
	category string
}

const (
	formatText = "text"
	formatJSON = "json"
)

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules stylefix can fix",
		Long: `List every rule stylefix can fix with its ID, name, fix category
and whether it is enabled by default. Rules can be enabled or disabled by
ID or name in the "rules" section of the configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := filterRules(rules.DefaultRegistry.Rules(), flags.category)
			if err != nil {
				return err
			}

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), list)
			case formatText:
				outputRulesText(cmd.OutOrStdout(), list)
				return nil
			default:
				return fmt.Errorf("invalid format %q: must be text or json", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")
	cmd.Flags().StringVar(&flags.category, "category", "",
		"only list one category: renaming, spacing, readability, blank-line, documentation, custom, using, modifiers")

	return cmd
}

func filterRules(list []rules.Info, category string) ([]rules.Info, error) {
	if category == "" {
		return list, nil
	}

	out := make([]rules.Info, 0, len(list))
	known := false
	for _, r := range list {
		if strings.EqualFold(r.Category.String(), category) {
			known = true
			out = append(out, r)
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return out, nil
}

func outputRulesText(w io.Writer, list []rules.Info) {
	logger := logging.NewWithWriter(w, "info")
	logger.SetPrefix("")

	for _, r := range list {
		enabled := "yes"
		if !r.DefaultEnabled {
			enabled = "no"
		}
		logger.Info(string(r.ID)+"/"+r.Name,
			"category", r.Category,
			"enabled", enabled,
			"description", r.Description,
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, list []rules.Info) error {
	infos := make([]ruleInfo, 0, len(list))
	for _, r := range list {
		infos = append(infos, ruleInfo{
			ID:          string(r.ID),
			Name:        r.Name,
			Category:    r.Category.String(),
			Description: r.Description,
			Enabled:     r.DefaultEnabled,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
