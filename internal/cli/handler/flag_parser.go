// Package handler provides flag parsing utilities
package handler

import (
	"strings"

	"github.com/kdpii/nerlabel/internal/cli"
	"github.com/kdpii/nerlabel/internal/models"
	"github.com/spf13/cobra"
)

// FlagParser provides common flag extraction patterns.
// Parse errors are *cli.UsageError values.
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", cli.Usagef("--%s is required", flagName)
	}
	return value, nil
}

// ParseInt extracts a required positive int flag
func (p *FlagParser) ParseInt(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	if value <= 0 {
		return 0, cli.Usagef("--%s must be greater than 0", flagName)
	}
	return value, nil
}

// OptionalString returns the flag value when it was set, else nil
func (p *FlagParser) OptionalString(flagName string) *string {
	if !p.cmd.Flags().Changed(flagName) {
		return nil
	}
	v, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalInt returns the flag value when it was set, else nil
func (p *FlagParser) OptionalInt(flagName string) *int {
	if !p.cmd.Flags().Changed(flagName) {
		return nil
	}
	v, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalBool returns the flag value when it was set, else nil
func (p *FlagParser) OptionalBool(flagName string) *bool {
	if !p.cmd.Flags().Changed(flagName) {
		return nil
	}
	v, err := p.cmd.Flags().GetBool(flagName)
	if err != nil {
		return nil
	}
	return &v
}

// ParseColor extracts and validates an optional color flag.
// A missing # is added; an empty value is returned as is.
func (p *FlagParser) ParseColor(flagName string) (string, error) {
	color, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.Usagef("failed to parse %s flag: %v", flagName, err)
	}
	if color == "" {
		return "", nil
	}
	color = models.NormalizeColor(color)
	if err := models.ValidateColor(color); err != nil {
		return "", err
	}
	return color, nil
}
