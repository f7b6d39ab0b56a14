package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tothedarktowercame/loom/internal/category"
	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// ValidationResult holds validation results for one wiring.
type ValidationResult struct {
	Valid      bool                     `json:"valid"`
	WiringID   string                   `json:"wiring_id,omitempty"`
	Structural []wiring.StructuralError `json:"structural_errors,omitempty"`
	Types      []category.TypeError     `json:"type_errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <wiring>",
		Short: "Validate a wiring's structure and port types",
		Long: `Validate a wiring definition without evaluating it.

Checks structural well-formedness (node ids, edge endpoints, output
node) and port type compatibility against the component registry.
All errors are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	w, err := LoadWiring(arg)
	if err != nil {
		formatter.Error(ErrCodeLoad, err.Error(), nil)
		return err
	}

	reg, err := registry.Load()
	if err != nil {
		formatter.Error(ErrCodeLoad, "registry load failed", err.Error())
		return WrapExitError(ExitCommandError, "registry load failed", err)
	}

	result := ValidationResult{
		Structural: wiring.Validate(w.Diagram, reg.Has),
	}
	if len(result.Structural) == 0 {
		report := category.ValidateDiagramTypes(reg, w.Diagram)
		result.Types = report.Errors
	}
	result.Valid = len(result.Structural) == 0 && len(result.Types) == 0
	if result.Valid {
		result.WiringID = wiring.MustWiringID(w.Diagram)
	}

	if !result.Valid {
		var b strings.Builder
		fmt.Fprintf(&b, "invalid: %d structural, %d type error(s)", len(result.Structural), len(result.Types))
		for _, e := range result.Structural {
			fmt.Fprintf(&b, "\n  [%s] %s", e.Code, e.Message)
		}
		for _, e := range result.Types {
			fmt.Fprintf(&b, "\n  [type] %s", e.Message)
		}
		if err := formatter.SuccessText(b.String(), result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	return formatter.SuccessText(fmt.Sprintf("valid: %s", result.WiringID), result)
}
