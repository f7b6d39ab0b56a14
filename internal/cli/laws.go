package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tothedarktowercame/loom/internal/category"
	"github.com/tothedarktowercame/loom/internal/registry"
)

// LawsResult aggregates the identity and associativity reports.
type LawsResult struct {
	Passed        bool               `json:"passed"`
	Identity      category.LawReport `json:"identity"`
	Associativity category.LawReport `json:"associativity"`
}

// NewLawsCommand creates the laws command.
func NewLawsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laws",
		Short: "Verify category laws over the component registry",
		Long: `Build the category induced by the component registry and check
identity and associativity laws over all composable morphism pairs
and triples. Every failure is listed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaws(rootOpts, cmd)
		},
	}
	return cmd
}

func runLaws(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := registry.Load()
	if err != nil {
		formatter.Error(ErrCodeLoad, "registry load failed", err.Error())
		return WrapExitError(ExitCommandError, "registry load failed", err)
	}

	cat := category.Build(reg)
	result := LawsResult{
		Identity:      cat.VerifyIdentityLaws(),
		Associativity: cat.VerifyAssociativity(),
	}
	result.Passed = result.Identity.Passed && result.Associativity.Passed

	var b strings.Builder
	fmt.Fprintf(&b, "identity: %d checked, %d failed\n",
		result.Identity.Checked, len(result.Identity.Failures))
	fmt.Fprintf(&b, "associativity: %d checked, %d failed",
		result.Associativity.Checked, len(result.Associativity.Failures))
	for _, f := range result.Identity.Failures {
		fmt.Fprintf(&b, "\n  %s", f.Message)
	}
	for _, f := range result.Associativity.Failures {
		fmt.Fprintf(&b, "\n  %s", f.Message)
	}

	if err := formatter.SuccessText(b.String(), result); err != nil {
		return err
	}
	if !result.Passed {
		return NewExitError(ExitFailure, "category laws failed")
	}
	return nil
}
