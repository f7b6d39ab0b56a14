package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tothedarktowercame/loom/internal/signature"
	"github.com/tothedarktowercame/loom/internal/wiringgen"
)

// CompareResult reports structural similarity between two wirings.
type CompareResult struct {
	Similarity float64   `json:"similarity"`
	VectorA    []float64 `json:"landmark_vector_a"`
	VectorB    []float64 `json:"landmark_vector_b"`
	Landmarks  []string  `json:"landmarks"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <wiring-a> <wiring-b>",
		Short: "Compare two wirings structurally",
		Long: `Compute the Jaccard path-signature similarity between two wirings,
plus each wiring's similarity vector against the fixed landmark
rules. Wirings differing only in node ids compare as identical.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runCompare(opts *RootOptions, argA, argB string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := LoadWiring(argA)
	if err != nil {
		formatter.Error(ErrCodeLoad, err.Error(), nil)
		return err
	}
	b, err := LoadWiring(argB)
	if err != nil {
		formatter.Error(ErrCodeLoad, err.Error(), nil)
		return err
	}

	landmarks := wiringgen.Landmarks()
	names := make([]string, len(landmarks))
	for i, lm := range landmarks {
		names[i] = lm.Meta.Name
	}

	vecA, err := signature.LandmarkVector(a, landmarks)
	if err != nil {
		formatter.Error(ErrCodeEval, "landmark vector failed", err.Error())
		return WrapExitError(ExitCommandError, "landmark vector failed", err)
	}
	vecB, err := signature.LandmarkVector(b, landmarks)
	if err != nil {
		formatter.Error(ErrCodeEval, "landmark vector failed", err.Error())
		return WrapExitError(ExitCommandError, "landmark vector failed", err)
	}

	result := CompareResult{
		Similarity: signature.SimilarityOf(a, b),
		VectorA:    vecA,
		VectorB:    vecB,
		Landmarks:  names,
	}

	var out strings.Builder
	fmt.Fprintf(&out, "similarity: %.4f\n", result.Similarity)
	fmt.Fprintf(&out, "%-10s %8s %8s", "landmark", "a", "b")
	for i, name := range names {
		fmt.Fprintf(&out, "\n%-10s %8.4f %8.4f", name, result.VectorA[i], result.VectorB[i])
	}
	return formatter.SuccessText(out.String(), result)
}
