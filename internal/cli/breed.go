package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tothedarktowercame/loom/internal/compose"
	"github.com/tothedarktowercame/loom/internal/store"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// BreedResult reports the offspring of one composition.
type BreedResult struct {
	Operator string       `json:"operator"`
	Children []BreedChild `json:"children"`
}

// BreedChild is one produced wiring.
type BreedChild struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
	Path  string `json:"path,omitempty"`
}

// NewBreedCommand creates the breed command.
func NewBreedCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		operator  string
		mode      string
		threshold float64
		weight    float64
		inputPort string
		outPrefix string
		lineageDB string
	)

	cmd := &cobra.Command{
		Use:   "breed <wiring-a> <wiring-b>",
		Short: "Compose two wirings into offspring",
		Long: `Compose two wirings with one of the breeding operators.

Operators:
  serial     feed A's output into one of B's context inputs
  parallel   run both, select or blend the outputs (--mode threshold|blend)
  boost      modify A with B (--mode post|pre|xor)
  crossover  exchange subgraphs, producing up to two children

With --out, each child is written to <out>-<n>.json. With --lineage,
the breeding is recorded in a SQLite lineage database.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := breedOptions{
				operator:  operator,
				mode:      mode,
				threshold: threshold,
				weight:    weight,
				inputPort: inputPort,
				outPrefix: outPrefix,
				lineageDB: lineageDB,
			}
			return runBreed(rootOpts, args[0], args[1], opts, cmd)
		},
	}

	cmd.Flags().StringVar(&operator, "operator", compose.OpSerial, "breeding operator (serial|parallel|boost|crossover)")
	cmd.Flags().StringVar(&mode, "mode", "", "operator mode (parallel: threshold|blend, boost: post|pre|xor)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "selector threshold for parallel threshold mode")
	cmd.Flags().Float64Var(&weight, "weight", 0.5, "blend weight for parallel blend mode")
	cmd.Flags().StringVar(&inputPort, "input", "self", "context input of B that serial composition feeds")
	cmd.Flags().StringVar(&outPrefix, "out", "", "write children to <out>-<n>.json")
	cmd.Flags().StringVar(&lineageDB, "lineage", "", "record the breeding in this SQLite database")

	return cmd
}

type breedOptions struct {
	operator  string
	mode      string
	threshold float64
	weight    float64
	inputPort string
	outPrefix string
	lineageDB string
}

func runBreed(rootOpts *RootOptions, argA, argB string, opts breedOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

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

	children, err := breedChildren(a, b, opts)
	if err != nil {
		formatter.Error(ErrCodeCompose, "composition failed", err.Error())
		return WrapExitError(ExitFailure, "composition failed", err)
	}
	if len(children) == 0 {
		formatter.Error(ErrCodeCompose, "crossover infeasible: no shared interior component", nil)
		return NewExitError(ExitFailure, "crossover infeasible")
	}

	if opts.lineageDB != "" {
		if err := recordLineage(opts.lineageDB, opts.operator, a, b, children); err != nil {
			formatter.Error(ErrCodeLineage, "lineage record failed", err.Error())
			return WrapExitError(ExitCommandError, "lineage record failed", err)
		}
	}

	result := BreedResult{Operator: opts.operator}
	for i, child := range children {
		entry := BreedChild{
			ID:    wiring.MustWiringID(child.Diagram),
			Name:  child.Meta.Name,
			Nodes: len(child.Diagram.Nodes),
		}
		if opts.outPrefix != "" {
			path := fmt.Sprintf("%s-%d.json", opts.outPrefix, i+1)
			data, err := wiring.MarshalWiring(child)
			if err != nil {
				formatter.Error(ErrCodeCompose, "marshal child failed", err.Error())
				return WrapExitError(ExitCommandError, "marshal child failed", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				formatter.Error(ErrCodeCompose, "write child failed", err.Error())
				return WrapExitError(ExitCommandError, "write child failed", err)
			}
			entry.Path = path
		}
		result.Children = append(result.Children, entry)
	}

	var out strings.Builder
	for i, c := range result.Children {
		if i > 0 {
			out.WriteString("\n")
		}
		fmt.Fprintf(&out, "%s (%d nodes) %s", c.Name, c.Nodes, c.ID)
		if c.Path != "" {
			fmt.Fprintf(&out, " -> %s", c.Path)
		}
	}
	return formatter.SuccessText(out.String(), result)
}

func breedChildren(a, b *wiring.Wiring, opts breedOptions) ([]*wiring.Wiring, error) {
	switch opts.operator {
	case compose.OpSerial:
		child, err := compose.Serial(a, b, compose.WithInputPort(opts.inputPort))
		if err != nil {
			return nil, err
		}
		return []*wiring.Wiring{child}, nil

	case compose.OpParallel:
		var sel compose.Selector
		switch opts.mode {
		case "", "threshold":
			sel = compose.SelectorThreshold(opts.threshold)
		case "blend":
			sel = compose.SelectorBlend(opts.weight)
		default:
			return nil, fmt.Errorf("unknown parallel mode %q", opts.mode)
		}
		child, err := compose.Parallel(a, b, sel)
		if err != nil {
			return nil, err
		}
		return []*wiring.Wiring{child}, nil

	case compose.OpBoost:
		mode := compose.BoostMode(opts.mode)
		if opts.mode == "" {
			mode = compose.BoostPost
		}
		child, err := compose.Boost(a, b, mode)
		if err != nil {
			return nil, err
		}
		return []*wiring.Wiring{child}, nil

	case compose.OpCrossover:
		return compose.Crossover(a, b)

	default:
		return nil, fmt.Errorf("unknown operator %q", opts.operator)
	}
}

func recordLineage(path, operator string, a, b *wiring.Wiring, children []*wiring.Wiring) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	for _, child := range children {
		if _, _, err := s.RecordBreeding(ctx, operator, a, b, child); err != nil {
			return err
		}
	}
	return nil
}
