package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tothedarktowercame/loom/internal/engine"
	"github.com/tothedarktowercame/loom/internal/registry"
	"github.com/tothedarktowercame/loom/internal/wiring"
)

// EvalResult is the JSON payload for a single evaluation.
type EvalResult struct {
	Output any            `json:"output"`
	Nodes  map[string]any `json:"nodes,omitempty"`
}

// TableResult is the JSON payload for --table mode.
type TableResult struct {
	Rows []TableRow `json:"rows"`
	Rule uint8      `json:"rule"`
}

// TableRow is one neighborhood of the rule table.
type TableRow struct {
	Pred uint8 `json:"pred"`
	Self uint8 `json:"self"`
	Succ uint8 `json:"succ"`
	Out  uint8 `json:"out"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var pred, self, succ uint8
	var table bool

	cmd := &cobra.Command{
		Use:   "eval <wiring>",
		Short: "Evaluate a wiring for one cell neighborhood",
		Long: `Evaluate a wiring against a single pred/self/succ context.

With --table, instead evaluates all eight binary neighborhoods and
prints the rule table plus the elementary rule number it encodes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if table {
				return runEvalTable(rootOpts, args[0], cmd)
			}
			ctx := wiring.Context{
				Pred: wiring.Sigil(pred),
				Self: wiring.Sigil(self),
				Succ: wiring.Sigil(succ),
			}
			return runEval(rootOpts, args[0], ctx, cmd)
		},
	}

	cmd.Flags().Uint8Var(&pred, "pred", 0, "predecessor cell value (0-255)")
	cmd.Flags().Uint8Var(&self, "self", 0, "own cell value (0-255)")
	cmd.Flags().Uint8Var(&succ, "succ", 0, "successor cell value (0-255)")
	cmd.Flags().BoolVar(&table, "table", false, "evaluate all 8 binary neighborhoods")

	return cmd
}

func runEval(opts *RootOptions, arg string, ctx wiring.Context, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	w, ev, err := loadEvaluator(arg, formatter)
	if err != nil {
		return err
	}

	result, err := ev.Evaluate(w.Diagram, ctx)
	if err != nil {
		formatter.Error(ErrCodeEval, "evaluation failed", err.Error())
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}

	payload := EvalResult{Output: wiring.EncodeValue(result.Output)}
	if opts.Verbose {
		payload.Nodes = make(map[string]any, len(result.NodeOutputs))
		for id, outs := range result.NodeOutputs {
			ports := make(map[string]any, len(outs))
			for port, v := range outs {
				ports[port] = wiring.EncodeValue(v)
			}
			payload.Nodes[id] = ports
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", payload.Output)
	if opts.Verbose {
		ids := make([]string, 0, len(payload.Nodes))
		for id := range payload.Nodes {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "\n  %s: %v", id, payload.Nodes[id])
		}
	}
	return formatter.SuccessText(b.String(), payload)
}

func runEvalTable(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	w, ev, err := loadEvaluator(arg, formatter)
	if err != nil {
		return err
	}

	var result TableResult
	for n := 7; n >= 0; n-- {
		ctx := wiring.Context{
			Pred: wiring.Sigil((n >> 2) & 1),
			Self: wiring.Sigil((n >> 1) & 1),
			Succ: wiring.Sigil(n & 1),
		}
		r, err := ev.Evaluate(w.Diagram, ctx)
		if err != nil {
			formatter.Error(ErrCodeEval, "evaluation failed", err.Error())
			return WrapExitError(ExitFailure, "evaluation failed", err)
		}
		out := outputBit(r.Output)
		result.Rows = append(result.Rows, TableRow{
			Pred: uint8(ctx.Pred), Self: uint8(ctx.Self), Succ: uint8(ctx.Succ), Out: out,
		})
		result.Rule |= out << n
	}

	var b strings.Builder
	for _, row := range result.Rows {
		fmt.Fprintf(&b, "%d%d%d -> %d\n", row.Pred, row.Self, row.Succ, row.Out)
	}
	fmt.Fprintf(&b, "rule %d", result.Rule)
	return formatter.SuccessText(b.String(), result)
}

func loadEvaluator(arg string, formatter *OutputFormatter) (*wiring.Wiring, *engine.Evaluator, error) {
	w, err := LoadWiring(arg)
	if err != nil {
		formatter.Error(ErrCodeLoad, err.Error(), nil)
		return nil, nil, err
	}
	reg, err := registry.Load()
	if err != nil {
		formatter.Error(ErrCodeLoad, "registry load failed", err.Error())
		return nil, nil, WrapExitError(ExitCommandError, "registry load failed", err)
	}
	return w, engine.New(reg), nil
}

// outputBit reduces an output value to its low bit.
func outputBit(v wiring.Value) uint8 {
	if s, ok := v.(wiring.Sigil); ok {
		return uint8(s) & 1
	}
	return 0
}
