package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tothedarktowercame/loom/internal/wiring"
	"github.com/tothedarktowercame/loom/internal/wiringgen"
)

// LoadWiring resolves a wiring argument to a loaded wiring.
//
// Three forms are accepted:
//   - a path to a JSON wiring definition
//   - "rule:N" for an elementary rule wiring (N in 0..255)
//   - "hexagram:N" for a hexagram wiring (N in 1..64)
//
// Generated forms let commands operate on reference wirings without
// definition files on disk.
func LoadWiring(arg string) (*wiring.Wiring, error) {
	if rest, ok := strings.CutPrefix(arg, "rule:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > 255 {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid rule number %q", rest), err)
		}
		return wiringgen.FromRule(uint8(n)), nil
	}

	if rest, ok := strings.CutPrefix(arg, "hexagram:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid hexagram number %q", rest), err)
		}
		w, err := wiringgen.FromHexagram(n)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid hexagram", err)
		}
		return w, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", arg), err)
	}

	w, err := wiring.UnmarshalWiring(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot parse %s", arg), err)
	}
	return w, nil
}
