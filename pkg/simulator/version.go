package simulator

import (
	"context"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"

	"hdlrun/pkg/runner"
)

// Oldest releases the flag sets in this package are known to work with.
var minimumVersions = map[Backend]string{
	ModelSim: "2020.1",
	Questa:   "2020.1",
	NVC:      "1.9.0",
}

var versionArgs = map[Backend][]string{
	ModelSim: {"vsim", "-version"},
	Questa:   {"vsim", "-version"},
	NVC:      {"nvc", "--version"},
}

// ProbeVersion asks the backend binary for its version. Backends print
// free-form banners ("QuestaSim-64 vsim 2023.2 Simulator ...",
// "nvc 1.11.0 (Using LLVM 14.0.0)"), so the first parseable token wins.
func ProbeVersion(ctx context.Context, cr runner.CommandRunner, backend Backend) (*goversion.Version, error) {
	args, ok := versionArgs[backend]
	if !ok {
		return nil, fmt.Errorf("no version probe for backend %s", backend)
	}
	out, err := cr.Run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("probe %s version: %w", backend, err)
	}
	v := parseVersionToken(out)
	if v == nil {
		return nil, fmt.Errorf("no version found in %s output", args[0])
	}
	return v, nil
}

// WarnIfUnsupported logs a warning when the backend is older than the floor
// this tool was validated against. Probe failures are debug-level only: the
// framework will surface a genuinely broken install on its own.
func WarnIfUnsupported(ctx context.Context, logger zerolog.Logger, cr runner.CommandRunner, backend Backend) {
	floor, ok := minimumVersions[backend]
	if !ok {
		return
	}
	v, err := ProbeVersion(ctx, cr, backend)
	if err != nil {
		logger.Debug().Err(err).Str("backend", string(backend)).Msg("Simulator version probe failed")
		return
	}
	min := goversion.Must(goversion.NewVersion(floor))
	if v.LessThan(min) {
		logger.Warn().
			Str("backend", string(backend)).
			Str("version", v.String()).
			Str("minimum", floor).
			Msg("Simulator is older than the validated minimum")
	}
}

func parseVersionToken(output string) *goversion.Version {
	for _, field := range strings.Fields(output) {
		// Single tokens like "vsim" or "Simulator" parse as versions under
		// loose rules, so require a dotted numeric shape first.
		if !strings.ContainsRune(field, '.') {
			continue
		}
		if field[0] < '0' || field[0] > '9' {
			continue
		}
		if v, err := goversion.NewVersion(field); err == nil {
			return v
		}
	}
	return nil
}
