package metadata

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/runner"
)

// DefaultStatsTool prints statistics of an OSM file.
const DefaultStatsTool = "osmconvert"

// Statistics keys required to build a descriptor.
const (
	keyLonMin       = "lon min"
	keyLonMax       = "lon max"
	keyLatMin       = "lat min"
	keyLatMax       = "lat max"
	keyTimestampMax = "timestamp max"
)

var requiredKeys = []string{keyLonMin, keyLonMax, keyLatMin, keyLatMax, keyTimestampMax}

// Options describe the descriptor to produce.
type Options struct {
	AreaName string
	MinZoom  int
	MaxZoom  int
	Version  string
	// Output is the descriptor path; empty skips writing.
	Output string
}

// Extractor inspects an extract with the statistics tool.
type Extractor struct {
	runner    runner.CommandRunner
	statsTool string
}

// NewExtractor creates an extractor. An empty statsTool selects DefaultStatsTool.
func NewExtractor(r runner.CommandRunner, statsTool string) *Extractor {
	if statsTool == "" {
		statsTool = DefaultStatsTool
	}
	return &Extractor{runner: r, statsTool: statsTool}
}

// Extract reads the statistics of pbfPath and builds its descriptor, writing
// it to opts.Output when set.
func (e *Extractor) Extract(ctx context.Context, pbfPath string, opts Options) (*Descriptor, error) {
	result, err := e.runner.Run(ctx, runner.Command{
		Name:    e.statsTool,
		Args:    []string{"--out-statistics", pbfPath},
		Capture: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrExtraction, err.Error())
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("%w: %s exited with code %d:\n%s%s",
			errors.ErrExtraction, e.statsTool, result.ExitCode, result.Stdout, result.Stderr)
	}

	stats := ParseStatistics(result.Stdout)
	var missing []string
	for _, key := range requiredKeys {
		if stats[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s in %s output:\n%s",
			errors.ErrExtraction, strings.Join(missing, ", "), e.statsTool, result.Stdout)
	}

	area := opts.AreaName
	if area == "" {
		area = AreaNameFromFile(pbfPath)
	}

	desc, err := NewDescriptor(opts.Version, Environment{
		BBox:         strings.Join([]string{stats[keyLonMin], stats[keyLatMin], stats[keyLonMax], stats[keyLatMax]}, ","),
		MaxTimestamp: stats[keyTimestampMax],
		AreaName:     area,
		MinZoom:      opts.MinZoom,
		MaxZoom:      opts.MaxZoom,
	})
	if err != nil {
		return nil, err
	}

	if opts.Output != "" {
		if err := desc.WriteFile(opts.Output); err != nil {
			return nil, err
		}
		logger.Success("Created descriptor", logger.Fields{"path": opts.Output, "area": area, "bbox": desc.Environment().BBox})
	}
	return desc, nil
}

// ParseStatistics reads "key: value" lines. Lines without a colon are ignored.
func ParseStatistics(output string) map[string]string {
	stats := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		stats[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return stats
}
