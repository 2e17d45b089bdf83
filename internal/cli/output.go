package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

// stdoutPath selects standard output as the output file.
const stdoutPath = "-"

// artifactWriteParams describes rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // path without extension used when output is empty
	output    string // -o flag
	nodes     int
	links     int
	cacheHit  bool
}

// writeArtifacts writes one file per format and prints where they went.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == stdoutPath {
		if len(p.formats) != 1 {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "-o - needs exactly one format")
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := outputPaths(p.formats, p.base, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Wrote %d file(s)", len(p.formats))
	printStats(p.nodes, p.links, p.cacheHit)
	for _, format := range p.formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its file. A single format with an
// explicit output is written there as is; otherwise files are named
// <base>.<format>, where base is the output without its extension.
func outputPaths(formats []string, base, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
