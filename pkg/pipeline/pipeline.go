// Package pipeline runs the import → summarize → render steps shared by every
// command.
//
// # Stages
//
//  1. Import: parse statement exports into a [store.Repository]
//  2. Summarize: load a period's transactions and build the [summary.Summary]
//     with its flow graph
//  3. Render: produce output artifacts (JSON, DOT, SVG) from a flow graph
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	report, err := runner.Import(ctx, repo, "2019-09.csv")
//	s, err := runner.Summarize(ctx, repo, pipeline.Options{Month: "2019-09"})
//	artifacts, err := runner.Render(ctx, s.FlowGraph, pipeline.Options{Formats: []string{"svg"}})
//
// Flow graphs are cached by a hash of the transactions they were built from,
// and artifacts by a hash of the graph and the format.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/summary"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options configures a pipeline run.
type Options struct {
	// Month limits the summary to one month ("YYYY-MM"). Empty means all
	// stored transactions.
	Month string `json:"month,omitempty"`
	// Acyclic additionally breaks cycles that survive cycle suppression.
	Acyclic bool `json:"acyclic,omitempty"`
	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Currency string   `json:"currency,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Validate checks the options used by Summarize.
func (o Options) Validate() error {
	return apperrors.ValidateMonth(o.Month)
}

// ValidateForRender checks the options used by Render and applies
// DefaultFormats when none are set.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	return ValidateFormats(o.Formats)
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	return apperrors.ValidateFormats(formats, ValidFormats)
}

// Result is the outcome of a Summarize followed by a Render.
type Result struct {
	Summary   *summary.Summary
	GraphHash string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Transactions  int
	NodeCount     int
	LinkCount     int
	SummarizeTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	FlowHit   bool
	RenderHit bool
}
