package cli

import (
	"context"
	"errors"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

// Exit codes returned by the rabo binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2   // invalid input, flags, config or statement files
	ExitUnavailable = 3   // storage or cache backend unreachable
	ExitInterrupted = 130 // SIGINT, shell convention
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidRow,
		apperrors.ErrCodeMissingField,
		apperrors.ErrCodeInvalidAmount,
		apperrors.ErrCodeInvalidDate,
		apperrors.ErrCodeInvalidMonth,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeFileNotFound:
		return ExitUsage
	case apperrors.ErrCodeStorage,
		apperrors.ErrCodeCache,
		apperrors.ErrCodeTimeout:
		return ExitUnavailable
	}
	return ExitFailure
}
