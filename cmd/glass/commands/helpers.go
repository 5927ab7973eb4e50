package commands

import (
	"path/filepath"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/zerr"
)

// failed reports an operation that returned false. The cause has already been logged.
func failed(op string) error {
	return zerr.With(zerr.Wrap(domain.ErrCommandFailed, op), "operation", op)
}

func absPath(p string) (string, error) {
	if p == "" {
		return "", domain.ErrEmptyPath
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", p)
	}
	return abs, nil
}
