//go:build !darwin

package appquery

import "errors"

// New returns an error on platforms without a window-document query.
func New() (Querier, error) {
	return nil, errors.New("document window queries are only supported on macOS")
}
