// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fx

import (
	"github.com/irifrance/fx/internal/lxu"
	"github.com/pkg/errors"
)

// Errors returned by Extract, possibly wrapped.  Use errors.Cause to test
// for them.
var (
	ErrComplUnsupported = errors.New("complement extraction is not supported")
	ErrNoPlacer         = errors.New("beta is non-zero but no placer command is given")
	ErrTooLarge         = lxu.ErrTooLarge
	ErrDuplicateCube    = lxu.ErrDuplicateCube
	ErrNotSCCFree       = lxu.ErrNotSCCFree
	ErrLiteralOrder     = lxu.ErrLiteralOrder
	ErrEmptyLiteral     = lxu.ErrEmptyLiteral
	ErrBadCover         = lxu.ErrBadCover
	ErrInternal         = lxu.ErrInternal
)
