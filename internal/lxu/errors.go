// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTooLarge      = errors.New("too many cube pairs to store")
	ErrDuplicateCube = errors.New("cover has duplicated cubes")
	ErrNotSCCFree    = errors.New("cover is not single-cube-containment free")
	ErrLiteralOrder  = errors.New("cube literals not in increasing variable order")
	ErrEmptyLiteral  = errors.New("cube has a fanin with no allowed value")
	ErrBadCover      = errors.New("cover does not match node fanins")
	ErrInternal      = errors.New("internal invariant violated")
)

// invariantError is raised by panic when the matrix is found in a state
// which should be unreachable.  Extract recovers it.
type invariantError struct {
	msg string
}

func (e *invariantError) Error() string {
	return e.msg
}

func invariant(format string, args ...interface{}) {
	panic(&invariantError{msg: fmt.Sprintf(format, args...)})
}

// recoverInvariant turns an invariant panic into an error wrapping
// ErrInternal.  Other panics are propagated.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*invariantError)
	if !ok {
		panic(r)
	}
	*err = errors.Wrap(ErrInternal, ie.msg)
}
