// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly. Real() provides wall-clock behavior; Fake() provides a
// deterministic clock that moves only when the test says so. Every
// store in this repository stamps created_at and updated_at from an
// injected Clock, which is what makes timestamp assertions in tests
// exact instead of approximate.
package clock

import "time"

// Clock abstracts the current time. Production code injects Real();
// tests inject Fake() with deterministic time control.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
