// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package demagerr defines the four error kinds shared by every layer
// of the demag engine (§7). It imports none of the
// engine's own packages, so kernel, periodic, tensor,
// workpool, convolve and precond can all return these kinds without
// creating an import cycle back to the root package, which re-exports
// them as type aliases for callers.
package demagerr

import "fmt"

// ConfigError reports a bad configuration: unsupported periodicity,
// non-positive dimensions, a bad save-tensor format, or a
// non-rectangular mesh handed to the engine.
type ConfigError struct {
	Op  string
	Msg string
}

func (e *ConfigError) Error() string {
	if e.Op == "" {
		return "demag: config error: " + e.Msg
	}
	return fmt.Sprintf("demag: config error in %s: %s", e.Op, e.Msg)
}

// NewConfigError builds a ConfigError for operation op.
func NewConfigError(op, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// ResourceError reports an allocation failure inside the tensor
// builder or the per-worker FFT workspace.
type ResourceError struct {
	Op  string
	Msg string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("demag: resource error in %s: %s", e.Op, e.Msg)
}

// NewResourceError builds a ResourceError for operation op.
func NewResourceError(op, format string, args ...any) *ResourceError {
	return &ResourceError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IoError reports a tensor-dump file write failure. The computation
// that triggered the dump remains valid; only persistence failed.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("demag: io error in %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// NewIoError builds an IoError wrapping the underlying cause.
func NewIoError(op, path string, cause error) *IoError {
	return &IoError{Op: op, Path: path, Err: cause}
}

// InvariantError reports an internal consistency failure: a broken
// tensor symmetry self-test, an index overflow, or any other condition
// that should be structurally impossible. It is always fatal.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("demag: invariant violated in %s: %s", e.Op, e.Msg)
}

// NewInvariantError builds an InvariantError for operation op.
func NewInvariantError(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
