package internal

import (
	"errors"
	"fmt"
)

// ErrCycle is reported when a computed reads itself, directly or through
// other computeds, while it is being computed.
var ErrCycle = errors.New("computed depends on itself")

// PanicError wraps a value recovered from a panicking user callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ComputeError is returned by a computed whose compute function failed.
type ComputeError struct {
	Node NodeID
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("computed %d: %v", e.Node, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// EffectError describes a failed effect execution.
type EffectError struct {
	Node NodeID
	Err  error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("effect %d: %v", e.Node, e.Err)
}

func (e *EffectError) Unwrap() error { return e.Err }

// DivergenceError is returned by Flush when effects keep re-triggering each
// other past the configured number of passes.
type DivergenceError struct {
	Iterations int
	Pending    []NodeID
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("effects did not settle after %d passes (%d still pending)", e.Iterations, len(e.Pending))
}
