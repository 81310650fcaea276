// Package connector holds the single-slot cells that carry values between blocks.
//
// An Output is owned by the block that writes it. An Input references an upstream
// Output and copies its value into its own slot on every Pull, so the two never share
// state beyond that copy.
package connector

// Output is a single-slot cell, overwritten on every write.
type Output[T any] struct {
	value T
	set   bool
}

func (o *Output[T]) Write(v T) {
	o.value, o.set = v, true
}

// Read returns the held value and whether one was ever written.
func (o *Output[T]) Read() (T, bool) {
	return o.value, o.set
}

// Clear empties the slot.
func (o *Output[T]) Clear() {
	var zero T
	o.value, o.set = zero, false
}

// Input is a single-slot cell fed from an upstream Output or set directly.
type Input[T any] struct {
	upstream *Output[T]
	value    T
	set      bool
}

// ConnectTo wires the input to out; nil disconnects it.
func (in *Input[T]) ConnectTo(out *Output[T]) {
	in.upstream = out
}

func (in *Input[T]) Connected() bool {
	return in.upstream != nil
}

// Set supplies a value directly. A connected input replaces it on the next Pull.
func (in *Input[T]) Set(v T) {
	in.value, in.set = v, true
}

// Pull copies the upstream value, when connected, and returns the slot.
func (in *Input[T]) Pull() (T, bool) {
	if in.upstream != nil {
		in.value, in.set = in.upstream.Read()
	}
	return in.value, in.set
}

// Value returns the slot without pulling.
func (in *Input[T]) Value() (T, bool) {
	return in.value, in.set
}
