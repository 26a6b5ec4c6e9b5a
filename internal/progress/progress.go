// Package progress defines the progress-reporting contract shared by the
// analysis phases. Computation code reports through a Sink; transport
// concerns live entirely behind whatever implements it.
package progress

// Sink receives progress checkpoints. Percent is 0-100; implementations
// are expected to keep observed progress monotonically non-decreasing.
type Sink interface {
	Report(percent int, message string)
}

// Func adapts a function to the Sink interface.
type Func func(percent int, message string)

// Report implements Sink.
func (f Func) Report(percent int, message string) { f(percent, message) }

// Nop is a Sink that discards all reports.
var Nop Sink = Func(func(int, string) {})

// Scaled returns a Sink that maps the 0-100 range onto [lo, hi] of the
// parent sink, so a phase can report its own fraction without knowing
// where it sits in the overall operation.
func Scaled(parent Sink, lo, hi int) Sink {
	if parent == nil {
		parent = Nop
	}
	return Func(func(percent int, message string) {
		if percent < 0 {
			percent = 0
		} else if percent > 100 {
			percent = 100
		}
		mapped := lo + (hi-lo)*percent/100
		parent.Report(mapped, message)
	})
}
