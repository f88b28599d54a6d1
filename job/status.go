package job

// Status is the outcome of a single poll attempt. Done with a non-nil
// Result means the underlying operation finished; Done with a nil Result
// is deliberately treated as "not done" and counts toward the retry
// ceiling — completion requires both the flag and a present result.
type Status[U any] struct {
	Done   bool
	Result *U
}

// Done builds a completed status carrying the given result.
func Done[U any](result U) Status[U] {
	return Status[U]{Done: true, Result: &result}
}

// NotDone builds a status indicating the operation is still in progress.
func NotDone[U any]() Status[U] {
	return Status[U]{}
}

// RawStatus is the type-erased form of Status consumed by the manager.
// HasResult distinguishes a present result from "done without a usable
// result".
type RawStatus struct {
	Done      bool
	Result    any
	HasResult bool
}
