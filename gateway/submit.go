package gateway

// Runner decides how the transfer submission step executes.
//
// Pay hands the post-quote SendTransfer to a Runner so the caller's response
// latency is bounded by quoting, never by submission. Async is the production
// mode; Sync exists so tests (and debugging sessions) can observe submission
// outcomes deterministically without sleeping.
type Runner interface {
	Do(fn func())
}

// Async runs each function in its own goroutine.
type Async struct{}

func (Async) Do(fn func()) { go fn() }

// Sync runs the function inline.
type Sync struct{}

func (Sync) Do(fn func()) { fn() }
