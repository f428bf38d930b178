// Package fallback implements the ordered "try each candidate, keep the first
// hit" pattern shared by series identifiers, endpoint lists and adapter chains.
package fallback

import "context"

// Outcome is the result of a FirstSuccessful run.
type Outcome[C, R any] struct {
	Candidate C
	Result    R
	Index     int
	OK        bool
	// Tried is the number of candidates probed.
	Tried int
}

// FirstSuccessful probes candidates in order and stops at the first success.
// probe reports whether the candidate produced a usable result.
// When no candidate succeeds, Result holds the last probed result and OK is
// false. A cancelled context stops the walk before the next probe.
func FirstSuccessful[C, R any](ctx context.Context, candidates []C, probe func(ctx context.Context, candidate C) (R, bool)) Outcome[C, R] {
	out := Outcome[C, R]{Index: -1}
	for i, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		r, ok := probe(ctx, c)
		out.Tried++
		out.Candidate, out.Result, out.Index = c, r, i
		if ok {
			out.OK = true
			return out
		}
	}
	return out
}
