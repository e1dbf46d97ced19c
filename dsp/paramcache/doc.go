// Package paramcache memoizes constants derived from parameter snapshots.
//
// A [Group] owns one derived value and the list of parameter fields it
// depends on. [Group.Get] compares the current values of those fields with
// the snapshot taken at the last recomputation and reruns the compute
// function only when at least one of them differs. Comparison is exact
// float inequality.
//
// A [Cache] registers groups so they can be invalidated together, for
// example after a sample-rate change, and exposes recompute counters.
package paramcache
