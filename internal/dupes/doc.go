// Package dupes decides whether a release about to be uploaded already
// exists on a tracker. Given the candidate list a tracker search returned
// and the upload's metadata, it filters the candidates through an ordered
// chain of exclusion rules and returns the survivors (genuine duplicates
// that should block the upload) together with annotations describing what
// matched, including any season packs eligible as trump-report targets.
//
// The central contract is default inclusion: a candidate is kept as a
// duplicate unless some rule explicitly excludes it. Malformed or
// ambiguous tracker data keeps the candidate.
package dupes
