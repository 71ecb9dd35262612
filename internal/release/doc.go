// Package release defines the shared data model for the upload pipeline:
// the metadata describing the release being uploaded (Meta), the canonical
// shape of an existing release found on a tracker (Entry), and the Outcome
// value the dupe checker returns to its caller.
//
// Tracker search clients return candidates in loose shapes (a bare name
// string or a partial mapping). ParseCandidate normalizes every input into
// an Entry at the boundary so the rest of the engine works with one type.
package release
