// Package function models the functions and monotone operators a
// performance-estimation problem quantifies over.
//
// A Function never evaluates anything: it records every oracle call made
// against it — (point, gradient, value) triples — while an algorithm is being
// specified symbolically. Once the trajectory is frozen, its Class policy
// emits the interpolation constraints: the exact inequalities the recorded
// triples must satisfy for some member of the declared class (smooth strongly
// convex, convex indicator, Lipschitz strongly monotone, ...) to pass through
// all of them.
//
// Oracle calls are idempotent per point identity: re-querying the same Point
// returns the cached gradient/value pair instead of fabricating a second,
// unconstrained gradient. Functions combine linearly (Add, Sub, Scale) into
// derived Functions that delegate to their leaves without duplicating
// recorded calls; combination is associative because the leaf decomposition
// is kept flat.
//
// The constraint count emitted per leaf is quadratic in its number of
// recorded triples — the dominant cost driver of the assembled SDP.
package function
