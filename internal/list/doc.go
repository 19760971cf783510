// Package list implements the ordered collection engine: one List per
// container, holding the authoritative in-memory order of its tasks and
// writing every change through the persistence boundary.
//
// ARCHITECTURE:
//
// Single Writer Per List:
// All mutations on a List are serialized by its mutex. Each operation
// computes its neighbor ranks from the in-memory order the previous
// operation left behind, never from a stale snapshot, so rapid
// back-to-back insertions after the same anchor nest correctly instead
// of colliding or inverting.
//
// Mutation Flow:
//  1. Validate the request against the current order (contract errors
//     surface immediately).
//  2. Compute the new rank from the in-memory neighbors.
//  3. Apply the change to the in-memory order.
//  4. Issue the persistence write while still holding the lock.
//  5. On write failure, roll the in-memory change back.
//
// The in-memory order therefore always matches the last successful
// persistence outcome.
//
// Rebalancing:
// Repeated insertion at one boundary lengthens rank keys. When a written
// rank crosses the configured length threshold, the list recomputes
// evenly spaced ranks for every task and persists them as one atomic
// replacement, inside the same critical section as the triggering
// operation. A rebalance either commits completely or changes nothing.
//
// Loading:
// Load reads outside the lock so loads can overlap; a load whose read
// returns after the list state moved on (a newer load, or any mutation)
// discards its result rather than installing stale order.
package list
