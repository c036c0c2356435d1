// Package match aligns an old and a new element tree.
//
// Match walks both trees in lock-step and produces a single-pass stream of
// traversal events. Every event carries a Pair (old, new) where at least one
// side is present:
//
//   - both present – the element survived and is a candidate for modification;
//   - old only     – the element was removed;
//   - new only     – the element was added.
//
// Children are paired by kind and qualified identity; methods additionally by
// erased signature, so overloads never cross-pair. Pairs come out depth-first,
// a container before its children, old-tree order first and new-only additions
// last, which makes the output reproducible run to run.
//
// The stream is lazy and cannot be restarted: pairing of a subtree happens
// when the traversal enters it. Consumers that need subtree boundaries (the
// check dispatcher) read Enter/Leave events via Next; everybody else ranges
// over Pairs.
package match
