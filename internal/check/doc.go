// Package check is the rule framework of the analyzer.
//
// A Check declares the element kinds it is interested in and receives one
// visit call per matched, removed or added pair of those kinds. Rules that can
// decide from the pair alone report problems directly from the visit call.
//
// Rules that need more context push a frame on their own active-element
// stack. The Dispatcher owns these stacks: a frame lives exactly as long as the
// traversal stays inside the subtree of the pair it was pushed for, and when
// traversal leaves that depth the frame is popped and handed to Check.End.
// Problems reported from End are attributed to the frame's pair.
//
// Инварианты стека:
//
//   - at most one frame per check and depth;
//   - frames are popped in LIFO order when their depth is left;
//   - after the last event every stack is empty.
//
// Violations are programmer errors in a rule and fail the run with a
// *UsageError. Missing input context is not: a rule that cannot resolve what
// it needs calls Context.Warn and reports nothing.
package check
