// Package transform post-processes problems after the checks ran.
//
// A Transform sees every problem together with the old and new element of the
// pair it was reported for, and returns one of three outcomes: keep it, replace
// it with another problem, or drop it. Transforms run in a fixed order inside a
// Chain; each one sees the output of the previous one and a dropped problem
// never reaches the rest of the chain.
//
// Every transform is responsible for ignoring codes it does not target: the
// chain hands it every problem. Transforms that interpret a change need both
// sides of the pair; they say so through NeedsBothSides and the chain passes
// one-sided problems through them untouched.
package transform
