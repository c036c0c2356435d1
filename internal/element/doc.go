// Package element defines the immutable API element tree consumed by the matcher,
// the checks and the transforms.
//
// # Shape
//
// A tree is a fixed hierarchy: package → type → member → annotation use. Every
// node is an *Element carrying:
//
//   - Kind – closed enum (Package, Type, Method, Field, Annotation, Other).
//   - Identity – qualified name used for matching across versions.
//   - Signature – erased parameter list, methods only; disambiguates overloads.
//   - Modifiers – visibility plus flag set (final, abstract, static, ...).
//   - Children – ordered, exclusively owned sub-elements.
//   - Annotations – annotation uses attached to the element.
//
// Elements never change after construction. Accessors that expose slices hand
// out copies, so no consumer can mutate a tree through them.
//
// # Front-end boundary
//
// Real trees are produced by an external front-end. Decode/LoadFile accept the
// snapshot format (msgpack, YAML or JSON) that such a front-end writes; the
// snapshot is converted into Elements once and is read-only afterwards.
package element
