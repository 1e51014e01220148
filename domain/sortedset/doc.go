// Package sortedset implements an ordered, duplicate-free set backed by
// a red-black tree. Ordering is supplied entirely by the caller as a
// strict "bigger than" comparator plus an equality predicate; the set
// assumes the two are consistent and form a strict total order.
//
// Alongside the tree the set keeps an identity index (Go map-key
// equality) from value to owning node, so Has and Delete are O(1)
// average when the caller holds the exact stored value. Identity is a
// separate notion from the comparator's equality: two values can be
// equal under the predicate yet distinct map keys, and both kinds of
// duplicate are rejected at insert.
//
// A set is not safe for concurrent use. A single writer may mutate it;
// readers must be excluded externally while a mutation runs.
package sortedset
