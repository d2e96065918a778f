// Package order implements the Order aggregate: the canonical order record
// shared by the dispatch coordinator, the lifecycle state machine, and the
// payment reconciler. Status transitions follow a fixed adjacency table with
// Cancelled as the universal escape; payment settlement is recorded at most
// once per order.
package order
