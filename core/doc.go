// Package core defines the primary data model shared by every clustering
// engine in this module: Vertex and Edge, the canonical symmetric
// Neighbors relation a threshold induces over an edge set, and the
// sentinel errors returned by Graph Preparation.
//
// Neighbors is deliberately a flat, index-addressed structure (two
// parallel slices, CSR-style) rather than a map of maps: the engines in
// lpuf, activeset, and rpc sweep every vertex's neighbor list once per
// iteration, and a contiguous slice keeps that sweep cache-friendly at
// the vertex counts this module targets.
package core
