// Package model defines the data types shared by every stage of the
// extraction pipeline: recognized text fragments, reconstructed tables,
// column zones, and column mappings.
//
// All types are plain values. Pipeline stages take them as input and
// produce new ones; nothing in this package holds cross-call state.
package model
