package model

// Package model defines domain data structures shared across the app: sound
// package descriptors, remote package references, and install results.
// Structures are designed for direct binding in the UI and for canonical
// re-serialization of descriptors.
