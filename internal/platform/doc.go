package platform

// Package platform contains OS integration glue: sounds directory
// resolution, filesystem helpers, and opening folders in the system
// file manager.
