// Package verby holds build metadata for the verby trainer.
package verby

// Version is the release reported by `verby version`.
const Version = "0.3.0"
