// Package types defines the Entry type, the Notebook persistence interface,
// configuration, and the standard error values shared by the verby packages.
package types
