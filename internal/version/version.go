// Package version holds grouper's release version string.
package version

// Current is the current release version of grouper.
const Current = "0.1.0"
