// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/virtualboard/orf/internal/version.Current=v1.2.3".
package version

// Current is the running binary's version.
var Current = "dev"
