// Package version exposes the build version, set at link time with
// -ldflags "-X github.com/bedrock-oss/wikigen/internal/version.Current=v1.2.3".
package version

// Current is the version reported by the version command.
var Current = "dev"
