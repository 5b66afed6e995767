// internal/version/version.go
package version

// Version is stamped at build time:
//
//	go build -ldflags "-X meisenheimer/internal/version.Version=1.0.0"
var Version = "alpha"
