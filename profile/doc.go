// Package profile provides optional runtime profiling for the rollkit
// command.
//
// Profiling integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Default builds compile every operation to a no-op with zero
// overhead; builds with the tag expose the full set of profiling modes:
//
//	go build -tags pprof ./...
//	rollkit --pprof-mode=cpu eval '1000000d20kh1'
//
// Profiles are written to the configured output directory with names
// matching the mode (cpu.pprof, mem.pprof, ...) and analyzed with
// go tool pprof. Use [Modes] to list the supported modes at runtime.
package profile

// Tag is the build tag required to enable profiling, and also names the
// profile output subdirectory under the cache directory.
const Tag = `pprof`
