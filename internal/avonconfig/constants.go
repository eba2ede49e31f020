// Package avonconfig holds the engine's tunable constants in one place,
// the way the teacher's internal/config package centralizes magic numbers
// and recognized file extensions instead of scattering them.
package avonconfig

// Version is the current Avon engine version.
var Version = "0.1.0"

const SourceFileExt = ".avon"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".avon", ".av"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Bounds guarding termination and memory growth (see spec.md §4.4, §4.5).
const (
	MaxEvalDepth            = 200
	MaxEvalSteps            = 1_000_000
	MaxEnvEntries           = 100_000
	MaxTemplateChunks       = 100_000
	MaxTemplateIterations   = 1_000_000
	MaxTemplateDepth        = 200
	MaxStringifyDepth       = 200
	MaxDictStringifyEntries = 100
	MaxTemplateCaptureSize  = 100_000
)
