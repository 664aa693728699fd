package kiwi

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/steosofficial/kiwigo/native"
)

// Environment overrides consumed (read once) when Config leaves the
// corresponding path empty.
const (
	EnvLibraryPath = "KIWI_LIBRARY_PATH"
	EnvModelPath   = "KIWI_MODEL_PATH"
)

// Error kinds re-exported so callers only need this package for errors.As.
type (
	LoadError          = native.LoadError
	MissingSymbolError = native.MissingSymbolError
	CapabilityError    = native.CapabilityError
	CallError          = native.CallError
	ArgumentError      = native.ArgumentError
	StateError         = native.StateError
)

// Capability aliases for the feature groups callers gate on most often.
type Capability = native.Capability

const (
	CapUTF16         = native.CapUTF16
	CapBatch         = native.CapBatch
	CapTypo          = native.CapTypo
	CapSentenceSplit = native.CapSentenceSplit
	CapJoiner        = native.CapJoiner
	CapSwTokenizer   = native.CapSwTokenizer
	CapSimilarity    = native.CapSimilarity
)

// Library is one loaded Kiwi shared library. Every handle created from it
// takes its own reference on the image, so the image stays loaded until the
// library and all of its handles are closed, in any order.
type Library struct {
	lib *native.Library
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	lib, err := native.Load(path)
	if err != nil {
		return nil, err
	}
	return &Library{lib: lib}, nil
}

// OpenDefault loads the library from the KIWI_LIBRARY_PATH environment
// variable when set, otherwise from the platform's default locations.
func OpenDefault() (*Library, error) {
	if path := os.Getenv(EnvLibraryPath); path != "" {
		return Open(path)
	}

	var lastErr error
	for _, candidate := range defaultLibraryCandidates() {
		lib, err := Open(candidate)
		if err == nil {
			return lib, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &native.LoadError{Path: "", Detail: "no default library candidates for this platform"}
}

// Capabilities reports the feature groups the loaded library provides.
func (l *Library) Capabilities() native.CapabilitySet {
	return l.lib.Capabilities()
}

// Path returns the filesystem path the library was loaded from.
func (l *Library) Path() string {
	return l.lib.Path()
}

// Version returns the engine version string.
func (l *Library) Version() (string, error) {
	p := l.lib.Version()
	if p == nil {
		return "", l.lib.CallErr("kiwi_version", "returned a null pointer")
	}
	return native.GoString(p), nil
}

// Close drops the library's own reference on the image. The OS handle is
// released once every handle created from the library is closed too.
func (l *Library) Close() error {
	return l.lib.Release()
}

func defaultLibraryCandidates() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		candidates := []string{}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			candidates = append(candidates, filepath.Join(local, "kiwi", "lib", "kiwi.dll"))
		}
		return append(candidates,
			`C:\kiwi\lib\kiwi.dll`,
			`C:\Program Files\Kiwi\lib\kiwi.dll`,
			"kiwi.dll",
			"libkiwi.dll",
		)
	case "darwin":
		candidates := []string{}
		if home != "" {
			candidates = append(candidates, filepath.Join(home, ".local", "kiwi", "lib", "libkiwi.dylib"))
		}
		return append(candidates,
			"/usr/local/lib/libkiwi.dylib",
			"/opt/homebrew/lib/libkiwi.dylib",
			"libkiwi.dylib",
			"kiwi.dylib",
		)
	default:
		candidates := []string{}
		if home != "" {
			candidates = append(candidates, filepath.Join(home, ".local", "kiwi", "lib", "libkiwi.so"))
		}
		return append(candidates,
			"/usr/local/lib/libkiwi.so",
			"/usr/lib/libkiwi.so",
			"libkiwi.so",
			"kiwi.so",
		)
	}
}

func defaultModelCandidates() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		candidates := []string{}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			candidates = append(candidates, filepath.Join(local, "kiwi", "models", "cong", "base"))
		}
		return append(candidates,
			`C:\kiwi\models\cong\base`,
			`C:\Program Files\Kiwi\models\cong\base`,
		)
	case "darwin":
		candidates := []string{}
		if home != "" {
			candidates = append(candidates, filepath.Join(home, ".local", "kiwi", "models", "cong", "base"))
		}
		return append(candidates,
			"/usr/local/models/cong/base",
			"/opt/homebrew/models/cong/base",
			"/usr/local/share/kiwi/models/cong/base",
		)
	default:
		candidates := []string{}
		if home != "" {
			candidates = append(candidates, filepath.Join(home, ".local", "kiwi", "models", "cong", "base"))
		}
		return append(candidates,
			"/usr/local/models/cong/base",
			"/usr/local/share/kiwi/models/cong/base",
			"/usr/share/kiwi/models/cong/base",
		)
	}
}

// DiscoverModelPath resolves the model directory: KIWI_MODEL_PATH first,
// then the platform default locations. Empty when nothing exists.
func DiscoverModelPath() string {
	if path := os.Getenv(EnvModelPath); path != "" {
		return path
	}
	for _, candidate := range defaultModelCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
