package kiwi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"github.com/steosofficial/kiwigo/native"
)

// Model files the engine expects inside a model directory. Not every model
// type ships all of them; a directory is plausible when at least one large
// model file is present and readable.
var modelFileNames = []string{
	"cong.mdl",
	"sj.morph",
	"sj.knlm",
	"skipbigram.mdl",
	"default.dict",
}

// ValidateModelDir checks that path looks like a Kiwi model directory
// before the engine goes to load it. The first model file found is mapped
// read-only to verify the bytes are actually reachable; a directory on a
// broken mount passes os.Stat but fails here.
func ValidateModelDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &native.ArgumentError{Reason: fmt.Sprintf("model path %q: %v", path, err)}
	}
	if !info.IsDir() {
		return &native.ArgumentError{Reason: fmt.Sprintf("model path %q is not a directory", path)}
	}

	for _, name := range modelFileNames {
		full := filepath.Join(path, name)
		fileInfo, err := os.Stat(full)
		if err != nil || fileInfo.IsDir() {
			continue
		}
		if fileInfo.Size() == 0 {
			return &native.ArgumentError{Reason: fmt.Sprintf("model file %q is empty", full)}
		}
		if err := probeModelFile(full); err != nil {
			return err
		}
		return nil
	}
	return &native.ArgumentError{
		Reason: fmt.Sprintf("model path %q contains none of the expected model files", path),
	}
}

func probeModelFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &native.ArgumentError{Reason: fmt.Sprintf("model file %q: %v", path, err)}
	}
	defer file.Close()

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return &native.ArgumentError{Reason: fmt.Sprintf("cannot map model file %q: %v", path, err)}
	}
	defer data.Unmap()

	if len(data) == 0 {
		return &native.ArgumentError{Reason: fmt.Sprintf("model file %q is empty", path)}
	}
	// Touch the first page so a truncated or unreadable mapping surfaces
	// here instead of inside the native load.
	_ = data[0]
	return nil
}
