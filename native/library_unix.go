//go:build darwin || linux

package native

import "github.com/ebitengine/purego"

func dlOpen(path string) (uintptr, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return 0, &LoadError{Path: path, Detail: err.Error()}
	}
	return handle, nil
}

func dlSym(handle uintptr, name string) uintptr {
	addr, err := purego.Dlsym(handle, name)
	if err != nil {
		return 0
	}
	return addr
}

func dlClose(handle uintptr) error {
	return purego.Dlclose(handle)
}
