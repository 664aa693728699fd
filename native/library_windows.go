//go:build windows

package native

import "golang.org/x/sys/windows"

func dlOpen(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, &LoadError{Path: path, Detail: err.Error()}
	}
	return uintptr(handle), nil
}

func dlSym(handle uintptr, name string) uintptr {
	addr, err := windows.GetProcAddress(windows.Handle(handle), name)
	if err != nil {
		return 0
	}
	return addr
}

func dlClose(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
