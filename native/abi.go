package native

import "unsafe"

// The engine passes AnalyzeOption and GlobalConfig by value and returns
// GlobalConfig and MorphemeRaw by value. purego only marshals struct
// signatures on darwin, so these entry points resolve to raw addresses and
// each platform supplies its own calling shims (abi_*.go). A shim a platform
// cannot express safely vetoes the symbol via structABIVeto, which turns the
// owning capability off instead of failing the load.

// The shims rely on the exact 64-bit layouts below; memory-class returns
// additionally assume the struct exceeds two registers.
const (
	_ = 32 - unsafe.Sizeof(AnalyzeOption{})
	_ = unsafe.Sizeof(AnalyzeOption{}) - 32
	_ = 32 - unsafe.Sizeof(GlobalConfig{})
	_ = unsafe.Sizeof(GlobalConfig{}) - 32
	_ = unsafe.Sizeof(MorphemeRaw{}) - 17
)

// structWords reinterprets a by-value struct as machine words for ABIs that
// spill oversized aggregates onto the argument stack. The returned slice
// aliases p.
func structWords(p unsafe.Pointer, size uintptr) []uintptr {
	return unsafe.Slice((*uintptr)(p), size/unsafe.Sizeof(uintptr(0)))
}

// cstr returns s as a NUL-terminated buffer for shims that bypass purego's
// string marshalling.
func cstr(s string) []byte {
	return append([]byte(s), 0)
}
