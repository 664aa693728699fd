//go:build linux && amd64

package native

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// System V AMD64 passes aggregates larger than 16 bytes in the stack
// argument area and returns them through a hidden pointer in the first
// integer register. The shims pad the six integer registers and append the
// struct words as stack arguments; returned structs travel through an out
// pointer prepended to the argument list.

type structABI struct{}

func structABIVeto() []string { return nil }

func (l *Library) initStructABI() {}

func (l *Library) Analyze(engine EngineHandle, text string, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	buf := cstr(text)
	w := structWords(unsafe.Pointer(&option), unsafe.Sizeof(option))
	r, _, _ := purego.SyscallN(l.analyzeAddr,
		uintptr(engine),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(topN),
		uintptr(pretokenized),
		0, 0,
		w[0], w[1], w[2], w[3])
	runtime.KeepAlive(buf)
	runtime.KeepAlive(&option)
	return ResultHandle(r)
}

func (l *Library) AnalyzeW(engine EngineHandle, text *uint16, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	w := structWords(unsafe.Pointer(&option), unsafe.Sizeof(option))
	r, _, _ := purego.SyscallN(l.analyzeWAddr,
		uintptr(engine),
		uintptr(unsafe.Pointer(text)),
		uintptr(topN),
		uintptr(pretokenized),
		0, 0,
		w[0], w[1], w[2], w[3])
	runtime.KeepAlive(text)
	runtime.KeepAlive(&option)
	return ResultHandle(r)
}

func (l *Library) AnalyzeM(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	w := structWords(unsafe.Pointer(&option), unsafe.Sizeof(option))
	r, _, _ := purego.SyscallN(l.analyzeMAddr,
		uintptr(engine),
		reader,
		receiver,
		userData,
		uintptr(topN),
		0,
		w[0], w[1], w[2], w[3])
	runtime.KeepAlive(&option)
	return int32(r)
}

func (l *Library) AnalyzeMw(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	w := structWords(unsafe.Pointer(&option), unsafe.Sizeof(option))
	r, _, _ := purego.SyscallN(l.analyzeMwAddr,
		uintptr(engine),
		reader,
		receiver,
		userData,
		uintptr(topN),
		0,
		w[0], w[1], w[2], w[3])
	runtime.KeepAlive(&option)
	return int32(r)
}

func (l *Library) SetGlobalConfig(engine EngineHandle, config GlobalConfig) {
	w := structWords(unsafe.Pointer(&config), unsafe.Sizeof(config))
	purego.SyscallN(l.setGlobalConfigAddr,
		uintptr(engine),
		0, 0, 0, 0, 0,
		w[0], w[1], w[2], w[3])
	runtime.KeepAlive(&config)
}

func (l *Library) GetGlobalConfig(engine EngineHandle) GlobalConfig {
	var out GlobalConfig
	purego.SyscallN(l.getGlobalConfigAddr,
		uintptr(unsafe.Pointer(&out)),
		uintptr(engine))
	runtime.KeepAlive(&out)
	return out
}

func (l *Library) GetMorphemeInfo(engine EngineHandle, morphID uint32) MorphemeRaw {
	var out MorphemeRaw
	purego.SyscallN(l.getMorphemeInfoAddr,
		uintptr(unsafe.Pointer(&out)),
		uintptr(engine),
		uintptr(morphID))
	runtime.KeepAlive(&out)
	return out
}
