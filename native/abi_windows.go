//go:build windows

package native

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Win64 passes aggregates wider than eight bytes through a pointer to a
// caller-owned copy and returns them through a hidden pointer prepended to
// the argument list.

type structABI struct{}

func structABIVeto() []string { return nil }

func (l *Library) initStructABI() {}

func (l *Library) Analyze(engine EngineHandle, text string, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	buf := cstr(text)
	r, _, _ := purego.SyscallN(l.analyzeAddr,
		uintptr(engine),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(topN),
		uintptr(unsafe.Pointer(&option)),
		uintptr(pretokenized))
	runtime.KeepAlive(buf)
	runtime.KeepAlive(&option)
	return ResultHandle(r)
}

func (l *Library) AnalyzeW(engine EngineHandle, text *uint16, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	r, _, _ := purego.SyscallN(l.analyzeWAddr,
		uintptr(engine),
		uintptr(unsafe.Pointer(text)),
		uintptr(topN),
		uintptr(unsafe.Pointer(&option)),
		uintptr(pretokenized))
	runtime.KeepAlive(text)
	runtime.KeepAlive(&option)
	return ResultHandle(r)
}

func (l *Library) AnalyzeM(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	r, _, _ := purego.SyscallN(l.analyzeMAddr,
		uintptr(engine),
		reader,
		receiver,
		userData,
		uintptr(topN),
		uintptr(unsafe.Pointer(&option)))
	runtime.KeepAlive(&option)
	return int32(r)
}

func (l *Library) AnalyzeMw(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	r, _, _ := purego.SyscallN(l.analyzeMwAddr,
		uintptr(engine),
		reader,
		receiver,
		userData,
		uintptr(topN),
		uintptr(unsafe.Pointer(&option)))
	runtime.KeepAlive(&option)
	return int32(r)
}

func (l *Library) SetGlobalConfig(engine EngineHandle, config GlobalConfig) {
	purego.SyscallN(l.setGlobalConfigAddr,
		uintptr(engine),
		uintptr(unsafe.Pointer(&config)))
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
