//go:build linux && arm64

package native

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// AAPCS64 passes aggregates larger than 16 bytes through a pointer to a
// caller-owned copy, which SyscallN can express. Struct returns of that size
// come back through the indirect result register x8, which it cannot, so the
// two struct-returning symbols are vetoed here and their capabilities stay
// off.

type structABI struct{}

func structABIVeto() []string {
	return []string{"kiwi_get_global_config", "kiwi_get_morpheme_info"}
}

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

// Unreachable behind the capability gate; see structABIVeto.
func (l *Library) GetGlobalConfig(engine EngineHandle) GlobalConfig {
	return GlobalConfig{}
}

// Unreachable behind the capability gate; see structABIVeto.
func (l *Library) GetMorphemeInfo(engine EngineHandle, morphID uint32) MorphemeRaw {
	return MorphemeRaw{}
}
