//go:build darwin

package native

import "github.com/ebitengine/purego"

// purego marshals struct arguments and returns natively on darwin, so the
// struct-ABI entry points register as ordinary typed functions.

type structABI struct {
	analyze         func(engine EngineHandle, text string, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle
	analyzeW        func(engine EngineHandle, text *uint16, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle
	analyzeM        func(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32
	analyzeMw       func(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32
	setGlobalConfig func(engine EngineHandle, config GlobalConfig)
	getGlobalConfig func(engine EngineHandle) GlobalConfig
	getMorphemeInfo func(engine EngineHandle, morphID uint32) MorphemeRaw
}

func structABIVeto() []string { return nil }

func (l *Library) initStructABI() {
	register := func(fptr any, addr uintptr) {
		if addr != 0 {
			purego.RegisterFunc(fptr, addr)
		}
	}
	register(&l.abi.analyze, l.analyzeAddr)
	register(&l.abi.analyzeW, l.analyzeWAddr)
	register(&l.abi.analyzeM, l.analyzeMAddr)
	register(&l.abi.analyzeMw, l.analyzeMwAddr)
	register(&l.abi.setGlobalConfig, l.setGlobalConfigAddr)
	register(&l.abi.getGlobalConfig, l.getGlobalConfigAddr)
	register(&l.abi.getMorphemeInfo, l.getMorphemeInfoAddr)
}

func (l *Library) Analyze(engine EngineHandle, text string, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	return l.abi.analyze(engine, text, topN, option, pretokenized)
}

func (l *Library) AnalyzeW(engine EngineHandle, text *uint16, topN int32, option AnalyzeOption, pretokenized PretokenizedHandle) ResultHandle {
	return l.abi.analyzeW(engine, text, topN, option, pretokenized)
}

func (l *Library) AnalyzeM(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	return l.abi.analyzeM(engine, reader, receiver, userData, topN, option)
}

func (l *Library) AnalyzeMw(engine EngineHandle, reader, receiver, userData uintptr, topN int32, option AnalyzeOption) int32 {
	return l.abi.analyzeMw(engine, reader, receiver, userData, topN, option)
}

func (l *Library) SetGlobalConfig(engine EngineHandle, config GlobalConfig) {
	l.abi.setGlobalConfig(engine, config)
}

func (l *Library) GetGlobalConfig(engine EngineHandle) GlobalConfig {
	return l.abi.getGlobalConfig(engine)
}

func (l *Library) GetMorphemeInfo(engine EngineHandle, morphID uint32) MorphemeRaw {
	return l.abi.getMorphemeInfo(engine, morphID)
}
