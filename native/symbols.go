// Package native loads the Kiwi shared library at runtime and exposes its
// entry points as typed Go functions. Required symbols must resolve or the
// load fails; optional symbols that probe absent leave their slot nil and
// turn the matching capability off, so higher layers gate on capabilities
// instead of checking pointers.
package native

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ebitengine/purego"
)

// Library is the typed symbol table of one loaded Kiwi shared library.
// A nil function field means the optional symbol was absent; required
// symbols are always non-nil after a successful Load.
type Library struct {
	handle uintptr
	path   string
	caps   CapabilitySet
	refs   atomic.Int64

	// Entry points whose C signatures carry structs by value resolve to raw
	// addresses and are called through the per-platform shims in abi_*.go;
	// purego only marshals struct signatures on darwin.
	abi                 structABI
	analyzeAddr         uintptr
	analyzeWAddr        uintptr
	analyzeMAddr        uintptr
	analyzeMwAddr       uintptr
	setGlobalConfigAddr uintptr
	getGlobalConfigAddr uintptr
	getMorphemeInfoAddr uintptr

	Version    func() *byte
	LastError  func() *byte
	ClearError func()

	BuilderInit               func(modelPath string, numThreads, buildOptions, enabledDialects int32) BuilderHandle
	BuilderInitStream         func(streamFactory uintptr, numThreads, buildOptions, enabledDialects int32) BuilderHandle
	BuilderClose              func(builder BuilderHandle) int32
	BuilderAddWord            func(builder BuilderHandle, word, tag string, score float32) int32
	BuilderAddAliasWord       func(builder BuilderHandle, alias, tag string, score float32, origWord string) int32
	BuilderAddPreAnalyzedWord func(builder BuilderHandle, form string, size int32, forms, tags **byte, score float32, positions *int32) int32
	BuilderLoadDict           func(builder BuilderHandle, dictPath string) int32
	BuilderAddRule            func(builder BuilderHandle, tag string, replacer uintptr, userData uintptr, score float32) int32
	BuilderExtractWords       func(builder BuilderHandle, reader uintptr, userData uintptr, minCnt, maxWordLen int32, minScore, posThreshold float32) WordSetHandle
	BuilderExtractWordsW      func(builder BuilderHandle, reader uintptr, userData uintptr, minCnt, maxWordLen int32, minScore, posThreshold float32) WordSetHandle
	BuilderExtractAddWords    func(builder BuilderHandle, reader uintptr, userData uintptr, minCnt, maxWordLen int32, minScore, posThreshold float32) WordSetHandle
	BuilderExtractAddWordsW   func(builder BuilderHandle, reader uintptr, userData uintptr, minCnt, maxWordLen int32, minScore, posThreshold float32) WordSetHandle
	BuilderBuild              func(builder BuilderHandle, typos TypoHandle, typoCostThreshold float32) EngineHandle

	Init       func(modelPath string, numThreads, buildOptions int32) EngineHandle
	Close      func(engine EngineHandle) int32
	SetOption  func(engine EngineHandle, option, value int32)
	GetOption  func(engine EngineHandle, option int32) int32
	SetOptionF func(engine EngineHandle, option int32, value float32)
	GetOptionF func(engine EngineHandle, option int32) float32

	SplitIntoSents  func(engine EngineHandle, text string, matchOptions int32, tokenizedRes *ResultHandle) SentSplitHandle
	SplitIntoSentsW func(engine EngineHandle, text *uint16, matchOptions int32, tokenizedRes *ResultHandle) SentSplitHandle
	SsSize          func(split SentSplitHandle) int32
	SsBeginPosition func(split SentSplitHandle, index int32) int32
	SsEndPosition   func(split SentSplitHandle, index int32) int32
	SsClose         func(split SentSplitHandle) int32

	NewJoiner   func(engine EngineHandle, lmSearch int32) JoinerHandle
	JoinerAdd   func(joiner JoinerHandle, form, tag string, autoOption int32) int32
	JoinerGet   func(joiner JoinerHandle) *byte
	JoinerGetW  func(joiner JoinerHandle) *uint16
	JoinerClose func(joiner JoinerHandle) int32

	NewMorphset   func(engine EngineHandle) MorphsetHandle
	MorphsetAdd   func(morphset MorphsetHandle, form, tag string) int32
	MorphsetAddW  func(morphset MorphsetHandle, form *uint16, tag string) int32
	MorphsetClose func(morphset MorphsetHandle) int32

	TagToString func(engine EngineHandle, tag uint8) *byte

	ResSize         func(result ResultHandle) int32
	ResProb         func(result ResultHandle, index int32) float32
	ResWordNum      func(result ResultHandle, index int32) int32
	ResTokenInfo    func(result ResultHandle, index, num int32) *TokenInfo
	ResMorphemeID   func(result ResultHandle, index, num int32, engine EngineHandle) int32
	ResFormW        func(result ResultHandle, index, num int32) *uint16
	ResTagW         func(result ResultHandle, index, num int32) *uint16
	ResForm         func(result ResultHandle, index, num int32) *byte
	ResTag          func(result ResultHandle, index, num int32) *byte
	ResPosition     func(result ResultHandle, index, num int32) int32
	ResLength       func(result ResultHandle, index, num int32) int32
	ResWordPosition func(result ResultHandle, index, num int32) int32
	ResSentPosition func(result ResultHandle, index, num int32) int32
	ResScore        func(result ResultHandle, index, num int32) float32
	ResTypoCost     func(result ResultHandle, index, num int32) float32
	ResClose        func(result ResultHandle) int32

	WsSize     func(words WordSetHandle) int32
	WsFormW    func(words WordSetHandle, index int32) *uint16
	WsForm     func(words WordSetHandle, index int32) *byte
	WsScore    func(words WordSetHandle, index int32) float32
	WsFreq     func(words WordSetHandle, index int32) int32
	WsPosScore func(words WordSetHandle, index int32) float32
	WsClose    func(words WordSetHandle) int32

	PtInit            func() PretokenizedHandle
	PtAddSpan         func(pt PretokenizedHandle, begin, end int32) int32
	PtAddTokenToSpan  func(pt PretokenizedHandle, spanID int32, form, tag string, begin, end int32) int32
	PtAddTokenToSpanW func(pt PretokenizedHandle, spanID int32, form *uint16, tag string, begin, end int32) int32
	PtClose           func(pt PretokenizedHandle) int32

	TypoInit                   func() TypoHandle
	TypoGetBasic               func() TypoHandle
	TypoGetDefault             func(preset int32) TypoHandle
	TypoAdd                    func(typos TypoHandle, orig **byte, origSize int32, errored **byte, erroredSize int32, cost float32, condition int32) int32
	TypoCopy                   func(typos TypoHandle) TypoHandle
	TypoUpdate                 func(typos, src TypoHandle) int32
	TypoScaleCost              func(typos TypoHandle, scale float32) int32
	TypoSetContinualTypoCost   func(typos TypoHandle, cost float32) int32
	TypoSetLengtheningTypoCost func(typos TypoHandle, cost float32) int32
	TypoClose                  func(typos TypoHandle) int32

	SwtInit   func(path string, engine EngineHandle) SwTokenizerHandle
	SwtEncode func(swt SwTokenizerHandle, text string, textSize int32, tokenIDs *int32, tokenCapacity int32, offsets *int32, offsetCapacity int32) int32
	SwtDecode func(swt SwTokenizerHandle, tokenIDs *int32, tokenSize int32, out *byte, outCapacity int32) int32
	SwtClose  func(swt SwTokenizerHandle) int32

	FindMorphemes           func(engine EngineHandle, form string, tag *byte, senseID int32, out *uint32, capacity int32) int32
	FindMorphemesWithPrefix func(engine EngineHandle, formPrefix string, tag *byte, senseID int32, out *uint32, capacity int32) int32
	GetMorphemeFormW        func(engine EngineHandle, morphID uint32) *uint16
	GetMorphemeForm         func(engine EngineHandle, morphID uint32) *byte
	FreeMorphemeForm        func(form *byte) int32

	CongMostSimilarWords            func(engine EngineHandle, morphID uint32, out *SimilarityPair, topN int32) int32
	CongSimilarity                  func(engine EngineHandle, morphID1, morphID2 uint32) float32
	CongMostSimilarContexts         func(engine EngineHandle, contextID uint32, out *SimilarityPair, topN int32) int32
	CongContextSimilarity           func(engine EngineHandle, contextID1, contextID2 uint32) float32
	CongPredictWordsFromContext     func(engine EngineHandle, contextID uint32, out *SimilarityPair, topN int32) int32
	CongPredictWordsFromContextDiff func(engine EngineHandle, contextID, bgContextID uint32, weight float32, out *SimilarityPair, topN int32) int32
	CongToContextID                 func(engine EngineHandle, morphIDs *uint32, size int32) uint32
	CongFromContextID               func(engine EngineHandle, contextID uint32, out *uint32, capacity int32) int32

	GetScriptName func(script uint8) *byte
}

// Load opens the shared library at path and resolves the full symbol table.
// A missing required symbol aborts with MissingSymbolError; missing optional
// symbols only narrow the capability set.
func Load(path string) (*Library, error) {
	handle, err := dlOpen(path)
	if err != nil {
		return nil, err
	}

	lib := &Library{handle: handle, path: path}
	if err := lib.resolve(); err != nil {
		_ = dlClose(handle)
		return nil, err
	}
	lib.refs.Store(1)
	return lib, nil
}

// Path returns the filesystem path the library was loaded from.
func (l *Library) Path() string { return l.path }

// Capabilities returns the feature groups the loaded library provides.
func (l *Library) Capabilities() CapabilitySet { return l.caps }

// Require returns a CapabilityError when the capability is blocked.
func (l *Library) Require(capability Capability) error {
	return l.caps.Err(capability)
}

// Retain takes one more reference on the loaded image. Handles derived from
// the library retain it, so the image stays loaded until the last of them
// releases.
func (l *Library) Retain() {
	l.refs.Add(1)
}

// Release drops one reference and closes the OS library handle when the
// last one goes.
func (l *Library) Release() error {
	if l.refs.Add(-1) > 0 {
		return nil
	}
	if l.handle == 0 {
		return nil
	}
	err := dlClose(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("unloading %s: %w", l.path, err)
	}
	return nil
}

type symbolSlot struct {
	name     string
	fptr     any
	optional bool
}

func (l *Library) resolve() error {
	slots := []symbolSlot{
		{"kiwi_version", &l.Version, false},
		{"kiwi_error", &l.LastError, false},
		{"kiwi_clear_error", &l.ClearError, false},

		{"kiwi_builder_init", &l.BuilderInit, false},
		{"kiwi_builder_init_stream", &l.BuilderInitStream, true},
		{"kiwi_builder_close", &l.BuilderClose, false},
		{"kiwi_builder_add_word", &l.BuilderAddWord, false},
		{"kiwi_builder_add_alias_word", &l.BuilderAddAliasWord, true},
		{"kiwi_builder_add_pre_analyzed_word", &l.BuilderAddPreAnalyzedWord, true},
		{"kiwi_builder_load_dict", &l.BuilderLoadDict, true},
		{"kiwi_builder_add_rule", &l.BuilderAddRule, true},
		{"kiwi_builder_extract_words", &l.BuilderExtractWords, true},
		{"kiwi_builder_extract_words_w", &l.BuilderExtractWordsW, true},
		{"kiwi_builder_extract_add_words", &l.BuilderExtractAddWords, true},
		{"kiwi_builder_extract_add_words_w", &l.BuilderExtractAddWordsW, true},
		{"kiwi_builder_build", &l.BuilderBuild, false},

		{"kiwi_init", &l.Init, true},
		{"kiwi_close", &l.Close, false},
		{"kiwi_set_option", &l.SetOption, true},
		{"kiwi_get_option", &l.GetOption, true},
		{"kiwi_set_option_f", &l.SetOptionF, true},
		{"kiwi_get_option_f", &l.GetOptionF, true},

		{"kiwi_split_into_sents", &l.SplitIntoSents, true},
		{"kiwi_split_into_sents_w", &l.SplitIntoSentsW, true},
		{"kiwi_ss_size", &l.SsSize, true},
		{"kiwi_ss_begin_position", &l.SsBeginPosition, true},
		{"kiwi_ss_end_position", &l.SsEndPosition, true},
		{"kiwi_ss_close", &l.SsClose, true},

		{"kiwi_new_joiner", &l.NewJoiner, true},
		{"kiwi_joiner_add", &l.JoinerAdd, true},
		{"kiwi_joiner_get", &l.JoinerGet, true},
		{"kiwi_joiner_get_w", &l.JoinerGetW, true},
		{"kiwi_joiner_close", &l.JoinerClose, true},

		{"kiwi_new_morphset", &l.NewMorphset, true},
		{"kiwi_morphset_add", &l.MorphsetAdd, true},
		{"kiwi_morphset_add_w", &l.MorphsetAddW, true},
		{"kiwi_morphset_close", &l.MorphsetClose, true},

		{"kiwi_tag_to_string", &l.TagToString, true},

		{"kiwi_res_size", &l.ResSize, false},
		{"kiwi_res_prob", &l.ResProb, false},
		{"kiwi_res_word_num", &l.ResWordNum, false},
		{"kiwi_res_token_info", &l.ResTokenInfo, true},
		{"kiwi_res_morpheme_id", &l.ResMorphemeID, true},
		{"kiwi_res_form_w", &l.ResFormW, true},
		{"kiwi_res_tag_w", &l.ResTagW, true},
		{"kiwi_res_form", &l.ResForm, false},
		{"kiwi_res_tag", &l.ResTag, false},
		{"kiwi_res_position", &l.ResPosition, false},
		{"kiwi_res_length", &l.ResLength, false},
		{"kiwi_res_word_position", &l.ResWordPosition, false},
		{"kiwi_res_sent_position", &l.ResSentPosition, false},
		{"kiwi_res_score", &l.ResScore, false},
		{"kiwi_res_typo_cost", &l.ResTypoCost, false},
		{"kiwi_res_close", &l.ResClose, false},

		{"kiwi_ws_size", &l.WsSize, true},
		{"kiwi_ws_form_w", &l.WsFormW, true},
		{"kiwi_ws_form", &l.WsForm, true},
		{"kiwi_ws_score", &l.WsScore, true},
		{"kiwi_ws_freq", &l.WsFreq, true},
		{"kiwi_ws_pos_score", &l.WsPosScore, true},
		{"kiwi_ws_close", &l.WsClose, true},

		{"kiwi_pt_init", &l.PtInit, true},
		{"kiwi_pt_add_span", &l.PtAddSpan, true},
		{"kiwi_pt_add_token_to_span", &l.PtAddTokenToSpan, true},
		{"kiwi_pt_add_token_to_span_w", &l.PtAddTokenToSpanW, true},
		{"kiwi_pt_close", &l.PtClose, true},

		{"kiwi_typo_init", &l.TypoInit, true},
		{"kiwi_typo_get_basic", &l.TypoGetBasic, true},
		{"kiwi_typo_get_default", &l.TypoGetDefault, true},
		{"kiwi_typo_add", &l.TypoAdd, true},
		{"kiwi_typo_copy", &l.TypoCopy, true},
		{"kiwi_typo_update", &l.TypoUpdate, true},
		{"kiwi_typo_scale_cost", &l.TypoScaleCost, true},
		{"kiwi_typo_set_continual_typo_cost", &l.TypoSetContinualTypoCost, true},
		{"kiwi_typo_set_lengthening_typo_cost", &l.TypoSetLengtheningTypoCost, true},
		{"kiwi_typo_close", &l.TypoClose, true},

		{"kiwi_swt_init", &l.SwtInit, true},
		{"kiwi_swt_encode", &l.SwtEncode, true},
		{"kiwi_swt_decode", &l.SwtDecode, true},
		{"kiwi_swt_close", &l.SwtClose, true},

		{"kiwi_find_morphemes", &l.FindMorphemes, true},
		{"kiwi_find_morphemes_with_prefix", &l.FindMorphemesWithPrefix, true},
		{"kiwi_get_morpheme_form_w", &l.GetMorphemeFormW, true},
		{"kiwi_get_morpheme_form", &l.GetMorphemeForm, true},
		{"kiwi_free_morpheme_form", &l.FreeMorphemeForm, true},

		{"kiwi_cong_most_similar_words", &l.CongMostSimilarWords, true},
		{"kiwi_cong_similarity", &l.CongSimilarity, true},
		{"kiwi_cong_most_similar_contexts", &l.CongMostSimilarContexts, true},
		{"kiwi_cong_context_similarity", &l.CongContextSimilarity, true},
		{"kiwi_cong_predict_words_from_context", &l.CongPredictWordsFromContext, true},
		{"kiwi_cong_predict_words_from_context_diff", &l.CongPredictWordsFromContextDiff, true},
		{"kiwi_cong_to_context_id", &l.CongToContextID, true},
		{"kiwi_cong_from_context_id", &l.CongFromContextID, true},

		{"kiwi_get_script_name", &l.GetScriptName, true},
	}

	// Struct-by-value signatures bypass RegisterLibFunc; the shims in
	// abi_*.go call them by raw address.
	structSlots := []struct {
		name     string
		addr     *uintptr
		optional bool
	}{
		{"kiwi_analyze", &l.analyzeAddr, false},
		{"kiwi_analyze_w", &l.analyzeWAddr, true},
		{"kiwi_analyze_m", &l.analyzeMAddr, true},
		{"kiwi_analyze_mw", &l.analyzeMwAddr, true},
		{"kiwi_set_global_config", &l.setGlobalConfigAddr, true},
		{"kiwi_get_global_config", &l.getGlobalConfigAddr, true},
		{"kiwi_get_morpheme_info", &l.getMorphemeInfoAddr, true},
	}

	absent := make(map[string]bool)
	for _, slot := range slots {
		if dlSym(l.handle, slot.name) == 0 {
			if !slot.optional {
				return &MissingSymbolError{Symbol: slot.name}
			}
			absent[slot.name] = true
			continue
		}
		purego.RegisterLibFunc(slot.fptr, l.handle, slot.name)
	}

	for _, slot := range structSlots {
		addr := dlSym(l.handle, slot.name)
		if addr == 0 {
			if !slot.optional {
				return &MissingSymbolError{Symbol: slot.name}
			}
			absent[slot.name] = true
			continue
		}
		*slot.addr = addr
	}
	for _, name := range structABIVeto() {
		absent[name] = true
	}
	l.initStructABI()

	l.caps = newCapabilitySet(absent)
	return nil
}

// ReadError fetches and trims the engine's last error message, "" when none
// is set.
func (l *Library) ReadError() string {
	return strings.TrimSpace(GoString(l.LastError()))
}

// CallErr builds a CallError for a failed native call, preferring the
// engine's own message over the static fallback.
func (l *Library) CallErr(op, fallback string) error {
	message := l.ReadError()
	if message == "" {
		message = fallback
	}
	return &CallError{Op: op, Message: message}
}
