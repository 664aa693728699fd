package native

// Opaque native handles. All of them are raw pointers on the C side; the
// distinct Go types keep a builder handle from being passed where an engine
// handle is expected.
type (
	EngineHandle       uintptr
	BuilderHandle      uintptr
	ResultHandle       uintptr
	WordSetHandle      uintptr
	SentSplitHandle    uintptr
	JoinerHandle       uintptr
	MorphsetHandle     uintptr
	PretokenizedHandle uintptr
	TypoHandle         uintptr
	SwTokenizerHandle  uintptr
)

// AnalyzeOption mirrors the C analyze-option struct passed by value to
// kiwi_analyze and friends. Field order and widths must match the ABI.
type AnalyzeOption struct {
	MatchOptions    int32
	Blocklist       MorphsetHandle
	OpenEnding      int32
	AllowedDialects int32
	DialectCost     float32
}

// TokenInfo mirrors the C per-token record returned by kiwi_res_token_info.
// ChrPosition and Length are in native text units (UTF-16 code units);
// PairedToken is ^uint32(0) when the token has no pair.
type TokenInfo struct {
	ChrPosition     uint32
	WordPosition    uint32
	SentPosition    uint32
	LineNumber      uint32
	Length          uint16
	Tag             uint8
	SenseOrScript   uint8
	Score           float32
	TypoCost        float32
	TypoFormID      uint32
	PairedToken     uint32
	SubSentPosition uint32
	Dialect         uint16
}

// NoPairedToken marks the absence of a paired token in TokenInfo.
const NoPairedToken = ^uint32(0)

// GlobalConfig mirrors the C global-config struct passed and returned by
// value through kiwi_set_global_config / kiwi_get_global_config.
type GlobalConfig struct {
	IntegrateAllomorph uint8
	CutOffThreshold    float32
	UnkFormScoreScale  float32
	UnkFormScoreBias   float32
	SpacePenalty       float32
	TypoCostWeight     float32
	MaxUnkFormSize     uint32
	SpaceTolerance     uint32
}

// DefaultGlobalConfig returns the engine's documented defaults.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		IntegrateAllomorph: 1,
		CutOffThreshold:    8.0,
		UnkFormScoreScale:  5.0,
		UnkFormScoreBias:   5.0,
		SpacePenalty:       7.0,
		TypoCostWeight:     6.0,
		MaxUnkFormSize:     6,
		SpaceTolerance:     0,
	}
}

// MorphemeRaw mirrors the C record returned by value from
// kiwi_get_morpheme_info.
type MorphemeRaw struct {
	Tag            uint8
	SenseID        uint8
	UserScore      float32
	LmMorphemeID   uint32
	OrigMorphemeID uint32
	Dialect        uint16
}

// SimilarityPair mirrors the C (id, score) record filled by the CoNg
// similarity calls.
type SimilarityPair struct {
	ID    uint32
	Score float32
}
