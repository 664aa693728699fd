package native

// Build flags for kiwi_builder_init.
const (
	BuildIntegrateAllomorph = 1
	BuildLoadDefaultDict    = 2
	BuildLoadTypoDict       = 4
	BuildLoadMultiDict      = 8
	BuildDefault            = BuildIntegrateAllomorph | BuildLoadDefaultDict | BuildLoadTypoDict | BuildLoadMultiDict

	BuildModelTypeDefault    = 0x0000
	BuildModelTypeLargest    = 0x0100
	BuildModelTypeKNLM       = 0x0200
	BuildModelTypeSBG        = 0x0300
	BuildModelTypeCoNg       = 0x0400
	BuildModelTypeCoNgGlobal = 0x0500

	BuildDefaultWithCoNg = BuildDefault | BuildModelTypeCoNg
)

// Option key for kiwi_get_option / kiwi_set_option.
const OptionNumThreads = 0x8001

// Preset selectors for kiwi_typo_get_default.
const (
	TypoWithoutTypo                          = 0
	TypoBasicTypoSet                         = 1
	TypoContinualTypoSet                     = 2
	TypoBasicTypoSetWithContinual            = 3
	TypoLengtheningTypoSet                   = 4
	TypoBasicTypoSetWithContinualLengthening = 5
)

// Match flags controlling which surface patterns the analyzer recognizes
// and how morphemes are merged or split.
const (
	MatchURL     = 1
	MatchEmail   = 2
	MatchHashtag = 4
	MatchMention = 8
	MatchSerial  = 16

	MatchNormalizeCoda  = 1 << 16
	MatchJoinNounPrefix = 1 << 17
	MatchJoinNounSuffix = 1 << 18
	MatchJoinVerbSuffix = 1 << 19
	MatchJoinAdjSuffix  = 1 << 20
	MatchJoinAdvSuffix  = 1 << 21
	MatchJoinVSuffix    = MatchJoinVerbSuffix | MatchJoinAdjSuffix
	MatchJoinAffix      = MatchJoinNounPrefix | MatchJoinNounSuffix | MatchJoinVSuffix | MatchJoinAdvSuffix
	MatchSplitComplex   = 1 << 22
	MatchZCoda          = 1 << 23
	MatchCompatibleJamo = 1 << 24
	MatchSplitSaisiot   = 1 << 25
	MatchMergeSaisiot   = 1 << 26

	MatchAll                = MatchURL | MatchEmail | MatchHashtag | MatchMention | MatchSerial | MatchZCoda
	MatchAllWithNormalizing = MatchAll | MatchNormalizeCoda
)

// Dialect bits for analyze options.
const (
	DialectStandard    = 0
	DialectGyeonggi    = 1 << 0
	DialectChungcheong = 1 << 1
	DialectGangwon     = 1 << 2
	DialectGyeongsang  = 1 << 3
	DialectJeolla      = 1 << 4
	DialectJeju        = 1 << 5
	DialectHwanghae    = 1 << 6
	DialectHamgyeong   = 1 << 7
	DialectPyeongan    = 1 << 8
	DialectArchaic     = 1 << 9
	DialectAll         = (1 << 10) - 1
)
