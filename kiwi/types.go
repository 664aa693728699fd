// Package kiwi wraps a dynamically loaded Kiwi morphological-analysis
// library behind ownership-safe Go handles. Offsets in this package are
// character (rune) indices into the original text unless stated otherwise;
// the translation from the engine's UTF-16 code-unit positions happens
// inside the package.
package kiwi

import "github.com/steosofficial/kiwigo/native"

// Token is a single morpheme produced by analysis.
type Token struct {
	// Form is the surface form of the morpheme.
	Form string
	// Tag is the part-of-speech tag string.
	Tag string
	// Position is the character-based start offset in the input text.
	Position int
	// Length is the character count of the token in the input text.
	Length int
	// WordPosition is the word index inside the analyzed sentence.
	WordPosition int
	// SentPosition is the sentence index in multi-sentence output.
	SentPosition int
	// LineNumber is the engine's line metadata.
	LineNumber int
	// SubSentPosition is the nested-sentence index, 0 when not nested.
	SubSentPosition int
	// Score is the language-model score of the token.
	Score float32
	// TypoCost is the typo-correction cost applied to the token.
	TypoCost float32
	// TypoFormID identifies the typo form inside the engine.
	TypoFormID uint32
	// PairedToken is the index of a paired token (brackets, quotes),
	// -1 when the token has no pair.
	PairedToken int
	// MorphemeID is the engine's morpheme id, -1 when unavailable.
	MorphemeID int
	// TagID is the numeric tag id, -1 when unavailable.
	TagID int
	// SenseOrScript is the sense id or script id, -1 when unavailable.
	SenseOrScript int
	// Dialect is the dialect bit field, -1 when unavailable.
	Dialect int
}

// Candidate is one analysis candidate with its probability.
type Candidate struct {
	Probability float32
	Tokens      []Token
}

// SentenceBoundary is a half-open character range of one sentence.
type SentenceBoundary struct {
	Begin int
	End   int
}

// Sentence is a sentence-split result carrying its text slice and,
// when requested, tokens and nested sub-sentences.
type Sentence struct {
	Text   string
	Start  int
	End    int
	Tokens []Token
	Subs   []Sentence
}

// UserWord is one user dictionary entry.
type UserWord struct {
	Word  string
	Tag   string
	Score float32
}

// PreAnalyzedToken is one morpheme of a pre-analyzed word. Begin/End are
// character offsets inside the surface form; -1 leaves the span to the
// engine, and a token with both at zero is treated the same way.
type PreAnalyzedToken struct {
	Form  string
	Tag   string
	Begin int
	End   int
}

// NewPreAnalyzedToken builds a token without an explicit span.
func NewPreAnalyzedToken(form, tag string) PreAnalyzedToken {
	return PreAnalyzedToken{Form: form, Tag: tag, Begin: -1, End: -1}
}

// WithSpan pins the token to a character span inside the surface form.
func (t PreAnalyzedToken) WithSpan(begin, end int) PreAnalyzedToken {
	t.Begin = begin
	t.End = end
	return t
}

// ExtractedWord is one candidate from corpus-driven word extraction.
type ExtractedWord struct {
	Form      string
	Score     float32
	Frequency int
	PosScore  float32
}

// MorphemeInfo is the engine's metadata for one morpheme id.
type MorphemeInfo struct {
	Tag            uint8
	SenseID        uint8
	UserScore      float32
	LmMorphemeID   uint32
	OrigMorphemeID uint32
	Dialect        uint16
}

// MorphemeSense resolves a morpheme id into its form and tag.
type MorphemeSense struct {
	MorphID uint32
	Form    string
	Tag     string
	SenseID uint8
	Dialect uint16
}

// SimilarityPair is one (morpheme or context id, score) result from the
// CoNg similarity surface.
type SimilarityPair struct {
	ID    uint32
	Score float32
}

// GlobalConfig is the engine-wide scoring configuration.
type GlobalConfig struct {
	IntegrateAllomorph bool
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
	return globalConfigFromRaw(native.DefaultGlobalConfig())
}

func globalConfigFromRaw(raw native.GlobalConfig) GlobalConfig {
	return GlobalConfig{
		IntegrateAllomorph: raw.IntegrateAllomorph != 0,
		CutOffThreshold:    raw.CutOffThreshold,
		UnkFormScoreScale:  raw.UnkFormScoreScale,
		UnkFormScoreBias:   raw.UnkFormScoreBias,
		SpacePenalty:       raw.SpacePenalty,
		TypoCostWeight:     raw.TypoCostWeight,
		MaxUnkFormSize:     raw.MaxUnkFormSize,
		SpaceTolerance:     raw.SpaceTolerance,
	}
}

func (c GlobalConfig) raw() native.GlobalConfig {
	raw := native.GlobalConfig{
		CutOffThreshold:   c.CutOffThreshold,
		UnkFormScoreScale: c.UnkFormScoreScale,
		UnkFormScoreBias:  c.UnkFormScoreBias,
		SpacePenalty:      c.SpacePenalty,
		TypoCostWeight:    c.TypoCostWeight,
		MaxUnkFormSize:    c.MaxUnkFormSize,
		SpaceTolerance:    c.SpaceTolerance,
	}
	if c.IntegrateAllomorph {
		raw.IntegrateAllomorph = 1
	}
	return raw
}
