package kiwi

import (
	"fmt"
	"math"
	"regexp"

	"github.com/steosofficial/kiwigo/native"
)

// Builder accumulates dictionary customizations and produces an analyzer
// engine. Build consumes the builder whether it succeeds or not; a consumed
// builder only returns StateError.
type Builder struct {
	lib      *native.Library
	handle   native.BuilderHandle
	cfg      BuilderConfig
	consumed bool
}

// NewBuilder opens a model directory and prepares an engine builder. An
// empty cfg.ModelPath falls back to KIWI_MODEL_PATH and then the platform
// default locations.
func (l *Library) NewBuilder(cfg BuilderConfig) (*Builder, error) {
	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = DiscoverModelPath()
	}
	if modelPath == "" {
		return nil, &native.ArgumentError{
			Reason: "no model directory found; set " + EnvModelPath + " or BuilderConfig.ModelPath",
		}
	}
	if err := ValidateModelDir(modelPath); err != nil {
		return nil, err
	}
	if err := native.CheckNoNUL("model path", modelPath); err != nil {
		return nil, err
	}

	l.lib.ClearError()
	handle := l.lib.BuilderInit(modelPath, cfg.NumThreads, cfg.BuildOptions, cfg.EnabledDialects)
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_builder_init", fmt.Sprintf("failed to open model at %q", modelPath))
	}
	l.lib.Retain()
	return &Builder{lib: l.lib, handle: handle, cfg: cfg}, nil
}

// NewBuilderFromStream prepares an engine builder that reads its model files
// through a caller-supplied stream factory instead of a directory.
// streamFactory is a C function pointer (typically a purego.NewCallback
// value) following the engine's stream-factory contract; it must stay valid
// for the duration of this call. cfg.ModelPath is ignored.
func (l *Library) NewBuilderFromStream(streamFactory uintptr, cfg BuilderConfig) (*Builder, error) {
	if err := l.lib.Require(native.CapStreamBuilder); err != nil {
		return nil, err
	}
	if streamFactory == 0 {
		return nil, &native.ArgumentError{Reason: "stream factory must not be nil"}
	}

	l.lib.ClearError()
	handle := l.lib.BuilderInitStream(streamFactory, cfg.NumThreads, cfg.BuildOptions, cfg.EnabledDialects)
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_builder_init_stream", "failed to open a model stream")
	}
	l.lib.Retain()
	return &Builder{lib: l.lib, handle: handle, cfg: cfg}, nil
}

func (b *Builder) live() error {
	if b == nil || b.consumed || b.handle == 0 {
		return &native.StateError{Handle: "builder"}
	}
	return nil
}

// AddWord registers a user word with the given part-of-speech tag and score.
func (b *Builder) AddWord(word, tag string, score float32) error {
	if err := b.live(); err != nil {
		return err
	}
	if err := native.CheckNoNUL("word", word); err != nil {
		return err
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return err
	}
	b.lib.ClearError()
	if rc := b.lib.BuilderAddWord(b.handle, word, tag, score); rc < 0 {
		return b.lib.CallErr("kiwi_builder_add_word", fmt.Sprintf("failed to add word %q", word))
	}
	return nil
}

// AddUserWords registers every entry of words in order.
func (b *Builder) AddUserWords(words []UserWord) error {
	for _, word := range words {
		if err := b.AddWord(word.Word, word.Tag, word.Score); err != nil {
			return err
		}
	}
	return nil
}

// AddAliasWord registers alias as a variant form of origWord. origWord must
// already be analyzable.
func (b *Builder) AddAliasWord(alias, tag string, score float32, origWord string) error {
	if err := b.live(); err != nil {
		return err
	}
	if err := b.lib.Require(native.CapBuilderExtras); err != nil {
		return err
	}
	if err := native.CheckNoNUL("alias", alias); err != nil {
		return err
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return err
	}
	if err := native.CheckNoNUL("orig word", origWord); err != nil {
		return err
	}
	b.lib.ClearError()
	if rc := b.lib.BuilderAddAliasWord(b.handle, alias, tag, score, origWord); rc < 0 {
		return b.lib.CallErr("kiwi_builder_add_alias_word", fmt.Sprintf("failed to add alias %q for %q", alias, origWord))
	}
	return nil
}

// AddPreAnalyzedWord registers a fixed analysis for form. Tokens either all
// carry explicit spans (character offsets inside form) or none of them do;
// a token whose Begin and End are both zero counts as unspanned, so
// struct-literal tokens behave like NewPreAnalyzedToken.
func (b *Builder) AddPreAnalyzedWord(form string, tokens []PreAnalyzedToken, score float32) error {
	if err := b.live(); err != nil {
		return err
	}
	if err := b.lib.Require(native.CapBuilderExtras); err != nil {
		return err
	}
	if err := native.CheckNoNUL("form", form); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return &native.ArgumentError{Reason: "pre-analyzed word needs at least one token"}
	}
	if len(tokens) > math.MaxInt32 {
		return &native.ArgumentError{Reason: "too many pre-analyzed tokens"}
	}

	forms := make([]string, len(tokens))
	tags := make([]string, len(tokens))
	for i, token := range tokens {
		forms[i] = token.Form
		tags[i] = token.Tag
	}

	flat, err := preAnalyzedPositions(form, tokens)
	if err != nil {
		return err
	}

	formPtrs, err := native.CStrings("token form", forms)
	if err != nil {
		return err
	}
	tagPtrs, err := native.CStrings("token tag", tags)
	if err != nil {
		return err
	}

	var positions *int32
	if flat != nil {
		positions = &flat[0]
	}

	b.lib.ClearError()
	rc := b.lib.BuilderAddPreAnalyzedWord(b.handle, form, int32(len(tokens)), &formPtrs[0], &tagPtrs[0], score, positions)
	if rc < 0 {
		return b.lib.CallErr("kiwi_builder_add_pre_analyzed_word", fmt.Sprintf("failed to add pre-analyzed word %q", form))
	}
	return nil
}

// preAnalyzedPositions validates token spans and flattens them into the
// UTF-16 begin/end pairs the native side expects. Tokens built without a
// span, zero values included, count as unspanned; nil is returned when no
// token carries a span.
func preAnalyzedPositions(form string, tokens []PreAnalyzedToken) ([]int32, error) {
	spanned := 0
	for _, token := range tokens {
		if token.Begin > 0 || token.End > 0 {
			spanned++
		}
	}
	if spanned == 0 {
		return nil, nil
	}
	if spanned != len(tokens) {
		return nil, &native.ArgumentError{Reason: "pre-analyzed tokens must carry spans either all or none"}
	}

	flat := make([]int32, 0, 2*len(tokens))
	formChars := len([]rune(form))
	for _, token := range tokens {
		if token.Begin < 0 || token.End < token.Begin || token.End > formChars {
			return nil, &native.ArgumentError{
				Reason: fmt.Sprintf("token span [%d, %d) does not fit in %q", token.Begin, token.End, form),
			}
		}
		flat = append(flat,
			int32(charToUTF16Index(form, token.Begin)),
			int32(charToUTF16Index(form, token.End)))
	}
	return flat, nil
}

// LoadUserDictionary loads a user dictionary file and returns the number of
// entries added.
func (b *Builder) LoadUserDictionary(path string) (int, error) {
	if err := b.live(); err != nil {
		return 0, err
	}
	if err := b.lib.Require(native.CapBuilderExtras); err != nil {
		return 0, err
	}
	if err := native.CheckNoNUL("dictionary path", path); err != nil {
		return 0, err
	}
	b.lib.ClearError()
	rc := b.lib.BuilderLoadDict(b.handle, path)
	if rc < 0 {
		return 0, b.lib.CallErr("kiwi_builder_load_dict", fmt.Sprintf("failed to load dictionary %q", path))
	}
	return int(rc), nil
}

// AddRule derives new word forms for the given tag by applying replace to
// every known form and returns the number of forms added. The replacement
// keeps the original form's score shifted by score.
func (b *Builder) AddRule(tag string, replace func(string) string, score float32) (int, error) {
	if err := b.live(); err != nil {
		return 0, err
	}
	if err := b.lib.Require(native.CapBuilderExtras); err != nil {
		return 0, err
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return 0, err
	}
	if replace == nil {
		return 0, &native.ArgumentError{Reason: "AddRule needs a replacement function"}
	}

	token := registerCallbackState(&replacerState{replace: replace})
	defer releaseCallbackState(token)

	b.lib.ClearError()
	rc := b.lib.BuilderAddRule(b.handle, tag, ruleReplacerCallback, token, score)
	if rc < 0 {
		return 0, b.lib.CallErr("kiwi_builder_add_rule", "failed to apply a replacement rule")
	}
	return int(rc), nil
}

// AddRegexRule is AddRule with a regular-expression pattern and replacement
// template (regexp.Regexp.ReplaceAllString syntax).
func (b *Builder) AddRegexRule(tag, pattern, replacement string, score float32) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, &native.ArgumentError{Reason: fmt.Sprintf("invalid rule pattern: %v", err)}
	}
	return b.AddRule(tag, func(form string) string {
		return re.ReplaceAllString(form, replacement)
	}, score)
}

// ExtractWords mines unknown-word candidates from the given corpus lines
// without registering them.
func (b *Builder) ExtractWords(lines []string, minCount, maxWordLen int, minScore, posThreshold float32) ([]ExtractedWord, error) {
	return b.extractWords(lines, minCount, maxWordLen, minScore, posThreshold, false)
}

// ExtractAddWords mines unknown-word candidates and registers them into the
// builder's dictionary in one pass.
func (b *Builder) ExtractAddWords(lines []string, minCount, maxWordLen int, minScore, posThreshold float32) ([]ExtractedWord, error) {
	return b.extractWords(lines, minCount, maxWordLen, minScore, posThreshold, true)
}

func (b *Builder) extractWords(lines []string, minCount, maxWordLen int, minScore, posThreshold float32, add bool) ([]ExtractedWord, error) {
	if err := b.live(); err != nil {
		return nil, err
	}
	if err := b.lib.Require(native.CapWordExtraction); err != nil {
		return nil, err
	}
	if minCount < 1 {
		return nil, &native.ArgumentError{Reason: "minCount must be >= 1"}
	}
	if maxWordLen < 1 {
		return nil, &native.ArgumentError{Reason: "maxWordLen must be >= 1"}
	}

	wide := b.lib.Capabilities().Has(native.CapUTF16)
	feed := &lineFeed{}
	if wide {
		feed.linesW = make([][]uint16, len(lines))
		for i, line := range lines {
			units, err := native.UTF16z(line)
			if err != nil {
				return nil, err
			}
			feed.linesW[i] = units[:len(units)-1]
		}
	} else {
		feed.lines = make([][]byte, len(lines))
		for i, line := range lines {
			if err := native.CheckNoNUL("corpus line", line); err != nil {
				return nil, err
			}
			feed.lines[i] = []byte(line)
		}
	}

	token := registerCallbackState(feed)
	defer releaseCallbackState(token)

	extract := b.lib.BuilderExtractWords
	reader := lineReaderCallback
	op := "kiwi_builder_extract_words"
	switch {
	case add && wide:
		extract, reader, op = b.lib.BuilderExtractAddWordsW, lineReaderWCallback, "kiwi_builder_extract_add_words_w"
	case add:
		extract, op = b.lib.BuilderExtractAddWords, "kiwi_builder_extract_add_words"
	case wide:
		extract, reader, op = b.lib.BuilderExtractWordsW, lineReaderWCallback, "kiwi_builder_extract_words_w"
	}

	b.lib.ClearError()
	words := extract(b.handle, reader, token, int32(minCount), int32(maxWordLen), minScore, posThreshold)
	if words == 0 {
		return nil, b.lib.CallErr(op, "word extraction failed")
	}
	defer b.lib.WsClose(words)

	return b.decodeWordSet(words, wide)
}

func (b *Builder) decodeWordSet(words native.WordSetHandle, wide bool) ([]ExtractedWord, error) {
	count := b.lib.WsSize(words)
	if count < 0 {
		return nil, b.lib.CallErr("kiwi_ws_size", "failed to read the extracted word count")
	}
	out := make([]ExtractedWord, 0, count)
	for i := int32(0); i < count; i++ {
		var form string
		if wide {
			p := b.lib.WsFormW(words, i)
			if p == nil {
				return nil, b.lib.CallErr("kiwi_ws_form_w", "failed to read an extracted form")
			}
			form = native.GoUTF16String(p)
		} else {
			p := b.lib.WsForm(words, i)
			if p == nil {
				return nil, b.lib.CallErr("kiwi_ws_form", "failed to read an extracted form")
			}
			form = native.GoString(p)
		}
		out = append(out, ExtractedWord{
			Form:      form,
			Score:     b.lib.WsScore(words, i),
			Frequency: int(b.lib.WsFreq(words, i)),
			PosScore:  b.lib.WsPosScore(words, i),
		})
	}
	return out, nil
}

// Build turns the builder into an analyzer engine, consuming the builder
// whether the build succeeds or fails. typo may be nil; a non-nil typo must
// come from the same library and stays usable afterwards.
func (b *Builder) Build(typo *TypoTransformer) (*Kiwi, error) {
	if err := b.live(); err != nil {
		return nil, err
	}

	var typoHandle native.TypoHandle
	if typo != nil {
		if err := typo.live(); err != nil {
			return nil, err
		}
		if typo.lib != b.lib {
			return nil, &native.ArgumentError{Reason: "typo transformer belongs to a different library"}
		}
		typoHandle = typo.handle
	}

	b.consumed = true
	defer b.lib.Release()
	b.lib.ClearError()
	engine := b.lib.BuilderBuild(b.handle, typoHandle, b.cfg.TypoCostThreshold)
	closeErr := b.lib.BuilderClose(b.handle)
	b.handle = 0
	if engine == 0 {
		return nil, b.lib.CallErr("kiwi_builder_build", "failed to build the engine")
	}
	if closeErr < 0 {
		b.lib.Close(engine)
		return nil, b.lib.CallErr("kiwi_builder_close", "failed to release the builder")
	}
	return newKiwi(b.lib, engine), nil
}

// Close releases an unconsumed builder. Closing after Build is a no-op.
func (b *Builder) Close() error {
	if b == nil || b.consumed || b.handle == 0 {
		return nil
	}
	b.consumed = true
	handle := b.handle
	b.handle = 0
	b.lib.ClearError()
	var err error
	if rc := b.lib.BuilderClose(handle); rc < 0 {
		err = b.lib.CallErr("kiwi_builder_close", "failed to close the builder")
	}
	if releaseErr := b.lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
