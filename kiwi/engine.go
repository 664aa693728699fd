package kiwi

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/steosofficial/kiwigo/native"
)

// Kiwi is a built analyzer engine. It is safe for concurrent use: analyses
// share the engine under a read lock while configuration changes and Close
// take the write lock.
type Kiwi struct {
	lib  *native.Library
	wide bool

	mu     sync.RWMutex
	handle native.EngineHandle
	closed bool

	defaults AnalyzeOptions
	cache    *resultCache
	rules    []wordRule

	// owner is set when the engine opened its own library via New and is
	// responsible for unloading it on Close.
	owner *Library
}

type wordRule struct {
	re  *regexp.Regexp
	tag string
}

func newKiwi(lib *native.Library, handle native.EngineHandle) *Kiwi {
	lib.Retain()
	return &Kiwi{
		lib:      lib,
		wide:     lib.Capabilities().Has(native.CapUTF16),
		handle:   handle,
		defaults: DefaultAnalyzeOptions(),
	}
}

// New loads a library, builds an engine from cfg and returns it ready for
// analysis. The engine owns the library and unloads it on Close.
func New(cfg Config) (*Kiwi, error) {
	var library *Library
	var err error
	if cfg.LibraryPath != "" {
		library, err = Open(cfg.LibraryPath)
	} else {
		library, err = OpenDefault()
	}
	if err != nil {
		return nil, err
	}

	builder, err := library.NewBuilder(cfg.Builder)
	if err != nil {
		_ = library.Close()
		return nil, err
	}
	if err := builder.AddUserWords(cfg.UserWords); err != nil {
		_ = builder.Close()
		_ = library.Close()
		return nil, err
	}

	engine, err := builder.Build(nil)
	if err != nil {
		_ = library.Close()
		return nil, err
	}
	engine.owner = library
	if cfg.DefaultAnalyzeOptions.TopN > 0 {
		engine.defaults = cfg.DefaultAnalyzeOptions
	}
	engine.cache = newResultCache(cfg.CacheSize)
	return engine, nil
}

// OpenEngine opens an engine directly from a prebuilt model directory,
// skipping the builder stage.
func (l *Library) OpenEngine(modelPath string, numThreads, buildOptions int32) (*Kiwi, error) {
	if err := l.lib.Require(native.CapDirectInit); err != nil {
		return nil, err
	}
	if err := ValidateModelDir(modelPath); err != nil {
		return nil, err
	}
	if err := native.CheckNoNUL("model path", modelPath); err != nil {
		return nil, err
	}

	l.lib.ClearError()
	handle := l.lib.Init(modelPath, numThreads, buildOptions)
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_init", fmt.Sprintf("failed to open model at %q", modelPath))
	}
	return newKiwi(l.lib, handle), nil
}

func (k *Kiwi) liveLocked() error {
	if k == nil || k.closed || k.handle == 0 {
		return &native.StateError{Handle: "engine"}
	}
	return nil
}

// Capabilities reports the feature groups of the underlying library.
func (k *Kiwi) Capabilities() native.CapabilitySet {
	return k.lib.Capabilities()
}

// DefaultOptions returns the options used by Analyze and Tokenize.
func (k *Kiwi) DefaultOptions() AnalyzeOptions {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.defaults
}

// SetDefaultOptions replaces the options used by Analyze and Tokenize.
func (k *Kiwi) SetDefaultOptions(opts AnalyzeOptions) {
	k.mu.Lock()
	k.defaults = opts
	k.mu.Unlock()
	k.cache.purge()
}

// Analyze runs the engine over text with the default options.
func (k *Kiwi) Analyze(text string) ([]Candidate, error) {
	return k.AnalyzeWith(text, k.DefaultOptions())
}

// AnalyzeWith runs the engine over text and returns up to opts.TopN
// candidate analyses, best first.
func (k *Kiwi) AnalyzeWith(text string, opts AnalyzeOptions) ([]Candidate, error) {
	return k.AnalyzeConstrained(text, opts, nil, nil)
}

// AnalyzeConstrained is AnalyzeWith under an optional morpheme blocklist
// and an optional pre-tokenization constraint. Both must come from this
// engine's library; the constraint cannot be combined with word rules.
func (k *Kiwi) AnalyzeConstrained(text string, opts AnalyzeOptions, blocklist *MorphemeSet, pretokenized *Pretokenized) ([]Candidate, error) {
	topN, err := opts.validatedTopN()
	if err != nil {
		return nil, err
	}

	var blocklistHandle native.MorphsetHandle
	if blocklist != nil {
		if err := blocklist.live(); err != nil {
			return nil, err
		}
		if blocklist.eng != k {
			return nil, &native.ArgumentError{Reason: "morpheme set belongs to a different engine"}
		}
		blocklistHandle = blocklist.handle
	}

	var ptHandle native.PretokenizedHandle
	if pretokenized != nil {
		if err := pretokenized.live(); err != nil {
			return nil, err
		}
		if pretokenized.lib != k.lib {
			return nil, &native.ArgumentError{Reason: "pre-tokenization constraint belongs to a different library"}
		}
		ptHandle = pretokenized.handle
	}

	key := newCacheKey("analyze", text, topN, opts, blocklist.key(), pretokenized.key())
	if cached, ok := k.cache.get(key); ok {
		return cached, nil
	}

	k.mu.RLock()
	candidates, err := k.analyzeLocked(text, topN, opts, blocklistHandle, ptHandle, pretokenized != nil)
	k.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	k.cache.put(key, candidates)
	return candidates, nil
}

func (k *Kiwi) analyzeLocked(text string, topN int32, opts AnalyzeOptions, blocklist native.MorphsetHandle, pt native.PretokenizedHandle, explicitPt bool) ([]Candidate, error) {
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	if len(k.rules) > 0 {
		if explicitPt {
			return nil, &native.ArgumentError{Reason: "word rules cannot be combined with an explicit pre-tokenization constraint"}
		}
		ruleHandle, err := k.rulePretokenized(text)
		if err != nil {
			return nil, err
		}
		if ruleHandle != 0 {
			defer k.lib.PtClose(ruleHandle)
			pt = ruleHandle
		}
	}

	raw := opts.raw(blocklist)
	k.lib.ClearError()
	var res native.ResultHandle
	if k.wide {
		units, err := native.UTF16z(text)
		if err != nil {
			return nil, err
		}
		res = k.lib.AnalyzeW(k.handle, &units[0], topN, raw, pt)
	} else {
		if err := native.CheckNoNUL("text", text); err != nil {
			return nil, err
		}
		res = k.lib.Analyze(k.handle, text, topN, raw, pt)
	}
	if res == 0 {
		return nil, k.lib.CallErr("kiwi_analyze", "analysis failed")
	}
	return k.decodeCandidates(res, text)
}

// rulePretokenized turns the registered word rules into a transient
// pre-tokenization constraint over text. Empty matches are dropped and a
// match overlapping an earlier one loses.
func (k *Kiwi) rulePretokenized(text string) (native.PretokenizedHandle, error) {
	if err := k.lib.Require(native.CapPretokenized); err != nil {
		return 0, err
	}

	k.lib.ClearError()
	handle := k.lib.PtInit()
	if handle == 0 {
		return 0, k.lib.CallErr("kiwi_pt_init", "failed to create the rule constraint")
	}

	var taken [][2]int
	spans := 0
	for _, rule := range k.rules {
		for _, match := range rule.re.FindAllStringIndex(text, -1) {
			if match[0] == match[1] {
				continue
			}
			begin := byteToCharIndex(text, match[0])
			end := byteToCharIndex(text, match[1])
			if overlapsAny(taken, begin, end) {
				continue
			}

			unitBegin := charToUTF16Index(text, begin)
			unitEnd := charToUTF16Index(text, end)
			spanID := k.lib.PtAddSpan(handle, int32(unitBegin), int32(unitEnd))
			if spanID < 0 {
				k.lib.PtClose(handle)
				return 0, k.lib.CallErr("kiwi_pt_add_span", "failed to add a rule span")
			}
			rc := k.lib.PtAddTokenToSpan(handle, spanID, text[match[0]:match[1]], rule.tag, 0, int32(unitEnd-unitBegin))
			if rc < 0 {
				k.lib.PtClose(handle)
				return 0, k.lib.CallErr("kiwi_pt_add_token_to_span", "failed to pin a rule token")
			}
			taken = append(taken, [2]int{begin, end})
			spans++
		}
	}

	if spans == 0 {
		k.lib.PtClose(handle)
		return 0, nil
	}
	return handle, nil
}

func overlapsAny(taken [][2]int, begin, end int) bool {
	for _, span := range taken {
		if begin < span[1] && span[0] < end {
			return true
		}
	}
	return false
}

// AddWordRule pins every non-empty match of pattern to a single token with
// the given tag during analysis. Rules are applied in registration order;
// overlapping matches keep the earlier rule's span.
func (k *Kiwi) AddWordRule(pattern, tag string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &native.ArgumentError{Reason: fmt.Sprintf("invalid word rule pattern: %v", err)}
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return err
	}
	if err := k.lib.Require(native.CapPretokenized); err != nil {
		return err
	}

	k.mu.Lock()
	k.rules = append(k.rules, wordRule{re: re, tag: tag})
	k.mu.Unlock()
	k.cache.purge()
	return nil
}

// ClearWordRules removes every registered word rule.
func (k *Kiwi) ClearWordRules() {
	k.mu.Lock()
	k.rules = nil
	k.mu.Unlock()
	k.cache.purge()
}

// Tokenize returns the best analysis of text as a flat token list.
func (k *Kiwi) Tokenize(text string) ([]Token, error) {
	return k.TokenizeWith(text, k.DefaultOptions())
}

// TokenizeWith is Tokenize with explicit options; opts.TopN is ignored.
func (k *Kiwi) TokenizeWith(text string, opts AnalyzeOptions) ([]Token, error) {
	opts.TopN = 1
	candidates, err := k.AnalyzeWith(text, opts)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0].Tokens, nil
}

// Close releases the engine and, when the engine was created by New, the
// library behind it. Closing twice is a no-op.
func (k *Kiwi) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed || k.handle == 0 {
		return nil
	}
	k.closed = true
	handle := k.handle
	k.handle = 0
	k.cache.purge()

	k.lib.ClearError()
	var err error
	if rc := k.lib.Close(handle); rc < 0 {
		err = k.lib.CallErr("kiwi_close", "failed to close the engine")
	}
	if k.owner != nil {
		if unloadErr := k.owner.Close(); err == nil {
			err = unloadErr
		}
		k.owner = nil
	}
	if releaseErr := k.lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
