package kiwi

import (
	"runtime"
	"sync"

	"github.com/steosofficial/kiwigo/native"
)

// AnalyzeMany analyzes texts with the default options. Results come back in
// input order, one candidate list per text.
func (k *Kiwi) AnalyzeMany(texts []string) ([][]Candidate, error) {
	return k.AnalyzeManyWith(texts, k.DefaultOptions())
}

// AnalyzeManyWith analyzes texts with explicit options. When the library
// exposes the streaming batch entry point the engine's own worker threads
// do the work; otherwise a Go worker pool drives the single-text path.
// Word rules force the pool path, which applies them per text.
func (k *Kiwi) AnalyzeManyWith(texts []string, opts AnalyzeOptions) ([][]Candidate, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	topN, err := opts.validatedTopN()
	if err != nil {
		return nil, err
	}

	caps := k.lib.Capabilities()
	wide := k.wide && caps.Has(native.CapBatchWide)
	if !wide && !caps.Has(native.CapBatch) {
		return k.analyzeManyPooled(texts, opts)
	}
	k.mu.RLock()
	hasRules := len(k.rules) > 0
	k.mu.RUnlock()
	if hasRules {
		return k.analyzeManyPooled(texts, opts)
	}

	sink := &batchSink{texts: texts, eng: k}
	reader := lineReaderCallback
	if wide {
		sink.feed.linesW = make([][]uint16, len(texts))
		for i, text := range texts {
			units, err := native.UTF16z(text)
			if err != nil {
				return nil, err
			}
			sink.feed.linesW[i] = units[:len(units)-1]
		}
		reader = lineReaderWCallback
	} else {
		sink.feed.lines = make([][]byte, len(texts))
		for i, text := range texts {
			if err := native.CheckNoNUL("text", text); err != nil {
				return nil, err
			}
			sink.feed.lines[i] = []byte(text)
		}
	}

	token := registerCallbackState(sink)
	defer releaseCallbackState(token)

	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	raw := opts.raw(0)
	k.lib.ClearError()
	var rc int32
	if wide {
		rc = k.lib.AnalyzeMw(k.handle, reader, batchReceiverCallback, token, topN, raw)
	} else {
		rc = k.lib.AnalyzeM(k.handle, reader, batchReceiverCallback, token, topN, raw)
	}
	if rc < 0 {
		if sink.err != nil {
			return nil, sink.err
		}
		return nil, k.lib.CallErr("kiwi_analyze_m", "batch analysis failed")
	}
	if sink.err != nil {
		return nil, sink.err
	}

	for len(sink.results) < len(texts) {
		sink.results = append(sink.results, nil)
	}
	return sink.results, nil
}

// analyzeManyPooled fans texts out over a worker pool of single-text
// analyses, preserving input order in the result slice.
func (k *Kiwi) analyzeManyPooled(texts []string, opts AnalyzeOptions) ([][]Candidate, error) {
	results := make([][]Candidate, len(texts))
	workers := runtime.NumCPU()
	if workers > len(texts) {
		workers = len(texts)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				candidates, err := k.AnalyzeWith(texts[index], opts)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					continue
				}
				results[index] = candidates
			}
		}()
	}
	for index := range texts {
		jobs <- index
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
