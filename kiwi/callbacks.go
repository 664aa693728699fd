package kiwi

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/steosofficial/kiwigo/native"
)

// Native callbacks are created once per process (callback slots are a
// finite purego resource) and dispatch on a context token passed through
// the user_data argument. A token is valid only for the duration of the
// native call that carries it.
var (
	callbackMu     sync.Mutex
	callbackSeq    uintptr
	callbackStates = map[uintptr]any{}
)

func registerCallbackState(state any) uintptr {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	callbackSeq++
	callbackStates[callbackSeq] = state
	return callbackSeq
}

func releaseCallbackState(token uintptr) {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	delete(callbackStates, token)
}

func callbackState(token uintptr) any {
	callbackMu.Lock()
	defer callbackMu.Unlock()
	return callbackStates[token]
}

func cret(n int32) uintptr {
	return uintptr(int(n))
}

// lineFeed serves the engine's two-phase reader protocol: the engine asks
// for line id's length with a nil buffer, then calls again with a buffer
// of that size. An id past the end returns 0, which ends the stream.
type lineFeed struct {
	lines  [][]byte
	linesW [][]uint16
}

// batchSink collects per-line analysis results delivered by the engine's
// receiver callback, keyed by line id so input order is preserved even
// when worker threads finish out of order.
type batchSink struct {
	feed    lineFeed
	texts   []string
	eng     *Kiwi
	results [][]Candidate
	err     error
}

// replacerState carries a Go replacement function across a
// kiwi_builder_add_rule call.
type replacerState struct {
	replace func(string) string
	// last holds the most recent replacement so the size query and the
	// fill call observe the same bytes even if replace is not pure.
	last      []byte
	lastInput string
	haveLast  bool
}

var lineReaderCallback = purego.NewCallback(func(id, buffer, userData uintptr) uintptr {
	feed := feedFromState(callbackState(userData))
	if feed == nil || int32(id) < 0 {
		return cret(-1)
	}
	index := int(int32(id))
	if index >= len(feed.lines) {
		return 0
	}
	line := feed.lines[index]
	if buffer == 0 {
		return cret(int32(len(line)))
	}
	if len(line) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(buffer)), len(line)), line)
	}
	return cret(int32(len(line)))
})

var lineReaderWCallback = purego.NewCallback(func(id, buffer, userData uintptr) uintptr {
	feed := feedFromState(callbackState(userData))
	if feed == nil || int32(id) < 0 {
		return cret(-1)
	}
	index := int(int32(id))
	if index >= len(feed.linesW) {
		return 0
	}
	line := feed.linesW[index]
	if buffer == 0 {
		return cret(int32(len(line)))
	}
	if len(line) > 0 {
		copy(unsafe.Slice((*uint16)(unsafe.Pointer(buffer)), len(line)), line)
	}
	return cret(int32(len(line)))
})

var batchReceiverCallback = purego.NewCallback(func(id, resHandle, userData uintptr) uintptr {
	sink, _ := callbackState(userData).(*batchSink)
	if sink == nil {
		return cret(-1)
	}
	if sink.err != nil {
		return cret(-1)
	}
	if int32(id) < 0 {
		sink.err = &native.ArgumentError{Reason: "batch receiver got a negative line id"}
		return cret(-1)
	}

	index := int(int32(id))
	var text string
	if index < len(sink.texts) {
		text = sink.texts[index]
	}
	candidates, err := sink.eng.decodeCandidates(native.ResultHandle(resHandle), text)
	if err != nil {
		sink.err = err
		return cret(-1)
	}

	for len(sink.results) <= index {
		sink.results = append(sink.results, nil)
	}
	sink.results[index] = candidates
	return 0
})

var ruleReplacerCallback = purego.NewCallback(func(input, inputLen, output, userData uintptr) uintptr {
	state, _ := callbackState(userData).(*replacerState)
	if state == nil {
		return cret(-1)
	}

	var text string
	if input != 0 && int32(inputLen) > 0 {
		text = string(unsafe.Slice((*byte)(unsafe.Pointer(input)), int(int32(inputLen))))
	}

	if !state.haveLast || state.lastInput != text {
		state.last = []byte(state.replace(text))
		state.lastInput = text
		state.haveLast = true
	}

	if output == 0 {
		return cret(int32(len(state.last)))
	}
	if len(state.last) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(output)), len(state.last)), state.last)
	}
	return cret(int32(len(state.last)))
})

func feedFromState(state any) *lineFeed {
	switch value := state.(type) {
	case *lineFeed:
		return value
	case *batchSink:
		return &value.feed
	default:
		return nil
	}
}
