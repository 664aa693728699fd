package kiwi

import (
	"math"
	"unicode/utf8"

	"github.com/steosofficial/kiwigo/native"
)

// SwTokenizer is a subword tokenizer loaded from a trained tokenizer file.
// It borrows the engine it was opened from and must be closed before it.
type SwTokenizer struct {
	eng    *Kiwi
	handle native.SwTokenizerHandle
	closed bool
}

// SwTokenOffset is the half-open span of one subword token in the encoded
// text, in bytes.
type SwTokenOffset struct {
	Begin int32
	End   int32
}

// OpenSwTokenizer loads a subword tokenizer definition from path.
func (k *Kiwi) OpenSwTokenizer(path string) (*SwTokenizer, error) {
	if err := k.lib.Require(native.CapSwTokenizer); err != nil {
		return nil, err
	}
	if err := native.CheckNoNUL("tokenizer path", path); err != nil {
		return nil, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	k.lib.ClearError()
	handle := k.lib.SwtInit(path, k.handle)
	if handle == 0 {
		return nil, k.lib.CallErr("kiwi_swt_init", "failed to open the subword tokenizer")
	}
	k.lib.Retain()
	return &SwTokenizer{eng: k, handle: handle}, nil
}

func (t *SwTokenizer) live() error {
	if t == nil || t.closed || t.handle == 0 {
		return &native.StateError{Handle: "subword tokenizer"}
	}
	return nil
}

// Encode converts text into subword token ids.
func (t *SwTokenizer) Encode(text string) ([]int32, error) {
	ids, _, err := t.encode(text, false)
	return ids, err
}

// EncodeWithOffsets additionally returns the byte span each token covers.
func (t *SwTokenizer) EncodeWithOffsets(text string) ([]int32, []SwTokenOffset, error) {
	ids, raw, err := t.encode(text, true)
	if err != nil {
		return nil, nil, err
	}
	offsets := make([]SwTokenOffset, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		offsets = append(offsets, SwTokenOffset{Begin: raw[i], End: raw[i+1]})
	}
	return ids, offsets, nil
}

// encode runs the native call twice: a nil-buffer pass for the token count,
// then the fill pass.
func (t *SwTokenizer) encode(text string, withOffsets bool) ([]int32, []int32, error) {
	if err := t.live(); err != nil {
		return nil, nil, err
	}
	if err := native.CheckNoNUL("text", text); err != nil {
		return nil, nil, err
	}
	lib := t.eng.lib

	lib.ClearError()
	count := lib.SwtEncode(t.handle, text, -1, nil, 0, nil, 0)
	if count < 0 {
		return nil, nil, lib.CallErr("kiwi_swt_encode", "token count query failed")
	}
	if count == 0 {
		return nil, nil, nil
	}

	ids := make([]int32, count)
	var offsets []int32
	var offsetsPtr *int32
	var offsetsCap int32
	if withOffsets {
		offsets = make([]int32, 2*int(count))
		offsetsPtr = &offsets[0]
		offsetsCap = int32(len(offsets))
	}

	lib.ClearError()
	written := lib.SwtEncode(t.handle, text, -1, &ids[0], count, offsetsPtr, offsetsCap)
	if written < 0 {
		return nil, nil, lib.CallErr("kiwi_swt_encode", "encoding failed")
	}
	ids = ids[:written]
	if withOffsets {
		offsets = offsets[:2*int(written)]
	}
	return ids, offsets, nil
}

// Decode converts subword token ids back into text.
func (t *SwTokenizer) Decode(ids []int32) (string, error) {
	if err := t.live(); err != nil {
		return "", err
	}
	if len(ids) > math.MaxInt32 {
		return "", &native.ArgumentError{Reason: "too many token ids"}
	}
	if len(ids) == 0 {
		return "", nil
	}
	lib := t.eng.lib

	lib.ClearError()
	size := lib.SwtDecode(t.handle, &ids[0], int32(len(ids)), nil, 0)
	if size < 0 {
		return "", lib.CallErr("kiwi_swt_decode", "text size query failed")
	}
	if size == 0 {
		return "", nil
	}

	out := make([]byte, size)
	lib.ClearError()
	written := lib.SwtDecode(t.handle, &ids[0], int32(len(ids)), &out[0], size)
	if written < 0 {
		return "", lib.CallErr("kiwi_swt_decode", "decoding failed")
	}
	out = out[:written]
	if !utf8.Valid(out) {
		return "", &native.CallError{Op: "kiwi_swt_decode", Message: "produced invalid UTF-8"}
	}
	return string(out), nil
}

// Close releases the tokenizer. Closing twice is a no-op.
func (t *SwTokenizer) Close() error {
	if t == nil || t.closed || t.handle == 0 {
		return nil
	}
	t.closed = true
	handle := t.handle
	t.handle = 0
	lib := t.eng.lib
	lib.ClearError()
	var err error
	if rc := lib.SwtClose(handle); rc < 0 {
		err = lib.CallErr("kiwi_swt_close", "failed to close the subword tokenizer")
	}
	if releaseErr := lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
