package kiwi

import (
	"fmt"

	"github.com/steosofficial/kiwigo/native"
)

// Pretokenized pins parts of an input text to fixed analyses before the
// engine runs. Spans and token offsets are in the engine's text units:
// UTF-16 code units on a wide engine, bytes otherwise. Use the engine's
// word rules when character-based spans are wanted.
type Pretokenized struct {
	lib    *native.Library
	wide   bool
	handle native.PretokenizedHandle
	closed bool

	// id and version feed the result cache key; version counts mutations.
	id      uint64
	version uint64
}

// NewPretokenized creates an empty pre-tokenization constraint.
func (l *Library) NewPretokenized() (*Pretokenized, error) {
	if err := l.lib.Require(native.CapPretokenized); err != nil {
		return nil, err
	}
	l.lib.ClearError()
	handle := l.lib.PtInit()
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_pt_init", "failed to create a pre-tokenization constraint")
	}
	l.lib.Retain()
	return &Pretokenized{
		lib:    l.lib,
		wide:   l.lib.Capabilities().Has(native.CapUTF16),
		handle: handle,
		id:     nextConstraintID(),
	}, nil
}

func (p *Pretokenized) live() error {
	if p == nil || p.closed || p.handle == 0 {
		return &native.StateError{Handle: "pre-tokenization constraint"}
	}
	return nil
}

func (p *Pretokenized) key() constraintKey {
	if p == nil {
		return constraintKey{}
	}
	return constraintKey{id: p.id, version: p.version}
}

// AddSpan reserves the half-open range [begin, end) and returns its span id
// for AddTokenToSpan.
func (p *Pretokenized) AddSpan(begin, end int) (int, error) {
	if err := p.live(); err != nil {
		return 0, err
	}
	if begin < 0 || end < begin {
		return 0, &native.ArgumentError{Reason: fmt.Sprintf("invalid span [%d, %d)", begin, end)}
	}
	p.lib.ClearError()
	spanID := p.lib.PtAddSpan(p.handle, int32(begin), int32(end))
	if spanID < 0 {
		return 0, p.lib.CallErr("kiwi_pt_add_span", "failed to add a span")
	}
	p.version++
	return int(spanID), nil
}

// AddTokenToSpan pins one morpheme inside a reserved span. begin and end are
// offsets relative to the span's text, in the same units as the span.
func (p *Pretokenized) AddTokenToSpan(spanID int, form, tag string, begin, end int) error {
	if err := p.live(); err != nil {
		return err
	}
	if begin < 0 || end < begin {
		return &native.ArgumentError{Reason: fmt.Sprintf("invalid token span [%d, %d)", begin, end)}
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return err
	}

	p.lib.ClearError()
	var rc int32
	if p.wide {
		units, err := native.UTF16z(form)
		if err != nil {
			return err
		}
		rc = p.lib.PtAddTokenToSpanW(p.handle, int32(spanID), &units[0], tag, int32(begin), int32(end))
	} else {
		if err := native.CheckNoNUL("form", form); err != nil {
			return err
		}
		rc = p.lib.PtAddTokenToSpan(p.handle, int32(spanID), form, tag, int32(begin), int32(end))
	}
	if rc < 0 {
		return p.lib.CallErr("kiwi_pt_add_token_to_span", "failed to pin a token to the span")
	}
	p.version++
	return nil
}

// Close releases the constraint. Closing twice is a no-op.
func (p *Pretokenized) Close() error {
	if p == nil || p.closed || p.handle == 0 {
		return nil
	}
	p.closed = true
	handle := p.handle
	p.handle = 0
	p.lib.ClearError()
	var err error
	if rc := p.lib.PtClose(handle); rc < 0 {
		err = p.lib.CallErr("kiwi_pt_close", "failed to close the pre-tokenization constraint")
	}
	if releaseErr := p.lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
