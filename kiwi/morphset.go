package kiwi

import (
	"github.com/steosofficial/kiwigo/native"
)

// MorphemeSet is a blocklist of morphemes excluded from analysis. It is
// bound to the engine that created it and must be closed before that engine.
type MorphemeSet struct {
	eng    *Kiwi
	handle native.MorphsetHandle
	closed bool

	// id and version feed the result cache key; version counts mutations.
	id      uint64
	version uint64
}

// NewMorphemeSet creates an empty blocklist bound to this engine.
func (k *Kiwi) NewMorphemeSet() (*MorphemeSet, error) {
	if err := k.lib.Require(native.CapMorphset); err != nil {
		return nil, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	k.lib.ClearError()
	handle := k.lib.NewMorphset(k.handle)
	if handle == 0 {
		return nil, k.lib.CallErr("kiwi_new_morphset", "failed to create a morpheme set")
	}
	k.lib.Retain()
	return &MorphemeSet{eng: k, handle: handle, id: nextConstraintID()}, nil
}

func (m *MorphemeSet) live() error {
	if m == nil || m.closed || m.handle == 0 {
		return &native.StateError{Handle: "morpheme set"}
	}
	return nil
}

func (m *MorphemeSet) key() constraintKey {
	if m == nil {
		return constraintKey{}
	}
	return constraintKey{id: m.id, version: m.version}
}

// Add blocks every morpheme matching form with the given tag. An empty tag
// blocks all senses of the form. Returns the number of morphemes matched.
func (m *MorphemeSet) Add(form, tag string) (int, error) {
	if err := m.live(); err != nil {
		return 0, err
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return 0, err
	}
	lib := m.eng.lib

	lib.ClearError()
	var rc int32
	if m.eng.wide {
		units, err := native.UTF16z(form)
		if err != nil {
			return 0, err
		}
		rc = lib.MorphsetAddW(m.handle, &units[0], tag)
	} else {
		if err := native.CheckNoNUL("form", form); err != nil {
			return 0, err
		}
		rc = lib.MorphsetAdd(m.handle, form, tag)
	}
	if rc < 0 {
		return 0, lib.CallErr("kiwi_morphset_add", "failed to add a morpheme to the set")
	}
	m.version++
	return int(rc), nil
}

// Close releases the set. Closing twice is a no-op.
func (m *MorphemeSet) Close() error {
	if m == nil || m.closed || m.handle == 0 {
		return nil
	}
	m.closed = true
	handle := m.handle
	m.handle = 0
	lib := m.eng.lib
	lib.ClearError()
	var err error
	if rc := lib.MorphsetClose(handle); rc < 0 {
		err = lib.CallErr("kiwi_morphset_close", "failed to close the morpheme set")
	}
	if releaseErr := lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
