package kiwi

import (
	"strings"

	"github.com/steosofficial/kiwigo/native"
)

// Morpheme is one (form, tag) pair fed to the joiner.
type Morpheme struct {
	Form string
	Tag  string
}

// Joiner assembles morphemes back into surface text, applying the engine's
// orthographic rules. It is bound to the engine that created it.
type Joiner struct {
	eng    *Kiwi
	handle native.JoinerHandle
	closed bool
}

// NewJoiner creates a joiner. With lmSearch the engine picks between
// ambiguous surface forms using its language model.
func (k *Kiwi) NewJoiner(lmSearch bool) (*Joiner, error) {
	if err := k.lib.Require(native.CapJoiner); err != nil {
		return nil, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	var search int32
	if lmSearch {
		search = 1
	}
	k.lib.ClearError()
	handle := k.lib.NewJoiner(k.handle, search)
	if handle == 0 {
		return nil, k.lib.CallErr("kiwi_new_joiner", "failed to create a joiner")
	}
	k.lib.Retain()
	return &Joiner{eng: k, handle: handle}, nil
}

func (j *Joiner) live() error {
	if j == nil || j.closed || j.handle == 0 {
		return &native.StateError{Handle: "joiner"}
	}
	return nil
}

// Add appends one morpheme. A tag with an explicit "-" suffix disables the
// engine's automatic form adjustment for it.
func (j *Joiner) Add(form, tag string) error {
	if err := j.live(); err != nil {
		return err
	}
	if err := native.CheckNoNUL("form", form); err != nil {
		return err
	}
	if err := native.CheckNoNUL("tag", tag); err != nil {
		return err
	}

	var auto int32
	if !strings.Contains(tag, "-") {
		auto = 1
	}
	lib := j.eng.lib
	lib.ClearError()
	if rc := lib.JoinerAdd(j.handle, form, tag, auto); rc < 0 {
		return lib.CallErr("kiwi_joiner_add", "failed to add a morpheme to the joiner")
	}
	return nil
}

// Get returns the joined surface text for everything added so far.
func (j *Joiner) Get() (string, error) {
	if err := j.live(); err != nil {
		return "", err
	}
	lib := j.eng.lib

	lib.ClearError()
	if j.eng.wide && lib.JoinerGetW != nil {
		p := lib.JoinerGetW(j.handle)
		if p == nil {
			return "", lib.CallErr("kiwi_joiner_get_w", "failed to join the morphemes")
		}
		return native.GoUTF16String(p), nil
	}
	p := lib.JoinerGet(j.handle)
	if p == nil {
		return "", lib.CallErr("kiwi_joiner_get", "failed to join the morphemes")
	}
	return native.GoString(p), nil
}

// Close releases the joiner. Closing twice is a no-op.
func (j *Joiner) Close() error {
	if j == nil || j.closed || j.handle == 0 {
		return nil
	}
	j.closed = true
	handle := j.handle
	j.handle = 0
	lib := j.eng.lib
	lib.ClearError()
	var err error
	if rc := lib.JoinerClose(handle); rc < 0 {
		err = lib.CallErr("kiwi_joiner_close", "failed to close the joiner")
	}
	if releaseErr := lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}

// Join assembles morphemes into surface text in one call.
func (k *Kiwi) Join(morphemes []Morpheme, lmSearch bool) (string, error) {
	joiner, err := k.NewJoiner(lmSearch)
	if err != nil {
		return "", err
	}
	defer joiner.Close()

	for _, morpheme := range morphemes {
		if err := joiner.Add(morpheme.Form, morpheme.Tag); err != nil {
			return "", err
		}
	}
	return joiner.Get()
}
