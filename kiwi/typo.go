package kiwi

import "github.com/steosofficial/kiwigo/native"

// TypoTransformer configures typo correction for Builder.Build. Preset
// transformers obtained from BasicTypoSet or DefaultTypoSet borrow engine
// internals, are never released and stay valid only while the library is
// loaded; transformers from NewTypoTransformer or Copy own their handle
// until Close.
type TypoTransformer struct {
	lib    *native.Library
	handle native.TypoHandle
	owned  bool
	closed bool
}

// NewTypoTransformer creates an empty, caller-owned typo transformer.
func (l *Library) NewTypoTransformer() (*TypoTransformer, error) {
	if err := l.lib.Require(native.CapTypo); err != nil {
		return nil, err
	}
	l.lib.ClearError()
	handle := l.lib.TypoInit()
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_typo_init", "failed to create a typo transformer")
	}
	l.lib.Retain()
	return &TypoTransformer{lib: l.lib, handle: handle, owned: true}, nil
}

// BasicTypoSet returns the engine's built-in basic typo set. The result is
// borrowed; Close is a no-op on it.
func (l *Library) BasicTypoSet() (*TypoTransformer, error) {
	if err := l.lib.Require(native.CapTypo); err != nil {
		return nil, err
	}
	l.lib.ClearError()
	handle := l.lib.TypoGetBasic()
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_typo_get_basic", "failed to fetch the basic typo set")
	}
	return &TypoTransformer{lib: l.lib, handle: handle}, nil
}

// DefaultTypoSet returns one of the engine's built-in typo presets
// (native.Typo* selectors). The result is borrowed; Close is a no-op on it.
func (l *Library) DefaultTypoSet(preset int32) (*TypoTransformer, error) {
	if err := l.lib.Require(native.CapTypo); err != nil {
		return nil, err
	}
	l.lib.ClearError()
	handle := l.lib.TypoGetDefault(preset)
	if handle == 0 {
		return nil, l.lib.CallErr("kiwi_typo_get_default", "failed to fetch the typo preset")
	}
	return &TypoTransformer{lib: l.lib, handle: handle}, nil
}

func (t *TypoTransformer) live() error {
	if t == nil || t.closed || t.handle == 0 {
		return &native.StateError{Handle: "typo transformer"}
	}
	return nil
}

// AddTypo registers replacement pairs: every string in origs may be mistyped
// as any string in errors at the given cost. Condition selects the jamo
// context the rule applies in.
func (t *TypoTransformer) AddTypo(origs, errors []string, cost float32, condition int32) error {
	if err := t.live(); err != nil {
		return err
	}
	if len(origs) == 0 || len(errors) == 0 {
		return &native.ArgumentError{Reason: "AddTypo needs at least one orig and one error form"}
	}
	origPtrs, err := native.CStrings("orig form", origs)
	if err != nil {
		return err
	}
	errorPtrs, err := native.CStrings("error form", errors)
	if err != nil {
		return err
	}

	t.lib.ClearError()
	rc := t.lib.TypoAdd(t.handle, &origPtrs[0], int32(len(origPtrs)), &errorPtrs[0], int32(len(errorPtrs)), cost, condition)
	if rc < 0 {
		return t.lib.CallErr("kiwi_typo_add", "failed to add a typo rule")
	}
	return nil
}

// Update merges every rule of src into t.
func (t *TypoTransformer) Update(src *TypoTransformer) error {
	if err := t.live(); err != nil {
		return err
	}
	if err := src.live(); err != nil {
		return err
	}
	if t.lib != src.lib {
		return &native.ArgumentError{Reason: "typo transformers belong to different libraries"}
	}
	t.lib.ClearError()
	if rc := t.lib.TypoUpdate(t.handle, src.handle); rc < 0 {
		return t.lib.CallErr("kiwi_typo_update", "failed to merge typo transformers")
	}
	return nil
}

// ScaleCost multiplies the cost of every rule by scale.
func (t *TypoTransformer) ScaleCost(scale float32) error {
	if err := t.live(); err != nil {
		return err
	}
	t.lib.ClearError()
	if rc := t.lib.TypoScaleCost(t.handle, scale); rc < 0 {
		return t.lib.CallErr("kiwi_typo_scale_cost", "failed to scale typo costs")
	}
	return nil
}

// SetContinualTypoCost sets the cost of continual-consonant typos.
func (t *TypoTransformer) SetContinualTypoCost(cost float32) error {
	if err := t.live(); err != nil {
		return err
	}
	t.lib.ClearError()
	if rc := t.lib.TypoSetContinualTypoCost(t.handle, cost); rc < 0 {
		return t.lib.CallErr("kiwi_typo_set_continual_typo_cost", "failed to set the continual typo cost")
	}
	return nil
}

// SetLengtheningTypoCost sets the cost of vowel-lengthening typos.
func (t *TypoTransformer) SetLengtheningTypoCost(cost float32) error {
	if err := t.live(); err != nil {
		return err
	}
	t.lib.ClearError()
	if rc := t.lib.TypoSetLengtheningTypoCost(t.handle, cost); rc < 0 {
		return t.lib.CallErr("kiwi_typo_set_lengthening_typo_cost", "failed to set the lengthening typo cost")
	}
	return nil
}

// Copy clones t into a new caller-owned transformer. Presets can be copied
// to obtain an editable version.
func (t *TypoTransformer) Copy() (*TypoTransformer, error) {
	if err := t.live(); err != nil {
		return nil, err
	}
	t.lib.ClearError()
	handle := t.lib.TypoCopy(t.handle)
	if handle == 0 {
		return nil, t.lib.CallErr("kiwi_typo_copy", "failed to copy the typo transformer")
	}
	t.lib.Retain()
	return &TypoTransformer{lib: t.lib, handle: handle, owned: true}, nil
}

// Close releases an owned transformer. Closing a borrowed preset or closing
// twice is a no-op.
func (t *TypoTransformer) Close() error {
	if t == nil || t.closed || t.handle == 0 {
		return nil
	}
	t.closed = true
	if !t.owned {
		return nil
	}
	t.lib.ClearError()
	var err error
	if rc := t.lib.TypoClose(t.handle); rc < 0 {
		err = t.lib.CallErr("kiwi_typo_close", "failed to close the typo transformer")
	}
	if releaseErr := t.lib.Release(); err == nil {
		err = releaseErr
	}
	return err
}
