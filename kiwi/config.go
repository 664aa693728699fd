package kiwi

import (
	"github.com/steosofficial/kiwigo/native"
)

// GlobalConfig returns the engine-wide scoring configuration.
func (k *Kiwi) GlobalConfig() (GlobalConfig, error) {
	if err := k.lib.Require(native.CapGlobalConfig); err != nil {
		return GlobalConfig{}, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return GlobalConfig{}, err
	}

	k.lib.ClearError()
	raw := k.lib.GetGlobalConfig(k.handle)
	if message := k.lib.ReadError(); message != "" {
		return GlobalConfig{}, &native.CallError{Op: "kiwi_get_global_config", Message: message}
	}
	return globalConfigFromRaw(raw), nil
}

// SetGlobalConfig replaces the engine-wide scoring configuration and drops
// every cached result.
func (k *Kiwi) SetGlobalConfig(cfg GlobalConfig) error {
	return k.updateGlobalConfig(func(current *GlobalConfig) {
		*current = cfg
	})
}

// The native config calls return void; success is a call that leaves the
// engine's error slot empty.
func (k *Kiwi) updateGlobalConfig(change func(*GlobalConfig)) error {
	if err := k.lib.Require(native.CapGlobalConfig); err != nil {
		return err
	}

	k.mu.Lock()
	err := func() error {
		if err := k.liveLocked(); err != nil {
			return err
		}
		k.lib.ClearError()
		raw := k.lib.GetGlobalConfig(k.handle)
		if message := k.lib.ReadError(); message != "" {
			return &native.CallError{Op: "kiwi_get_global_config", Message: message}
		}

		cfg := globalConfigFromRaw(raw)
		change(&cfg)

		k.lib.ClearError()
		k.lib.SetGlobalConfig(k.handle, cfg.raw())
		if message := k.lib.ReadError(); message != "" {
			return &native.CallError{Op: "kiwi_set_global_config", Message: message}
		}
		return nil
	}()
	k.mu.Unlock()
	if err != nil {
		return err
	}

	k.cache.purge()
	return nil
}

// SetCutOffThreshold sets the beam-search cut-off.
func (k *Kiwi) SetCutOffThreshold(value float32) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.CutOffThreshold = value })
}

// SetIntegrateAllomorph toggles allomorph merging.
func (k *Kiwi) SetIntegrateAllomorph(enabled bool) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.IntegrateAllomorph = enabled })
}

// SetSpacePenalty sets the penalty for spaces inside a morpheme.
func (k *Kiwi) SetSpacePenalty(value float32) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.SpacePenalty = value })
}

// SetSpaceTolerance sets how many spacing errors an analysis may absorb.
func (k *Kiwi) SetSpaceTolerance(value uint32) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.SpaceTolerance = value })
}

// SetMaxUnkFormSize sets the longest unknown form the engine will guess.
func (k *Kiwi) SetMaxUnkFormSize(value uint32) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.MaxUnkFormSize = value })
}

// SetTypoCostWeight sets the weight of typo-correction costs.
func (k *Kiwi) SetTypoCostWeight(value float32) error {
	return k.updateGlobalConfig(func(cfg *GlobalConfig) { cfg.TypoCostWeight = value })
}

// Option reads an integer engine option (native.Option* keys).
func (k *Kiwi) Option(key int32) (int32, error) {
	if err := k.lib.Require(native.CapOptions); err != nil {
		return 0, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return 0, err
	}

	k.lib.ClearError()
	value := k.lib.GetOption(k.handle, key)
	if message := k.lib.ReadError(); message != "" {
		return 0, &native.CallError{Op: "kiwi_get_option", Message: message}
	}
	return value, nil
}

// SetOption writes an integer engine option and drops every cached result.
func (k *Kiwi) SetOption(key, value int32) error {
	if err := k.lib.Require(native.CapOptions); err != nil {
		return err
	}

	k.mu.Lock()
	err := func() error {
		if err := k.liveLocked(); err != nil {
			return err
		}
		k.lib.ClearError()
		k.lib.SetOption(k.handle, key, value)
		if message := k.lib.ReadError(); message != "" {
			return &native.CallError{Op: "kiwi_set_option", Message: message}
		}
		return nil
	}()
	k.mu.Unlock()
	if err != nil {
		return err
	}

	k.cache.purge()
	return nil
}

// OptionF reads a float engine option.
func (k *Kiwi) OptionF(key int32) (float32, error) {
	if err := k.lib.Require(native.CapOptions); err != nil {
		return 0, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return 0, err
	}

	k.lib.ClearError()
	value := k.lib.GetOptionF(k.handle, key)
	if message := k.lib.ReadError(); message != "" {
		return 0, &native.CallError{Op: "kiwi_get_option_f", Message: message}
	}
	return value, nil
}

// SetOptionF writes a float engine option and drops every cached result.
func (k *Kiwi) SetOptionF(key int32, value float32) error {
	if err := k.lib.Require(native.CapOptions); err != nil {
		return err
	}

	k.mu.Lock()
	err := func() error {
		if err := k.liveLocked(); err != nil {
			return err
		}
		k.lib.ClearError()
		k.lib.SetOptionF(k.handle, key, value)
		if message := k.lib.ReadError(); message != "" {
			return &native.CallError{Op: "kiwi_set_option_f", Message: message}
		}
		return nil
	}()
	k.mu.Unlock()
	if err != nil {
		return err
	}

	k.cache.purge()
	return nil
}

// NumThreads reports the engine's worker thread count.
func (k *Kiwi) NumThreads() (int, error) {
	value, err := k.Option(native.OptionNumThreads)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}
