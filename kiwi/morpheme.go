package kiwi

import (
	"math"

	"github.com/steosofficial/kiwigo/native"
)

// TagToString resolves a numeric part-of-speech tag id into its string form.
func (k *Kiwi) TagToString(tag uint8) (string, error) {
	if err := k.lib.Require(native.CapMorphemeInfo); err != nil {
		return "", err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return "", err
	}

	k.lib.ClearError()
	p := k.lib.TagToString(k.handle, tag)
	if p == nil {
		return "", k.lib.CallErr("kiwi_tag_to_string", "returned a null pointer")
	}
	return native.GoString(p), nil
}

// FindMorphemes looks up morpheme ids by exact form. tag narrows the search
// when non-empty; senseID narrows it when >= 0.
func (k *Kiwi) FindMorphemes(form, tag string, senseID int32, maxCount int) ([]uint32, error) {
	return k.findMorphemes(form, tag, senseID, maxCount, false)
}

// FindMorphemesWithPrefix is FindMorphemes over every form starting with
// formPrefix.
func (k *Kiwi) FindMorphemesWithPrefix(formPrefix, tag string, senseID int32, maxCount int) ([]uint32, error) {
	return k.findMorphemes(formPrefix, tag, senseID, maxCount, true)
}

func (k *Kiwi) findMorphemes(form, tag string, senseID int32, maxCount int, prefix bool) ([]uint32, error) {
	if err := k.lib.Require(native.CapMorphemeInfo); err != nil {
		return nil, err
	}
	if maxCount < 0 || maxCount > math.MaxInt32 {
		return nil, &native.ArgumentError{Reason: "maxCount out of range"}
	}
	if err := native.CheckNoNUL("form", form); err != nil {
		return nil, err
	}

	var tagPtr *byte
	if tag != "" {
		if err := native.CheckNoNUL("tag", tag); err != nil {
			return nil, err
		}
		buf := append([]byte(tag), 0)
		tagPtr = &buf[0]
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	ids := make([]uint32, maxCount)
	var out *uint32
	if maxCount > 0 {
		out = &ids[0]
	}

	k.lib.ClearError()
	var size int32
	if prefix {
		size = k.lib.FindMorphemesWithPrefix(k.handle, form, tagPtr, senseID, out, int32(maxCount))
	} else {
		size = k.lib.FindMorphemes(k.handle, form, tagPtr, senseID, out, int32(maxCount))
	}
	if size < 0 {
		return nil, k.lib.CallErr("kiwi_find_morphemes", "morpheme lookup failed")
	}
	return ids[:size], nil
}

// MorphemeInfo returns the engine's metadata for one morpheme id.
func (k *Kiwi) MorphemeInfo(morphID uint32) (MorphemeInfo, error) {
	if err := k.lib.Require(native.CapMorphemeInfo); err != nil {
		return MorphemeInfo{}, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return MorphemeInfo{}, err
	}

	k.lib.ClearError()
	raw := k.lib.GetMorphemeInfo(k.handle, morphID)
	if message := k.lib.ReadError(); message != "" {
		return MorphemeInfo{}, &native.CallError{Op: "kiwi_get_morpheme_info", Message: message}
	}
	return MorphemeInfo{
		Tag:            raw.Tag,
		SenseID:        raw.SenseID,
		UserScore:      raw.UserScore,
		LmMorphemeID:   raw.LmMorphemeID,
		OrigMorphemeID: raw.OrigMorphemeID,
		Dialect:        raw.Dialect,
	}, nil
}

// MorphemeForm returns the surface form of a morpheme id.
func (k *Kiwi) MorphemeForm(morphID uint32) (string, error) {
	if err := k.lib.Require(native.CapMorphemeInfo); err != nil {
		return "", err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return "", err
	}

	if k.wide && k.lib.GetMorphemeFormW != nil {
		k.lib.ClearError()
		p := k.lib.GetMorphemeFormW(k.handle, morphID)
		if p == nil {
			return "", k.lib.CallErr("kiwi_get_morpheme_form_w", "returned a null pointer")
		}
		return native.GoUTF16String(p), nil
	}

	k.lib.ClearError()
	p := k.lib.GetMorphemeForm(k.handle, morphID)
	if p == nil {
		return "", k.lib.CallErr("kiwi_get_morpheme_form", "returned a null pointer")
	}
	form := native.GoString(p)
	if rc := k.lib.FreeMorphemeForm(p); rc != 0 {
		return "", k.lib.CallErr("kiwi_free_morpheme_form", "failed to release the form buffer")
	}
	return form, nil
}

// Morpheme resolves a morpheme id into its form, tag and sense metadata.
func (k *Kiwi) Morpheme(morphID uint32) (MorphemeSense, error) {
	info, err := k.MorphemeInfo(morphID)
	if err != nil {
		return MorphemeSense{}, err
	}
	form, err := k.MorphemeForm(morphID)
	if err != nil {
		return MorphemeSense{}, err
	}
	tag, err := k.TagToString(info.Tag)
	if err != nil {
		return MorphemeSense{}, err
	}
	return MorphemeSense{
		MorphID: morphID,
		Form:    form,
		Tag:     tag,
		SenseID: info.SenseID,
		Dialect: info.Dialect,
	}, nil
}

// ListSenses resolves every sense of form, up to maxCount.
func (k *Kiwi) ListSenses(form string, maxCount int) ([]MorphemeSense, error) {
	ids, err := k.FindMorphemes(form, "", -1, maxCount)
	if err != nil {
		return nil, err
	}
	out := make([]MorphemeSense, 0, len(ids))
	for _, id := range ids {
		sense, err := k.Morpheme(id)
		if err != nil {
			return nil, err
		}
		out = append(out, sense)
	}
	return out, nil
}

// MostSimilarMorphemes returns up to topN morphemes closest to morphID in
// the CoNg embedding space, best first.
func (k *Kiwi) MostSimilarMorphemes(morphID uint32, topN int) ([]SimilarityPair, error) {
	return k.collectSimilarityPairs("kiwi_cong_most_similar_words", morphID, topN, func(out *native.SimilarityPair, capacity int32) int32 {
		return k.lib.CongMostSimilarWords(k.handle, morphID, out, capacity)
	})
}

// MostSimilarContexts returns up to topN contexts closest to contextID.
func (k *Kiwi) MostSimilarContexts(contextID uint32, topN int) ([]SimilarityPair, error) {
	return k.collectSimilarityPairs("kiwi_cong_most_similar_contexts", contextID, topN, func(out *native.SimilarityPair, capacity int32) int32 {
		return k.lib.CongMostSimilarContexts(k.handle, contextID, out, capacity)
	})
}

// PredictWordsFromContext returns the morphemes the model expects after
// contextID, best first.
func (k *Kiwi) PredictWordsFromContext(contextID uint32, topN int) ([]SimilarityPair, error) {
	return k.collectSimilarityPairs("kiwi_cong_predict_words_from_context", contextID, topN, func(out *native.SimilarityPair, capacity int32) int32 {
		return k.lib.CongPredictWordsFromContext(k.handle, contextID, out, capacity)
	})
}

// PredictWordsFromContextDiff is PredictWordsFromContext with a background
// context subtracted at the given weight.
func (k *Kiwi) PredictWordsFromContextDiff(contextID, bgContextID uint32, weight float32, topN int) ([]SimilarityPair, error) {
	return k.collectSimilarityPairs("kiwi_cong_predict_words_from_context_diff", contextID, topN, func(out *native.SimilarityPair, capacity int32) int32 {
		return k.lib.CongPredictWordsFromContextDiff(k.handle, contextID, bgContextID, weight, out, capacity)
	})
}

func (k *Kiwi) collectSimilarityPairs(op string, id uint32, topN int, call func(*native.SimilarityPair, int32) int32) ([]SimilarityPair, error) {
	if err := k.lib.Require(native.CapSimilarity); err != nil {
		return nil, err
	}
	if topN < 0 || topN > math.MaxInt32 {
		return nil, &native.ArgumentError{Reason: "topN out of range"}
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	raw := make([]native.SimilarityPair, topN)
	var out *native.SimilarityPair
	if topN > 0 {
		out = &raw[0]
	}

	k.lib.ClearError()
	size := call(out, int32(topN))
	if size < 0 {
		return nil, k.lib.CallErr(op, "similarity query failed")
	}

	pairs := make([]SimilarityPair, size)
	for i := range pairs {
		pairs[i] = SimilarityPair{ID: raw[i].ID, Score: raw[i].Score}
	}
	return pairs, nil
}

// MorphemeSimilarity returns the embedding similarity of two morphemes.
func (k *Kiwi) MorphemeSimilarity(morphID1, morphID2 uint32) (float32, error) {
	return k.similarity("kiwi_cong_similarity", func() float32 {
		return k.lib.CongSimilarity(k.handle, morphID1, morphID2)
	})
}

// ContextSimilarity returns the embedding similarity of two contexts.
func (k *Kiwi) ContextSimilarity(contextID1, contextID2 uint32) (float32, error) {
	return k.similarity("kiwi_cong_context_similarity", func() float32 {
		return k.lib.CongContextSimilarity(k.handle, contextID1, contextID2)
	})
}

func (k *Kiwi) similarity(op string, call func() float32) (float32, error) {
	if err := k.lib.Require(native.CapSimilarity); err != nil {
		return 0, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return 0, err
	}

	k.lib.ClearError()
	score := call()
	if math.IsNaN(float64(score)) {
		return 0, k.lib.CallErr(op, "returned NaN")
	}
	return score, nil
}

// ToContextID folds a morpheme sequence into the model's context id.
func (k *Kiwi) ToContextID(morphIDs []uint32) (uint32, error) {
	if err := k.lib.Require(native.CapSimilarity); err != nil {
		return 0, err
	}
	if len(morphIDs) == 0 || len(morphIDs) > math.MaxInt32 {
		return 0, &native.ArgumentError{Reason: "morphIDs length out of range"}
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return 0, err
	}

	k.lib.ClearError()
	contextID := k.lib.CongToContextID(k.handle, &morphIDs[0], int32(len(morphIDs)))
	if contextID == 0 {
		if message := k.lib.ReadError(); message != "" {
			return 0, &native.CallError{Op: "kiwi_cong_to_context_id", Message: message}
		}
	}
	return contextID, nil
}

// FromContextID expands a context id back into up to maxSize morpheme ids.
func (k *Kiwi) FromContextID(contextID uint32, maxSize int) ([]uint32, error) {
	if err := k.lib.Require(native.CapSimilarity); err != nil {
		return nil, err
	}
	if maxSize < 0 || maxSize > math.MaxInt32 {
		return nil, &native.ArgumentError{Reason: "maxSize out of range"}
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	ids := make([]uint32, maxSize)
	var out *uint32
	if maxSize > 0 {
		out = &ids[0]
	}

	k.lib.ClearError()
	size := k.lib.CongFromContextID(k.handle, contextID, out, int32(maxSize))
	if size < 0 {
		return nil, k.lib.CallErr("kiwi_cong_from_context_id", "context expansion failed")
	}
	return ids[:size], nil
}

// ScriptName resolves a script id into its name.
func (k *Kiwi) ScriptName(script uint8) (string, error) {
	if err := k.lib.Require(native.CapScriptNames); err != nil {
		return "", err
	}
	p := k.lib.GetScriptName(script)
	if p == nil {
		return "", &native.CallError{Op: "kiwi_get_script_name", Message: "returned a null pointer"}
	}
	return native.GoString(p), nil
}

// ListAllScripts returns every distinct script name the engine knows,
// skipping the "Unknown" placeholder.
func (k *Kiwi) ListAllScripts() ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for script := 0; script <= 255; script++ {
		name, err := k.ScriptName(uint8(script))
		if err != nil {
			return nil, err
		}
		if name == "Unknown" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
