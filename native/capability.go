package native

import "sort"

// Capability names a feature group of the loaded library. A capability is on
// only when every symbol in its group resolved; partial groups stay off so a
// gated call can never reach a nil function pointer.
type Capability string

const (
	// CapUTF16 covers the whole *_w surface as one all-or-nothing group.
	CapUTF16 Capability = "utf16"
	// CapBatch is the callback-driven multi-line analyze entry point.
	CapBatch Capability = "batch-analyze"
	// CapBatchWide is the UTF-16 variant of the batch entry point.
	CapBatchWide Capability = "batch-analyze-wide"
	// CapDirectInit opens an engine straight from a prebuilt model directory.
	CapDirectInit Capability = "direct-init"
	// CapOptions is the integer/float per-engine option surface.
	CapOptions Capability = "engine-options"
	// CapGlobalConfig is the whole-struct config get/set surface.
	CapGlobalConfig Capability = "global-config"
	// CapTypo is typo-transformer construction and editing.
	CapTypo Capability = "typo"
	// CapMorphset is morpheme blocklist construction.
	CapMorphset Capability = "morphset"
	// CapPretokenized is pre-tokenized span constraints.
	CapPretokenized Capability = "pretokenized"
	// CapSentenceSplit is sentence boundary detection.
	CapSentenceSplit Capability = "sentence-split"
	// CapJoiner is morpheme-to-surface joining.
	CapJoiner Capability = "joiner"
	// CapWordExtraction is corpus-driven unknown-word extraction.
	CapWordExtraction Capability = "word-extraction"
	// CapSwTokenizer is the subword tokenizer.
	CapSwTokenizer Capability = "sw-tokenizer"
	// CapMorphemeInfo is morpheme id lookup and metadata.
	CapMorphemeInfo Capability = "morpheme-info"
	// CapSimilarity is the CoNg word/context similarity surface.
	CapSimilarity Capability = "similarity"
	// CapStreamBuilder builds from caller-supplied model streams.
	CapStreamBuilder Capability = "stream-builder"
	// CapScriptNames resolves script ids to names.
	CapScriptNames Capability = "script-names"
	// CapBuilderExtras covers alias words, pre-analyzed words, user
	// dictionaries and replacement rules on the builder.
	CapBuilderExtras Capability = "builder-extras"
)

var capabilitySymbols = map[Capability][]string{
	CapUTF16: {
		"kiwi_analyze_w",
		"kiwi_res_form_w",
		"kiwi_res_tag_w",
		"kiwi_split_into_sents_w",
		"kiwi_morphset_add_w",
		"kiwi_pt_add_token_to_span_w",
		"kiwi_joiner_get_w",
		"kiwi_ws_form_w",
		"kiwi_get_morpheme_form_w",
		"kiwi_builder_extract_words_w",
		"kiwi_builder_extract_add_words_w",
	},
	CapBatch:      {"kiwi_analyze_m"},
	CapBatchWide:  {"kiwi_analyze_mw"},
	CapDirectInit: {"kiwi_init"},
	CapOptions: {
		"kiwi_set_option",
		"kiwi_get_option",
		"kiwi_set_option_f",
		"kiwi_get_option_f",
	},
	CapGlobalConfig: {
		"kiwi_set_global_config",
		"kiwi_get_global_config",
	},
	CapTypo: {
		"kiwi_typo_init",
		"kiwi_typo_get_basic",
		"kiwi_typo_get_default",
		"kiwi_typo_add",
		"kiwi_typo_copy",
		"kiwi_typo_update",
		"kiwi_typo_scale_cost",
		"kiwi_typo_set_continual_typo_cost",
		"kiwi_typo_set_lengthening_typo_cost",
		"kiwi_typo_close",
	},
	CapMorphset: {
		"kiwi_new_morphset",
		"kiwi_morphset_add",
		"kiwi_morphset_close",
	},
	CapPretokenized: {
		"kiwi_pt_init",
		"kiwi_pt_add_span",
		"kiwi_pt_add_token_to_span",
		"kiwi_pt_close",
	},
	CapSentenceSplit: {
		"kiwi_split_into_sents",
		"kiwi_ss_size",
		"kiwi_ss_begin_position",
		"kiwi_ss_end_position",
		"kiwi_ss_close",
	},
	CapJoiner: {
		"kiwi_new_joiner",
		"kiwi_joiner_add",
		"kiwi_joiner_get",
		"kiwi_joiner_close",
	},
	CapWordExtraction: {
		"kiwi_builder_extract_words",
		"kiwi_builder_extract_add_words",
		"kiwi_ws_size",
		"kiwi_ws_form",
		"kiwi_ws_score",
		"kiwi_ws_freq",
		"kiwi_ws_pos_score",
		"kiwi_ws_close",
	},
	CapSwTokenizer: {
		"kiwi_swt_init",
		"kiwi_swt_encode",
		"kiwi_swt_decode",
		"kiwi_swt_close",
	},
	CapMorphemeInfo: {
		"kiwi_find_morphemes",
		"kiwi_find_morphemes_with_prefix",
		"kiwi_get_morpheme_info",
		"kiwi_get_morpheme_form",
		"kiwi_free_morpheme_form",
		"kiwi_tag_to_string",
	},
	CapSimilarity: {
		"kiwi_cong_most_similar_words",
		"kiwi_cong_similarity",
		"kiwi_cong_most_similar_contexts",
		"kiwi_cong_context_similarity",
		"kiwi_cong_predict_words_from_context",
		"kiwi_cong_predict_words_from_context_diff",
		"kiwi_cong_to_context_id",
		"kiwi_cong_from_context_id",
	},
	CapStreamBuilder: {"kiwi_builder_init_stream"},
	CapScriptNames:   {"kiwi_get_script_name"},
	CapBuilderExtras: {
		"kiwi_builder_add_alias_word",
		"kiwi_builder_add_pre_analyzed_word",
		"kiwi_builder_load_dict",
		"kiwi_builder_add_rule",
	},
}

// CapabilitySet records which feature groups a loaded library provides and,
// for the ones it does not, which symbols were missing.
type CapabilitySet struct {
	missing map[Capability][]string
}

func newCapabilitySet(absent map[string]bool) CapabilitySet {
	set := CapabilitySet{missing: make(map[Capability][]string)}
	for capability, symbols := range capabilitySymbols {
		var holes []string
		for _, symbol := range symbols {
			if absent[symbol] {
				holes = append(holes, symbol)
			}
		}
		if len(holes) > 0 {
			sort.Strings(holes)
			set.missing[capability] = holes
		}
	}
	return set
}

// Has reports whether every symbol of the capability's group resolved.
func (s CapabilitySet) Has(capability Capability) bool {
	_, blocked := s.missing[capability]
	return !blocked
}

// MissingFor returns the symbols that blocked a capability, nil when the
// capability is available.
func (s CapabilitySet) MissingFor(capability Capability) []string {
	holes := s.missing[capability]
	out := make([]string, len(holes))
	copy(out, holes)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Available lists the enabled capabilities in sorted order.
func (s CapabilitySet) Available() []Capability {
	var out []Capability
	for capability := range capabilitySymbols {
		if s.Has(capability) {
			out = append(out, capability)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Err returns a CapabilityError for a blocked capability, nil otherwise.
func (s CapabilitySet) Err(capability Capability) error {
	if s.Has(capability) {
		return nil
	}
	return &CapabilityError{Capability: capability, Missing: s.MissingFor(capability)}
}
