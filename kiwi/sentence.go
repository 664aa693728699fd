package kiwi

import (
	"sort"

	"github.com/steosofficial/kiwigo/native"
)

// SplitSentences returns the sentence boundaries of text as character
// ranges, using the default match options.
func (k *Kiwi) SplitSentences(text string) ([]SentenceBoundary, error) {
	return k.SplitSentencesWith(text, k.DefaultOptions().MatchOptions)
}

// SplitSentencesWith is SplitSentences with explicit match options.
func (k *Kiwi) SplitSentencesWith(text string, matchOptions int32) ([]SentenceBoundary, error) {
	if err := k.lib.Require(native.CapSentenceSplit); err != nil {
		return nil, err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.liveLocked(); err != nil {
		return nil, err
	}

	k.lib.ClearError()
	var split native.SentSplitHandle
	if k.wide && k.lib.SplitIntoSentsW != nil {
		units, err := native.UTF16z(text)
		if err != nil {
			return nil, err
		}
		split = k.lib.SplitIntoSentsW(k.handle, &units[0], matchOptions, nil)
	} else {
		if err := native.CheckNoNUL("text", text); err != nil {
			return nil, err
		}
		split = k.lib.SplitIntoSents(k.handle, text, matchOptions, nil)
	}
	if split == 0 {
		return nil, k.lib.CallErr("kiwi_split_into_sents", "sentence splitting failed")
	}
	defer k.lib.SsClose(split)

	count := k.lib.SsSize(split)
	if count < 0 {
		return nil, k.lib.CallErr("kiwi_ss_size", "failed to read the sentence count")
	}

	unitToChar := buildUTF16ToCharMap(text)
	boundaries := make([]SentenceBoundary, 0, count)
	for i := int32(0); i < count; i++ {
		begin := k.lib.SsBeginPosition(split, i)
		end := k.lib.SsEndPosition(split, i)
		if begin < 0 || end < 0 {
			return nil, k.lib.CallErr("kiwi_ss_begin_position", "failed to read a sentence boundary")
		}
		boundaries = append(boundaries, SentenceBoundary{
			Begin: clampIndex(unitToChar, int(begin)),
			End:   clampIndex(unitToChar, int(end)),
		})
	}
	return boundaries, nil
}

// Sentences splits text into sentences with their text slices, tokens and
// nested sub-sentences, using the default match options.
func (k *Kiwi) Sentences(text string) ([]Sentence, error) {
	return k.SentencesWith(text, k.DefaultOptions())
}

// SentencesWith is Sentences with explicit analyze options; opts.TopN is
// ignored.
func (k *Kiwi) SentencesWith(text string, opts AnalyzeOptions) ([]Sentence, error) {
	tokens, err := k.TokenizeWith(text, opts)
	if err != nil {
		return nil, err
	}
	return buildSentencesFromTokens(text, tokens), nil
}

// buildSentencesFromTokens groups tokens by their sentence index. Each
// sentence spans from its first token's position to its last token's end;
// token positions stay absolute character offsets into the original text.
func buildSentencesFromTokens(text string, tokens []Token) []Sentence {
	if len(tokens) == 0 {
		return nil
	}

	charToByte := buildCharToByteMap(text)
	grouped := make(map[int][]Token)
	for _, token := range tokens {
		grouped[token.SentPosition] = append(grouped[token.SentPosition], token)
	}

	positions := make([]int, 0, len(grouped))
	for position := range grouped {
		positions = append(positions, position)
	}
	sort.Ints(positions)

	sentences := make([]Sentence, 0, len(positions))
	for _, position := range positions {
		sentenceTokens := grouped[position]
		start := sentenceTokens[0].Position
		end := start
		for _, token := range sentenceTokens {
			if token.Position < start {
				start = token.Position
			}
			if tokenEnd := token.Position + token.Length; tokenEnd > end {
				end = tokenEnd
			}
		}

		sentences = append(sentences, Sentence{
			Text:   sliceCharRange(text, charToByte, start, end),
			Start:  start,
			End:    end,
			Tokens: sentenceTokens,
			Subs:   buildSubSentences(text, charToByte, sentenceTokens),
		})
	}
	return sentences
}

// buildSubSentences extracts quoted or parenthesized nested sentences:
// every maximal run of tokens sharing a non-zero SubSentPosition becomes
// one sub-sentence.
func buildSubSentences(text string, charToByte []int, tokens []Token) []Sentence {
	var subs []Sentence
	runStart := -1
	runID := 0

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		run := tokens[runStart:end]
		begin := run[0].Position
		last := run[len(run)-1]
		subs = append(subs, Sentence{
			Text:   sliceCharRange(text, charToByte, begin, last.Position+last.Length),
			Start:  begin,
			End:    last.Position + last.Length,
			Tokens: append([]Token(nil), run...),
		})
		runStart = -1
	}

	for i, token := range tokens {
		switch {
		case token.SubSentPosition == 0:
			flush(i)
		case runStart < 0:
			runStart = i
			runID = token.SubSentPosition
		case token.SubSentPosition != runID:
			flush(i)
			runStart = i
			runID = token.SubSentPosition
		}
	}
	flush(len(tokens))
	return subs
}
