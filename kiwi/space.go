package kiwi

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/steosofficial/kiwigo/native"
)

// Space corrects the spacing of text: it re-analyzes the input and
// reconstructs it with spaces where the analysis says word boundaries are.
// With resetWhitespace, whitespace the analysis would have to fight is
// removed between Hangul syllables first.
func (k *Kiwi) Space(text string, resetWhitespace bool) (string, error) {
	normalized := text
	if resetWhitespace {
		normalized = resetHangulWhitespace(text)
	}

	opts := k.DefaultOptions()
	opts.TopN = 1
	opts.MatchOptions = native.MatchAll | native.MatchZCoda
	candidates, err := k.AnalyzeWith(normalized, opts)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return normalized, nil
	}
	return reconstructSpacedText(normalized, candidates[0].Tokens), nil
}

// SpaceMany applies Space to every text in order.
func (k *Kiwi) SpaceMany(texts []string, resetWhitespace bool) ([]string, error) {
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		spaced, err := k.Space(text, resetWhitespace)
		if err != nil {
			return nil, err
		}
		out = append(out, spaced)
	}
	return out, nil
}

// Glue concatenates text chunks (for example OCR or PDF line fragments),
// inserting a space between two chunks only when the language model scores
// the spaced join at least as well as the fused one.
func (k *Kiwi) Glue(chunks []string) (string, error) {
	glued, _, err := k.GlueWithOptions(chunks, nil, false)
	return glued, err
}

// GlueWithOptions is Glue with two extras: insertNewLines selects a newline
// instead of a space per boundary (its length must be len(chunks)-1), and
// returnInsertions additionally reports the per-boundary decision.
func (k *Kiwi) GlueWithOptions(chunks []string, insertNewLines []bool, returnInsertions bool) (string, []bool, error) {
	if len(chunks) == 0 {
		if returnInsertions {
			return "", []bool{}, nil
		}
		return "", nil, nil
	}

	trimmed := make([]string, len(chunks))
	for i, chunk := range chunks {
		trimmed[i] = strings.TrimSpace(chunk)
	}
	if insertNewLines != nil && len(insertNewLines) != len(trimmed)-1 {
		return "", nil, &native.ArgumentError{
			Reason: fmt.Sprintf("insertNewLines length must be %d", len(trimmed)-1),
		}
	}

	var result strings.Builder
	insertions := make([]bool, 0, len(trimmed)-1)
	for i := 0; i < len(trimmed)-1; i++ {
		left := trimmed[i]
		right := trimmed[i+1]
		result.WriteString(left)

		scoreWithSpace, err := k.topCandidateScore(left + " " + right)
		if err != nil {
			return "", nil, err
		}
		scoreWithoutSpace, err := k.topCandidateScore(left + right)
		if err != nil {
			return "", nil, err
		}

		insertSpace := scoreWithSpace >= scoreWithoutSpace || endsWithASCIIWord(left)
		insertions = append(insertions, insertSpace)
		if insertSpace {
			if insertNewLines != nil && insertNewLines[i] {
				result.WriteByte('\n')
			} else {
				result.WriteByte(' ')
			}
		}
	}
	result.WriteString(trimmed[len(trimmed)-1])

	if !returnInsertions {
		insertions = nil
	}
	return result.String(), insertions, nil
}

func (k *Kiwi) topCandidateScore(text string) (float32, error) {
	opts := k.DefaultOptions()
	opts.TopN = 1
	candidates, err := k.AnalyzeWith(text, opts)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return float32(math.Inf(-1)), nil
	}
	return candidates[0].Probability, nil
}

func stripAllWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

func isHangulSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

func isHangulOrSentencePunct(r rune) bool {
	if isHangulSyllable(r) {
		return true
	}
	switch r {
	case '.', ',', '?', '!', ':', ';':
		return true
	}
	return false
}

// resetHangulWhitespace removes whitespace runs sitting between a Hangul
// syllable and a following Hangul syllable or sentence punctuation, leaving
// every other run untouched.
func resetHangulWhitespace(text string) string {
	chars := []rune(text)
	out := make([]rune, 0, len(chars))
	index := 0

	for index < len(chars) {
		if unicode.IsSpace(chars[index]) {
			start := index
			for index < len(chars) && unicode.IsSpace(chars[index]) {
				index++
			}
			remove := start > 0 && isHangulSyllable(chars[start-1]) &&
				index < len(chars) && isHangulOrSentencePunct(chars[index])
			if !remove {
				out = append(out, chars[start:index]...)
			}
			continue
		}
		out = append(out, chars[index])
		index++
	}
	return string(out)
}

func startsWithAny(tag string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(tag, prefix) {
			return true
		}
	}
	return false
}

func isSpaceInsertableTarget(tag string) bool {
	return strings.HasPrefix(tag, "N") ||
		strings.HasPrefix(tag, "M") ||
		strings.HasPrefix(tag, "I") ||
		startsWithAny(tag, "VV", "VA", "VX", "VCN", "XR", "XPN", "SW", "SL", "SH", "SN")
}

func isSpaceInsertableTargetStrict(tag string) bool {
	return strings.HasPrefix(tag, "M") ||
		strings.HasPrefix(tag, "I") ||
		startsWithAny(tag, "NP", "NR", "NNG", "NNP", "VV", "VA", "VX", "VCN", "XR", "XPN", "SW", "SH")
}

func isSpaceInsertablePrev(tag string) bool {
	var first byte
	if len(tag) > 0 {
		first = tag[0]
	}
	switch first {
	case 'S', 'U', 'W', 'X':
		return startsWithAny(tag, "XR", "XS", "SE", "SH")
	}
	return true
}

// isAuxiliaryVerbStem reports the auxiliary verb stems that glue to the
// preceding form without a space.
func isAuxiliaryVerbStem(tag, form string) bool {
	return tag == "VX" && (form == "하" || form == "지")
}

func shouldInsertSpaceBetween(prevTag, tag, form string) bool {
	if isAuxiliaryVerbStem(tag, form) {
		return false
	}
	return (isSpaceInsertablePrev(prevTag) && isSpaceInsertableTarget(tag)) ||
		(prevTag == "SN" && isSpaceInsertableTargetStrict(tag)) ||
		(startsWithAny(prevTag, "SF", "SP", "SL") && isSpaceInsertableTargetStrict(tag))
}

func shouldStripGap(prevTag, tag, form string) bool {
	return strings.HasPrefix(tag, "E") ||
		strings.HasPrefix(tag, "J") ||
		strings.HasPrefix(tag, "XS") ||
		isAuxiliaryVerbStem(tag, form) ||
		(prevTag == "SN" && tag == "NNB")
}

// reconstructSpacedText rebuilds raw from its tokens, stripping whitespace
// in front of bound morphemes and inserting spaces at word boundaries the
// analysis exposes.
func reconstructSpacedText(raw string, tokens []Token) string {
	if len(tokens) == 0 {
		return raw
	}

	charToByte := buildCharToByteMap(raw)
	textLen := len(charToByte) - 1
	var out strings.Builder
	last := 0
	prevTag := ""
	havePrev := false

	for index, token := range tokens {
		start := token.Position
		if start > textLen {
			start = textLen
		}
		end := token.Position + token.Length
		if end > textLen {
			end = textLen
		}
		if end < start {
			end = start
		}

		if last < start {
			gap := sliceCharRange(raw, charToByte, last, start)
			if shouldStripGap(prevTag, token.Tag, token.Form) {
				gap = stripAllWhitespace(gap)
			}
			out.WriteString(gap)
			last = start
		}

		if havePrev && shouldInsertSpaceBetween(prevTag, token.Tag, token.Form) {
			current := out.String()
			if current != "" && !endsWithWhitespace(current) {
				out.WriteByte(' ')
			}
		}

		if last < end {
			var tokenText string
			if strings.HasPrefix(token.Tag, "NN") &&
				(index+1 >= len(tokens) || end <= tokens[index+1].Position) {
				tokenText = token.Form
			} else {
				tokenText = stripAllWhitespace(sliceCharRange(raw, charToByte, last, end))
			}
			out.WriteString(tokenText)
		}

		last = end
		prevTag = token.Tag
		havePrev = true
	}

	if last < textLen {
		out.WriteString(sliceCharRange(raw, charToByte, last, textLen))
	}
	return out.String()
}

func endsWithWhitespace(value string) bool {
	runes := []rune(value)
	return len(runes) > 0 && unicode.IsSpace(runes[len(runes)-1])
}

func endsWithASCIIWord(value string) bool {
	runes := []rune(value)
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		r := runes[i]
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return false
}
