package kiwi

import (
	"fmt"

	"github.com/steosofficial/kiwigo/native"
)

// decodeCandidates drains a native result handle into Go candidates and
// closes the handle. Positions come back from the engine as UTF-16 code
// units and are rebased to character indices against text.
func (k *Kiwi) decodeCandidates(res native.ResultHandle, text string) ([]Candidate, error) {
	defer k.lib.ResClose(res)

	count := k.lib.ResSize(res)
	if count < 0 {
		return nil, k.lib.CallErr("kiwi_res_size", "failed to read the candidate count")
	}

	unitToChar := buildUTF16ToCharMap(text)
	candidates := make([]Candidate, 0, count)
	for i := int32(0); i < count; i++ {
		tokenCount := k.lib.ResWordNum(res, i)
		if tokenCount < 0 {
			return nil, k.lib.CallErr("kiwi_res_word_num", "failed to read the token count")
		}

		tokens := make([]Token, 0, tokenCount)
		for j := int32(0); j < tokenCount; j++ {
			token, err := k.decodeToken(res, i, j, unitToChar)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
		candidates = append(candidates, Candidate{
			Probability: k.lib.ResProb(res, i),
			Tokens:      tokens,
		})
	}
	return candidates, nil
}

func (k *Kiwi) decodeToken(res native.ResultHandle, i, j int32, unitToChar []int) (Token, error) {
	var token Token

	if k.wide && k.lib.ResFormW != nil && k.lib.ResTagW != nil {
		form := k.lib.ResFormW(res, i, j)
		tag := k.lib.ResTagW(res, i, j)
		if form == nil || tag == nil {
			return token, k.lib.CallErr("kiwi_res_form_w", "failed to read a token form")
		}
		token.Form = native.GoUTF16String(form)
		token.Tag = native.GoUTF16String(tag)
	} else {
		form := k.lib.ResForm(res, i, j)
		tag := k.lib.ResTag(res, i, j)
		if form == nil || tag == nil {
			return token, k.lib.CallErr("kiwi_res_form", "failed to read a token form")
		}
		token.Form = native.GoString(form)
		token.Tag = native.GoString(tag)
	}

	if k.lib.ResTokenInfo != nil {
		info := k.lib.ResTokenInfo(res, i, j)
		if info == nil {
			return token, k.lib.CallErr("kiwi_res_token_info", "failed to read token metadata")
		}
		begin := clampIndex(unitToChar, int(info.ChrPosition))
		end := clampIndex(unitToChar, int(info.ChrPosition)+int(info.Length))
		token.Position = begin
		token.Length = end - begin
		token.WordPosition = int(info.WordPosition)
		token.SentPosition = int(info.SentPosition)
		token.LineNumber = int(info.LineNumber)
		token.SubSentPosition = int(info.SubSentPosition)
		token.Score = info.Score
		token.TypoCost = info.TypoCost
		token.TypoFormID = info.TypoFormID
		token.TagID = int(info.Tag)
		token.SenseOrScript = int(info.SenseOrScript)
		token.Dialect = int(info.Dialect)
		if info.PairedToken == native.NoPairedToken {
			token.PairedToken = -1
		} else {
			token.PairedToken = int(info.PairedToken)
		}
	} else {
		position := k.lib.ResPosition(res, i, j)
		length := k.lib.ResLength(res, i, j)
		wordPosition := k.lib.ResWordPosition(res, i, j)
		sentPosition := k.lib.ResSentPosition(res, i, j)
		if position < 0 || length < 0 || wordPosition < 0 || sentPosition < 0 {
			return token, k.lib.CallErr("kiwi_res_position",
				fmt.Sprintf("token %d/%d has negative metadata", i, j))
		}
		begin := clampIndex(unitToChar, int(position))
		end := clampIndex(unitToChar, int(position)+int(length))
		token.Position = begin
		token.Length = end - begin
		token.WordPosition = int(wordPosition)
		token.SentPosition = int(sentPosition)
		token.Score = k.lib.ResScore(res, i, j)
		token.TypoCost = k.lib.ResTypoCost(res, i, j)
		token.PairedToken = -1
		token.TagID = -1
		token.SenseOrScript = -1
		token.Dialect = -1
	}

	token.MorphemeID = -1
	if k.lib.ResMorphemeID != nil {
		if id := k.lib.ResMorphemeID(res, i, j, k.handle); id >= 0 {
			token.MorphemeID = int(id)
		}
	}
	return token, nil
}

func clampIndex(unitToChar []int, unit int) int {
	if unit < 0 {
		return 0
	}
	if unit >= len(unitToChar) {
		if len(unitToChar) == 0 {
			return 0
		}
		return unitToChar[len(unitToChar)-1]
	}
	return unitToChar[unit]
}
