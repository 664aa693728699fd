package kiwi

import "strings"

// tagset.go maps the engine's Sejong-style part-of-speech tags to
// human-readable descriptions and coarse word classes.

var tagDescriptions = map[string]string{
	"NNG": "common noun",
	"NNP": "proper noun",
	"NNB": "bound noun",
	"NR":  "numeral noun",
	"NP":  "pronoun",

	"VV":  "verb",
	"VA":  "adjective",
	"VX":  "auxiliary predicate",
	"VCP": "positive copula",
	"VCN": "negative copula",

	"MM":  "determiner",
	"MAG": "general adverb",
	"MAJ": "conjunctive adverb",
	"IC":  "interjection",

	"JKS": "subject case marker",
	"JKC": "complement case marker",
	"JKG": "adnominal case marker",
	"JKO": "object case marker",
	"JKB": "adverbial case marker",
	"JKV": "vocative case marker",
	"JKQ": "quotative case marker",
	"JX":  "auxiliary particle",
	"JC":  "conjunctive particle",

	"EP":  "pre-final ending",
	"EF":  "final ending",
	"EC":  "connective ending",
	"ETN": "nominalizing ending",
	"ETM": "adnominalizing ending",

	"XPN": "noun prefix",
	"XSN": "noun suffix",
	"XSV": "verb suffix",
	"XSA": "adjective suffix",
	"XSM": "adverb suffix",
	"XR":  "root",

	"SF":  "sentence-final punctuation",
	"SP":  "separator punctuation",
	"SS":  "quote or bracket",
	"SSO": "opening quote or bracket",
	"SSC": "closing quote or bracket",
	"SE":  "ellipsis",
	"SO":  "hyphen or dash",
	"SW":  "other symbol",
	"SB":  "list bullet",

	"SL": "Latin alphabet word",
	"SH": "Chinese character word",
	"SN": "number",

	"UN": "unknown word",

	"W_URL":     "URL",
	"W_EMAIL":   "email address",
	"W_MENTION": "mention",
	"W_HASHTAG": "hashtag",
	"W_SERIAL":  "serial number",

	"Z_CODA": "detached coda",
	"Z_SIOT": "detached saisiot",

	"USER0": "user-defined tag 0",
	"USER1": "user-defined tag 1",
	"USER2": "user-defined tag 2",
	"USER3": "user-defined tag 3",
	"USER4": "user-defined tag 4",
}

// DescribeTag returns a human-readable description of a part-of-speech tag,
// "" when the tag is unknown. A trailing "-" (joiner auto-mode suppression)
// is ignored.
func DescribeTag(tag string) string {
	return tagDescriptions[strings.TrimSuffix(tag, "-")]
}

// IsKnownTag reports whether tag belongs to the engine's tag inventory.
func IsKnownTag(tag string) bool {
	_, ok := tagDescriptions[strings.TrimSuffix(tag, "-")]
	return ok
}

// CoarseClass collapses a tag into one of the engine's coarse word classes:
// noun, verbal, modifier, particle, ending, affix, symbol, foreign, web,
// unknown.
func CoarseClass(tag string) string {
	tag = strings.TrimSuffix(tag, "-")
	switch {
	case tag == "":
		return "unknown"
	case strings.HasPrefix(tag, "W_"):
		return "web"
	case strings.HasPrefix(tag, "Z_"):
		return "affix"
	case strings.HasPrefix(tag, "N"):
		return "noun"
	case strings.HasPrefix(tag, "V"):
		return "verbal"
	case strings.HasPrefix(tag, "M") || tag == "IC":
		return "modifier"
	case strings.HasPrefix(tag, "J"):
		return "particle"
	case strings.HasPrefix(tag, "E"):
		return "ending"
	case strings.HasPrefix(tag, "X"):
		return "affix"
	case tag == "SL" || tag == "SH" || tag == "SN":
		return "foreign"
	case strings.HasPrefix(tag, "S"):
		return "symbol"
	default:
		return "unknown"
	}
}

// TagDescription describes the token's part-of-speech tag, "" for tags the
// inventory does not cover.
func (t Token) TagDescription() string {
	return DescribeTag(t.Tag)
}

// CoarseClass returns the token's coarse word class.
func (t Token) CoarseClass() string {
	return CoarseClass(t.Tag)
}
