package lang

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	englishNonWordRE = regexp.MustCompile(`[^a-z0-9'\-\s]`)
	englishSpacesRE  = regexp.MustCompile(`\s+`)
	englishTokenRE   = regexp.MustCompile(`[a-z0-9]+(?:['-][a-z0-9]+)?`)
	englishFolder    = cases.Fold()
)

var punctuationMap = strings.NewReplacer(
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
)

// EnglishPack implements the deterministic English normalization rules:
// full Unicode case folding, curly-quote/dash-to-ASCII mapping, stripping
// everything outside [a-z0-9'-\s], and tokenizing words possibly joined
// by an apostrophe or hyphen.
type EnglishPack struct{}

func (EnglishPack) Code() string         { return "en" }
func (EnglishPack) Name() string         { return "English" }
func (EnglishPack) NormalizerID() string { return "english-basic-v1" }

func (EnglishPack) Normalize(transcript string) Normalized {
	folded := englishFolder.String(punctuationMap.Replace(transcript))
	stripped := englishNonWordRE.ReplaceAllString(folded, " ")
	collapsed := strings.TrimSpace(englishSpacesRE.ReplaceAllString(stripped, " "))
	tokens := englishTokenRE.FindAllString(collapsed, -1)
	if tokens == nil {
		tokens = []string{}
	}

	return Normalized{Original: transcript, Normalized: collapsed, Tokens: tokens}
}
