package lang

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	genericInvalidRE = regexp.MustCompile(`[^\p{L}\p{N}_\s'\-]`)
	genericSpacesRE  = regexp.MustCompile(`\s+`)
	genericTokenRE   = regexp.MustCompile(`[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)?`)
	genericFolder    = cases.Fold()
)

// GenericPack is the Unicode-wide fallback normalizer: case-fold, map the
// same curly-quote/dash punctuation as English, strip non-word characters
// other than apostrophe and hyphen, and tokenize over Unicode word
// characters.
type GenericPack struct {
	code string
	name string
}

// NewGenericPack constructs a generic pack tagged with the given language
// code and display name.
func NewGenericPack(code, name string) GenericPack {
	return GenericPack{code: code, name: name}
}

func (p GenericPack) Code() string       { return p.code }
func (p GenericPack) Name() string       { return p.name }
func (GenericPack) NormalizerID() string { return "generic-unicode-v1" }

func (GenericPack) Normalize(transcript string) Normalized {
	folded := genericFolder.String(punctuationMap.Replace(transcript))
	stripped := genericInvalidRE.ReplaceAllString(folded, " ")
	stripped = strings.ReplaceAll(stripped, "_", " ")
	collapsed := strings.TrimSpace(genericSpacesRE.ReplaceAllString(stripped, " "))
	tokens := genericTokenRE.FindAllString(collapsed, -1)
	if tokens == nil {
		tokens = []string{}
	}

	return Normalized{Original: transcript, Normalized: collapsed, Tokens: tokens}
}
