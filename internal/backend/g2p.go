package backend

import "strings"

var englishLetterIPA = map[rune]string{
	'a': "ae", 'b': "b", 'c': "k", 'd': "d", 'e': "eh",
	'f': "f", 'g': "g", 'h': "h", 'i': "ih", 'j': "jh",
	'k': "k", 'l': "l", 'm': "m", 'n': "n", 'o': "ow",
	'p': "p", 'q': "k", 'r': "r", 's': "s", 't': "t",
	'u': "uw", 'v': "v", 'w': "w", 'x': "ks", 'y': "y",
	'z': "z",
}

// WordToPhonemes expands a surface word into an ordered phoneme
// sequence for the given canonical language code. English uses a
// 26-letter grapheme-to-phoneme table; Korean emits one placeholder
// phone per Hangul syllable; every other language falls back to its
// lowercased ASCII letters and digits, one symbol each. A word that yields no phonemes
// falls back to itself as a single symbol, so callers never have to
// special-case an empty sequence.
func WordToPhonemes(word, languageCode string) []string {
	lower := strings.ToLower(word)

	switch languageCode {
	case "ko":
		if phones := koreanSyllablePhones(lower); len(phones) > 0 {
			return phones
		}

		return []string{word}
	case "en":
		var phones []string

		for _, r := range lower {
			if ipa, ok := englishLetterIPA[r]; ok {
				phones = append(phones, ipa)
			}
		}

		if len(phones) == 0 {
			return []string{word}
		}

		return phones
	default:
		var graphemes []string

		for _, r := range lower {
			if r >= 'a' && r <= 'z' || (r >= '0' && r <= '9') {
				graphemes = append(graphemes, string(r))
			}
		}

		if len(graphemes) == 0 {
			return []string{word}
		}

		return graphemes
	}
}

// koreanSyllablePhones emits one deterministic placeholder phone per
// precomposed Hangul syllable block, pending a real g2pK-equivalent
// mapping.
func koreanSyllablePhones(word string) []string {
	var phones []string

	for _, r := range word {
		if r >= 0xAC00 && r <= 0xD7A3 {
			phones = append(phones, "ko")
		}
	}

	return phones
}
