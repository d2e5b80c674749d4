package lang

import "strings"

var europeanCodes = []string{
	"bg", "ca", "cs", "cy", "da", "de", "el", "es", "et", "eu", "fi", "fr",
	"ga", "gl", "hr", "hu", "is", "it", "lt", "lv", "mk", "mt", "nl", "no",
	"pl", "pt", "ro", "sk", "sl", "sq", "sr", "sv",
}

var aliases = map[string]string{
	"auto":  "und",
	"en-us": "en",
	"en-gb": "en",
	"en-ca": "en",
	"en-au": "en",
	"ko-kr": "ko",
}

var registry map[string]Pack

func init() {
	registry = map[string]Pack{
		"en":  EnglishPack{},
		"und": NewGenericPack("und", "Undetermined"),
		"ko":  NewGenericPack("ko", "Korean"),
	}

	for _, code := range europeanCodes {
		registry[code] = NewGenericPack(code, strings.ToUpper(code))
	}
}

// Resolve maps a (case-insensitive) language code to its pack, applying
// known aliases first and falling back to the generic pack — tagged with
// the caller's original code, lowercased — for anything unrecognized.
func Resolve(code string) Pack {
	canonical := strings.ToLower(code)
	if alias, ok := aliases[canonical]; ok {
		canonical = alias
	}

	if pack, ok := registry[canonical]; ok {
		return pack
	}

	return NewGenericPack(canonical, canonical)
}
