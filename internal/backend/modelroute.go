package backend

import "os"

var europeanBucket = map[string]bool{
	"fr": true, "de": true, "es": true, "it": true, "pt": true,
	"nl": true, "pl": true, "sv": true, "da": true, "no": true,
	"fi": true, "cs": true, "ro": true, "hu": true, "el": true,
}

// LanguageBucket maps a language code to the CTC model bucket used for
// routing: "en" for English, "eu" for the European pack, "ko" for
// Korean, and "global" for everything else, including an unset code.
func LanguageBucket(code string) string {
	switch code {
	case "":
		return "global"
	case "en":
		return "en"
	case "ko":
		return "ko"
	}

	if europeanBucket[code] {
		return "eu"
	}

	return "global"
}

// ResolveModelID picks the CTC word-model id to load for a language
// code. VOXALIGN_CTC_MODEL_ID, when set, overrides every bucket.
// Otherwise the bucket-specific env var is consulted
// (VOXALIGN_CTC_MODEL_EN/EU/KO/DEFAULT), falling back to a baked-in
// default name per bucket.
func ResolveModelID(code string) string {
	if override := os.Getenv("VOXALIGN_CTC_MODEL_ID"); override != "" {
		return override
	}

	bucket := LanguageBucket(code)

	var envVar, fallback string

	switch bucket {
	case "en":
		envVar, fallback = "VOXALIGN_CTC_MODEL_EN", "ctc-word-en-v1"
	case "eu":
		envVar, fallback = "VOXALIGN_CTC_MODEL_EU", "ctc-word-eu-v1"
	case "ko":
		envVar, fallback = "VOXALIGN_CTC_MODEL_KO", "ctc-word-ko-v1"
	default:
		envVar, fallback = "VOXALIGN_CTC_MODEL_DEFAULT", "ctc-word-global-v1"
	}

	if v := os.Getenv(envVar); v != "" {
		return v
	}

	return fallback
}
