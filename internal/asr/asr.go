// Package asr implements the automatic-speech-recognition collaborator
// contract: resolving which backend a request routes to, and producing
// a transcript plus detected language when the caller supplies none.
//
// Only a deterministic simulated backend is implemented. Real backends
// (parakeet, parakeet_tdt, crisper_whisper, whisper_large_v3) are named
// in the contract and participate in backend routing and license
// tagging, but would require a Hugging Face runtime outside this
// module's domain dependency set; requesting one yields the simulated
// transcript for that backend whether or not VOXALIGN_ASR_USE_HF is set
// (the variable only adds a debug log line), matching the contract's
// "never panic, always answer" rule.
package asr

import "os"

// BackendName identifies one ASR backend, including the routing
// sentinels "disabled" and "auto".
type BackendName string

const (
	BackendDisabled       BackendName = "disabled"
	BackendAuto           BackendName = "auto"
	BackendParakeet       BackendName = "parakeet"
	BackendParakeetTDT    BackendName = "parakeet_tdt"
	BackendCrisperWhisper BackendName = "crisper_whisper"
	BackendWhisperLargeV3 BackendName = "whisper_large_v3"
)

// Source distinguishes a transcript produced by a real model from one
// produced by the deterministic simulator.
type Source string

const (
	SourceReal      Source = "real"
	SourceSimulated Source = "simulated"
)

const simulatedModelID = "simulated-asr-v1"

// Result is the ASR collaborator's transcription output.
type Result struct {
	Transcript   string
	LanguageCode string
	Backend      BackendName
	ModelID      string
	Source       Source
}

// LicenseWarning reports whether the given backend carries a model
// license a caller should be warned about, and the warning text if so.
// Only crisper_whisper and whisper_large_v3 carry a warning, since they
// wrap models with restrictive or research-only license terms; every
// other backend, including parakeet and parakeet_tdt, is warning-free.
func LicenseWarning(backend BackendName) (string, bool) {
	switch backend {
	case BackendCrisperWhisper:
		return "crisper_whisper wraps a CC BY-NC 4.0 licensed model; verify commercial usage rights before deployment", true
	case BackendWhisperLargeV3:
		return "whisper_large_v3 wraps an MIT-licensed model with usage restrictions in some jurisdictions; review before deployment", true
	default:
		return "", false
	}
}

// europeanParakeetTDTCodes mirrors parakeet_tdt's supported European
// language set for auto-routing.
var europeanParakeetTDTCodes = map[string]bool{
	"bg": true, "ca": true, "cs": true, "cy": true, "da": true,
	"de": true, "el": true, "es": true, "et": true, "eu": true,
	"fi": true, "fr": true, "ga": true, "gl": true, "hr": true,
	"hu": true, "is": true, "it": true, "lt": true, "lv": true,
	"mk": true, "mt": true, "nl": true, "no": true, "pl": true,
	"pt": true, "ro": true, "sq": true, "sr": true, "sk": true,
	"sl": true, "sv": true,
}

func envTruthy(name string, def bool) bool {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	switch raw {
	case "0", "false", "False", "FALSE", "no", "No", "NO", "off", "Off", "OFF":
		return false
	default:
		return true
	}
}
