package backend

import "testing"

func TestLanguageBucket(t *testing.T) {
	cases := map[string]string{
		"en": "en",
		"fr": "eu",
		"de": "eu",
		"ko": "ko",
		"ja": "global",
		"":   "global",
	}

	for code, want := range cases {
		if got := LanguageBucket(code); got != want {
			t.Errorf("LanguageBucket(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestResolveModelIDDefaults(t *testing.T) {
	for _, tc := range []struct {
		code string
		want string
	}{
		{"en", "ctc-word-en-v1"},
		{"fr", "ctc-word-eu-v1"},
		{"ko", "ctc-word-ko-v1"},
		{"ja", "ctc-word-global-v1"},
	} {
		if got := ResolveModelID(tc.code); got != tc.want {
			t.Errorf("ResolveModelID(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestResolveModelIDBucketEnvOverride(t *testing.T) {
	t.Setenv("VOXALIGN_CTC_MODEL_EN", "custom-en")

	if got := ResolveModelID("en"); got != "custom-en" {
		t.Fatalf("ResolveModelID(en) = %q, want custom-en", got)
	}

	if got := ResolveModelID("fr"); got != "ctc-word-eu-v1" {
		t.Fatalf("ResolveModelID(fr) = %q, want unaffected default", got)
	}
}

func TestResolveModelIDGlobalOverrideWinsOverBucket(t *testing.T) {
	t.Setenv("VOXALIGN_CTC_MODEL_EN", "custom-en")
	t.Setenv("VOXALIGN_CTC_MODEL_ID", "forced-everywhere")

	if got := ResolveModelID("en"); got != "forced-everywhere" {
		t.Fatalf("ResolveModelID(en) = %q, want forced-everywhere", got)
	}

	if got := ResolveModelID("ko"); got != "forced-everywhere" {
		t.Fatalf("ResolveModelID(ko) = %q, want forced-everywhere", got)
	}
}
