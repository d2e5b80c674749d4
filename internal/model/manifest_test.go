package model

import "testing"

func TestPinnedManifestKnownRepos(t *testing.T) {
	for _, repo := range []string{
		"voxalign/ctc-word-en-v1",
		"voxalign/ctc-word-eu-v1",
		"voxalign/ctc-word-ko-v1",
		"voxalign/ctc-word-global-v1",
		"voxalign/phoneme-ipa-xlsr-v1",
	} {
		m, err := PinnedManifest(repo)
		if err != nil {
			t.Fatalf("PinnedManifest(%q): %v", repo, err)
		}

		if m.Repo != repo {
			t.Errorf("Repo = %q, want %q", m.Repo, repo)
		}

		if len(m.Files) == 0 {
			t.Errorf("PinnedManifest(%q) returned no files", repo)
		}
	}
}

func TestPinnedManifestUnknownRepo(t *testing.T) {
	if _, err := PinnedManifest("nonexistent/repo"); err == nil {
		t.Fatal("expected error for unknown repo")
	}
}
