// Package model holds pinned-version manifests for the CTC acoustic
// models the emission providers load.
package model

import "fmt"

type Manifest struct {
	Repo  string      `json:"repo"`
	Files []ModelFile `json:"files"`
}

type ModelFile struct {
	Filename  string `json:"filename"`
	Revision  string `json:"revision"`
	SHA256    string `json:"sha256"`
	LocalPath string `json:"local_path,omitempty"` // Override local save path (defaults to Filename).
}

// PinnedManifest returns the pinned file set for one of the CTC model
// repos VoxAlign knows how to load. Buckets match the routing in
// internal/backend's language-bucket model resolution.
func PinnedManifest(repo string) (Manifest, error) {
	switch repo {
	case "voxalign/ctc-word-en-v1":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{Filename: "model.onnx", Revision: "main", SHA256: ""},
				{Filename: "tokenizer.model", Revision: "main", SHA256: ""},
			},
		}, nil
	case "voxalign/ctc-word-eu-v1":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{Filename: "model.onnx", Revision: "main", SHA256: ""},
				{Filename: "tokenizer.model", Revision: "main", SHA256: ""},
			},
		}, nil
	case "voxalign/ctc-word-ko-v1":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{Filename: "model.onnx", Revision: "main", SHA256: ""},
				{Filename: "tokenizer.model", Revision: "main", SHA256: ""},
			},
		}, nil
	case "voxalign/ctc-word-global-v1":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{Filename: "model.onnx", Revision: "main", SHA256: ""},
				{Filename: "tokenizer.model", Revision: "main", SHA256: ""},
			},
		}, nil
	case "voxalign/phoneme-ipa-xlsr-v1":
		return Manifest{
			Repo: repo,
			Files: []ModelFile{
				{Filename: "model.onnx", Revision: "main", SHA256: ""},
				{Filename: "phoneme_vocab.model", Revision: "main", SHA256: "", LocalPath: "tokenizer.model"},
			},
		}, nil
	default:
		return Manifest{}, fmt.Errorf("no pinned manifest for repo %q", repo)
	}
}
