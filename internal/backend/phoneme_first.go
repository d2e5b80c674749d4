package backend

import (
	"context"
	"os"

	"github.com/example/voxalign/internal/align"
	"github.com/example/voxalign/internal/emission"
	"github.com/example/voxalign/internal/trellis"
)

const (
	defaultPhonemeModelID = "phoneme-ipa-xlsr-v1"

	algoEnglish      = "phoneme-first-en-word-ctc-then-ipa-uniform"
	algoMultilingual = "phoneme-first-multilingual-viterbi"
	algoFallbackWord = "phoneme-first-multilingual-fallback-to-word"
	englishCode      = "en"
)

// PhonemeFirst routes alignment by language: English delegates word
// spans to the ctc_trellis backend and subdivides phonemes uniformly
// within each word's window; every other language runs a real
// phoneme-level Viterbi pass over the whole utterance and derives word
// boundaries by grouping phones back by their owning word. When the
// phoneme pass yields nothing, it falls back to the word backend.
type PhonemeFirst struct {
	Word             *Word
	PhonemeReal      emission.Provider // optional
	PhonemeSimulator emission.Provider // required; must never error
}

// NewPhonemeFirst builds a PhonemeFirst orchestrator.
func NewPhonemeFirst(word *Word, phonemeReal, phonemeSimulator emission.Provider) *PhonemeFirst {
	return &PhonemeFirst{Word: word, PhonemeReal: phonemeReal, PhonemeSimulator: phonemeSimulator}
}

func resolvePhonemeModelID() string {
	if v := os.Getenv("VOXALIGN_PHONEME_MODEL_ID"); v != "" {
		return v
	}

	return defaultPhonemeModelID
}

// AlignWords implements Backend for the phoneme-first orchestrator.
func (pf *PhonemeFirst) AlignWords(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error) {
	if len(tokens) == 0 {
		return align.Result{ModelID: resolvePhonemeModelID(), Algorithm: algoMultilingual}, nil
	}

	if language == englishCode {
		return pf.alignEnglish(ctx, tokens, durationSec, audio, language)
	}

	return pf.alignMultilingual(ctx, tokens, durationSec, audio, language)
}

func (pf *PhonemeFirst) alignEnglish(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error) {
	wordResult, err := pf.Word.AlignWords(ctx, tokens, durationSec, audio, language)
	if err != nil {
		return align.Result{}, err
	}

	phonemes := alignPhonemesWithWordConstraints(wordResult.Words, language)

	return align.Result{
		Words:     wordResult.Words,
		Phonemes:  phonemes,
		ModelID:   wordResult.ModelID + "+" + resolvePhonemeModelID(),
		Algorithm: algoEnglish + "+" + wordResult.Algorithm,
	}, nil
}

func alignPhonemesWithWordConstraints(words []align.WordAlignment, language string) []align.PhonemeAlignment {
	var output []align.PhonemeAlignment

	for wordIndex, w := range words {
		phones := WordToPhonemes(w.Word, language)

		span := w.EndSec - w.StartSec
		if span < 0 {
			span = 0
		}

		step := 0.0
		if span > 0 {
			step = span / float64(len(phones))
		}

		for phoneIndex, phone := range phones {
			start := align.Round3(w.StartSec + step*float64(phoneIndex))
			end := align.Round3(w.StartSec + step*float64(phoneIndex+1))
			if phoneIndex == len(phones)-1 {
				end = w.EndSec
			}

			confidence := w.Confidence - 0.03
			if confidence < 0.6 {
				confidence = 0.6
			}

			output = append(output, align.PhonemeAlignment{
				Phoneme:    phone,
				WordIndex:  wordIndex,
				StartSec:   start,
				EndSec:     end,
				Confidence: align.Round3(confidence),
			})
		}
	}

	return output
}

func (pf *PhonemeFirst) alignMultilingual(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error) {
	var symbols []string

	var wordIndexOf []int

	for wordIndex, tok := range tokens {
		phones := WordToPhonemes(tok, language)
		for _, phone := range phones {
			symbols = append(symbols, phone)
			wordIndexOf = append(wordIndexOf, wordIndex)
		}
	}

	phonemes := pf.decodePhonemes(ctx, symbols, wordIndexOf, durationSec, audio, language)
	if len(phonemes) == 0 {
		return pf.fallbackToWord(ctx, tokens, durationSec, audio, language)
	}

	words := groupWordsFromPhonemes(tokens, phonemes, durationSec)

	return align.Result{Words: words, Phonemes: phonemes, ModelID: resolvePhonemeModelID(), Algorithm: algoMultilingual}, nil
}

func (pf *PhonemeFirst) decodePhonemes(ctx context.Context, symbols []string, wordIndexOf []int, durationSec float64, audio emission.Audio, language string) []align.PhonemeAlignment {
	if len(symbols) == 0 {
		return nil
	}

	pack, err := pf.obtainPhonemePack(ctx, symbols, audio, language)
	if err != nil {
		return nil
	}

	states := trellis.BuildStateSymbols(pack.TokenIDs, pack.BlankID)

	path, err := trellis.Viterbi(pack.Emissions, states)
	if err != nil {
		return nil
	}

	tokenSpans := trellis.TokenSpans(path, len(pack.TokenIDs))

	frameCount := len(pack.Emissions)
	if frameCount < 1 {
		frameCount = 1
	}

	frameSec := 0.0
	if durationSec > 0 {
		frameSec = durationSec / float64(frameCount)
	}

	phonemes := make([]align.PhonemeAlignment, len(symbols))

	for i, phone := range symbols {
		span := pack.WordTokenSpans[i]
		ids := pack.TokenIDs[span.Start:span.End]
		spans := tokenSpans[span.Start:span.End]

		startFrame, endFrame := 0, 0

		for _, s := range spans {
			if s.End <= s.Start {
				continue
			}

			if startFrame == 0 && endFrame == 0 {
				startFrame = s.Start
			}

			endFrame = s.End
		}

		startSec := align.Round3(float64(startFrame) * frameSec)
		endSec := align.Round3(float64(endFrame) * frameSec)
		confidence := align.Round3(phonemeConfidence(pack.Emissions, ids, spans))

		phonemes[i] = align.PhonemeAlignment{
			Phoneme:    phone,
			WordIndex:  wordIndexOf[i],
			StartSec:   startSec,
			EndSec:     endSec,
			Confidence: confidence,
		}
	}

	return phonemes
}

func (pf *PhonemeFirst) obtainPhonemePack(ctx context.Context, symbols []string, audio emission.Audio, language string) (emission.Pack, error) {
	if pf.PhonemeReal != nil {
		if pack, err := pf.PhonemeReal.Encode(ctx, symbols, audio, language); err == nil {
			return pack, nil
		}
	}

	return pf.PhonemeSimulator.Encode(ctx, symbols, audio, language)
}

func phonemeConfidence(emissions [][]float64, tokenIDs []int, spans []trellis.Span) float64 {
	conf := wordConfidence(emissions, tokenIDs, spans)
	if conf < 0.6 {
		return 0.6
	}

	return conf
}

func groupWordsFromPhonemes(tokens []string, phonemes []align.PhonemeAlignment, durationSec float64) []align.WordAlignment {
	byWord := make(map[int][]align.PhonemeAlignment)
	for _, p := range phonemes {
		byWord[p.WordIndex] = append(byWord[p.WordIndex], p)
	}

	words := make([]align.WordAlignment, len(tokens))

	for wordIndex, tok := range tokens {
		group := byWord[wordIndex]

		var start, end, confidence float64
		if len(group) > 0 {
			start = group[0].StartSec
			end = group[len(group)-1].EndSec

			var sum float64
			for _, p := range group {
				sum += p.Confidence
			}

			confidence = align.Round3(sum / float64(len(group)))
		} else {
			confidence = 0.6
		}

		if wordIndex == len(tokens)-1 {
			end = durationSec
		}

		words[wordIndex] = align.WordAlignment{Word: tok, StartSec: start, EndSec: end, Confidence: confidence}
	}

	return words
}

func (pf *PhonemeFirst) fallbackToWord(ctx context.Context, tokens []string, durationSec float64, audio emission.Audio, language string) (align.Result, error) {
	wordResult, err := pf.Word.AlignWords(ctx, tokens, durationSec, audio, language)
	if err != nil {
		return align.Result{}, err
	}

	return align.Result{
		Words:     wordResult.Words,
		ModelID:   resolvePhonemeModelID() + "+" + wordResult.ModelID,
		Algorithm: algoFallbackWord + "+" + wordResult.Algorithm,
	}, nil
}
