package interview

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	lengthPoints    = 40
	keywordPoints   = 40
	structurePoints = 20

	// Awarded when the caller supplies no keywords to check.
	neutralKeywordPoints = 30
)

var structureMarkers = [][]string{
	{"situation", "context", "background"},
	{"task", "goal", "challenge", "responsible"},
	{"action", "i decided", "i implemented", "i led", "i built", "i designed"},
	{"result", "outcome", "impact", "led to", "as a result"},
}

// ScoreAnswer grades an answer on length, keyword coverage and structure.
// The result depends only on in.
func ScoreAnswer(in ScoreInput) (Score, error) {
	if strings.TrimSpace(in.Question) == "" {
		return Score{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Answer) == "" {
		return Score{}, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	}

	out := Score{
		WordCount:       len(strings.Fields(in.Answer)),
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Feedback:        []string{},
	}
	text := normalizeText(in.Answer)

	var total int
	switch {
	case out.WordCount < 20:
		total += 10
		out.Feedback = append(out.Feedback, "The answer is very short. Aim for at least 50 words with a concrete example.")
	case out.WordCount < 50:
		total += 25
		out.Feedback = append(out.Feedback, "Add more detail about what you did and why it mattered.")
	case out.WordCount <= 300:
		total += lengthPoints
	default:
		total += 30
		out.Feedback = append(out.Feedback, "The answer is long. Tighten it to the key points.")
	}

	keywords := uniqueKeywords(in.Keywords)
	if len(keywords) == 0 {
		total += neutralKeywordPoints
	} else {
		for _, kw := range keywords {
			if containsPhrase(text, normalizeText(kw)) {
				out.MatchedKeywords = append(out.MatchedKeywords, kw)
			} else {
				out.MissingKeywords = append(out.MissingKeywords, kw)
			}
		}
		total += keywordPoints * len(out.MatchedKeywords) / len(keywords)
		if len(out.MissingKeywords) > 0 {
			out.Feedback = append(out.Feedback, "Consider mentioning: "+strings.Join(out.MissingKeywords, ", ")+".")
		}
	}

	var groups int
	for _, markers := range structureMarkers {
		for _, m := range markers {
			if containsPhrase(text, m) {
				groups++
				break
			}
		}
	}
	quantified := strings.ContainsFunc(in.Answer, unicode.IsDigit)
	if quantified {
		groups++
	}
	total += structurePoints * groups / (len(structureMarkers) + 1)
	if groups < 3 {
		out.Feedback = append(out.Feedback, "Use the STAR structure: describe the situation and task, then your action and its result.")
	}
	if !quantified {
		out.Feedback = append(out.Feedback, "Quantify the outcome where you can.")
	}

	if total > 100 {
		total = 100
	}
	out.Score = total
	if len(out.Feedback) == 0 {
		out.Feedback = append(out.Feedback, "Strong answer.")
	}
	return out, nil
}

// normalizeText lowercases s and replaces punctuation with spaces, keeping + and #
// so names like C++ and C# survive.
func normalizeText(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '+', r == '#':
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

func containsPhrase(normalized, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	return strings.Contains(normalized, " "+phrase+" ")
}

func uniqueKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}
