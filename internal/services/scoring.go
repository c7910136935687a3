package services

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/nuuxixv/MindConnect/internal/models"
)

// ParseAnswers checks a raw answers object and converts it to question id →
// numeric value. Keys are normalised to their decimal form. Values may be JSON
// numbers or numeric strings; anything else is reported against
// "answers.<key>".
func ParseAnswers(raw map[string]json.RawMessage) (map[string]float64, *ValidationError) {
	verr := &ValidationError{}
	if len(raw) == 0 {
		verr.Add("answers", "must contain at least one answer")
		return nil, verr
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(raw))
	for _, key := range keys {
		field := "answers." + key
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
		if err != nil || id == 0 {
			verr.Add(field, "question id must be a positive integer")
			continue
		}
		canonical := strconv.FormatUint(id, 10)
		if _, dup := out[canonical]; dup {
			verr.Add(field, "duplicate answer for question %s", canonical)
			continue
		}
		v, ok := answerValue(raw[key])
		if !ok {
			verr.Add(field, "must be a number")
			continue
		}
		out[canonical] = v
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func answerValue(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Total is the plain sum of the answer values, added in question id order so
// the result does not depend on map iteration.
func Total(answers map[string]float64) models.Score {
	var total float64
	for _, k := range sortedKeys(answers) {
		total += answers[k]
	}
	return models.Score{Total: total}
}

// sortedKeys orders decimal ids numerically.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if len(keys[a]) != len(keys[b]) {
			return len(keys[a]) < len(keys[b])
		}
		return keys[a] < keys[b]
	})
	return keys
}
