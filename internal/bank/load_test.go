package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() map[string]any {
	return map[string]any{
		"meta": map[string]any{
			"title":           "Capital Cities",
			"creator":         "geo team",
			"description":     "Drill on world capitals.",
			"total_questions": 4,
		},
		"questions": []any{
			map[string]any{
				"id":               "q1",
				"type":             "true_false",
				"type_description": "True or false",
				"question":         "Hanoi is the capital of Vietnam.",
				"options": []any{
					map[string]any{"id": "a", "text": "True", "is_correct": true},
					map[string]any{"id": "b", "text": "False", "is_correct": false},
				},
				"explanation": "Hanoi has been the capital since reunification.",
			},
			map[string]any{
				"id":       "q2",
				"type":     "single_choice",
				"question": "Which city is the capital of Australia?",
				"options": []any{
					map[string]any{"id": "a", "text": "Sydney", "is_correct": false},
					map[string]any{"id": "b", "text": "Canberra", "is_correct": true},
					map[string]any{"id": "c", "text": "Melbourne", "is_correct": false},
				},
			},
			map[string]any{
				"id":       "q3",
				"type":     "best_answer",
				"question": "Which factor most often decides where a capital is placed?",
				"options": []any{
					map[string]any{"id": "a", "text": "Climate", "is_correct": false},
					map[string]any{"id": "b", "text": "Political compromise", "is_correct": true},
					map[string]any{"id": "c", "text": "Altitude", "is_correct": false},
				},
			},
			map[string]any{
				"id":          "q4",
				"type":        "fill_blank",
				"question":    "The capital of Vietnam is ____.",
				"answer":      "Hà Nội",
				"explanation": nil,
			},
		},
	}
}

func question(doc map[string]any, i int) map[string]any {
	return doc["questions"].([]any)[i].(map[string]any)
}

func mustJSON(t *testing.T, doc any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestParseValidBank(t *testing.T) {
	b, err := Parse(mustJSON(t, validDoc()))
	require.NoError(t, err)

	assert.Equal(t, "Capital Cities", b.Meta.Title)
	assert.Equal(t, "geo team", b.Meta.Creator)
	assert.Equal(t, 4, b.Meta.TotalQuestions)
	require.Equal(t, 4, b.Len())

	// File order is preserved.
	ids := []string{b.Questions[0].ID, b.Questions[1].ID, b.Questions[2].ID, b.Questions[3].ID}
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, ids)

	q1 := b.Questions[0]
	assert.Equal(t, KindTrueFalse, q1.Kind)
	assert.Equal(t, "True or false", q1.KindLabel)
	assert.Equal(t, []string{"True", "False"}, q1.Options)
	assert.Equal(t, 0, q1.CorrectIndex)
	assert.NotEmpty(t, q1.Explanation)

	// Missing type_description falls back to the kind's own label.
	q2 := b.Questions[1]
	assert.Equal(t, "Single choice", q2.KindLabel)
	assert.Equal(t, 1, q2.CorrectIndex)

	// Free-text answers are kept verbatim, diacritics included.
	q4 := b.Questions[3]
	assert.Equal(t, KindFillBlank, q4.Kind)
	assert.Equal(t, "Hà Nội", q4.Answer)
	assert.Empty(t, q4.Explanation)
	assert.Empty(t, q4.Options)

	counts := b.CountByKind()
	for _, k := range Kinds {
		assert.Equal(t, 1, counts[k], "kind %s", k)
	}
}

func TestParseRejectsDefectiveBanks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc map[string]any)
		defects int
		want    string
	}{
		{
			name: "no option flagged correct",
			mutate: func(doc map[string]any) {
				question(doc, 0)["options"].([]any)[0].(map[string]any)["is_correct"] = false
			},
			defects: 1,
			want:    "no option flagged correct",
		},
		{
			name: "several options flagged correct",
			mutate: func(doc map[string]any) {
				question(doc, 1)["options"].([]any)[0].(map[string]any)["is_correct"] = true
			},
			defects: 1,
			want:    "2 options flagged correct",
		},
		{
			name: "unknown type tag",
			mutate: func(doc map[string]any) {
				question(doc, 2)["type"] = "multi_select"
			},
			defects: 1,
			want:    `unknown type "multi_select"`,
		},
		{
			name: "duplicate id",
			mutate: func(doc map[string]any) {
				question(doc, 1)["id"] = "q1"
			},
			defects: 1,
			want:    "duplicate id",
		},
		{
			name: "fill-in without an answer",
			mutate: func(doc map[string]any) {
				question(doc, 3)["answer"] = "   "
			},
			defects: 1,
			want:    "missing answer",
		},
		{
			name: "fill-in with options",
			mutate: func(doc map[string]any) {
				question(doc, 3)["options"] = []any{
					map[string]any{"id": "a", "text": "Hanoi", "is_correct": true},
				}
			},
			defects: 1,
			want:    "unexpected options",
		},
		{
			name: "choice with stray free-text answer",
			mutate: func(doc map[string]any) {
				question(doc, 0)["answer"] = "True"
			},
			defects: 1,
			want:    "unexpected free-text answer",
		},
		{
			name: "choice without options",
			mutate: func(doc map[string]any) {
				delete(question(doc, 1), "options")
			},
			defects: 1,
			want:    "missing options",
		},
		{
			name: "all defects reported in one pass",
			mutate: func(doc map[string]any) {
				question(doc, 0)["options"].([]any)[1].(map[string]any)["is_correct"] = true
				question(doc, 3)["answer"] = ""
			},
			defects: 2,
			want:    "2 defects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			_, err := Parse(mustJSON(t, doc))
			require.Error(t, err)

			var verr *ErrInvalidBank
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Defects, tt.defects)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{
			name: "missing meta title",
			mutate: func(doc map[string]any) {
				delete(doc["meta"].(map[string]any), "title")
			},
		},
		{
			name: "question without prompt",
			mutate: func(doc map[string]any) {
				delete(question(doc, 0), "question")
			},
		},
		{
			name: "total_questions as string",
			mutate: func(doc map[string]any) {
				doc["meta"].(map[string]any)["total_questions"] = "four"
			},
		},
		{
			name: "option without is_correct",
			mutate: func(doc map[string]any) {
				delete(question(doc, 0)["options"].([]any)[0].(map[string]any), "is_correct")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			_, err := Parse(mustJSON(t, doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseEmptyBank(t *testing.T) {
	doc := validDoc()
	doc["questions"] = []any{}
	_, err := Parse(mustJSON(t, doc))
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestParseFormatVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{name: "same major", version: "1.2.0", wantErr: false},
		{name: "v prefix accepted", version: "v1.0.0", wantErr: false},
		{name: "newer major rejected", version: "2.0.0", wantErr: true},
		{name: "garbage rejected", version: "banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			doc["meta"].(map[string]any)["format_version"] = tt.version
			_, err := Parse(mustJSON(t, doc))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	t.Run("newer major carries its version", func(t *testing.T) {
		doc := validDoc()
		doc["meta"].(map[string]any)["format_version"] = "3.1.4"
		_, err := Parse(mustJSON(t, doc))
		var ferr *ErrUnsupportedFormat
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "3.1.4", ferr.Version)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a bank file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank.json")
		require.NoError(t, os.WriteFile(path, mustJSON(t, validDoc()), 0o644))

		b, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, b.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read bank")
	})
}
