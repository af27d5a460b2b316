package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedFormat is the bank format major version this build reads.
const SupportedFormat = "v1"

type rawOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type rawQuestion struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`
	TypeDescription string      `json:"type_description"`
	Question        string      `json:"question"`
	Answer          *string     `json:"answer"`
	Options         []rawOption `json:"options"`
	Explanation     *string     `json:"explanation"`
}

type rawMeta struct {
	Title          string `json:"title"`
	Creator        string `json:"creator"`
	Description    string `json:"description"`
	TotalQuestions int    `json:"total_questions"`
	FormatVersion  string `json:"format_version"`
}

type rawBank struct {
	Meta      rawMeta       `json:"meta"`
	Questions []rawQuestion `json:"questions"`
}

// Load reads and parses the bank file at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return b, nil
}

// Parse builds a Bank from raw JSON. The document shape is validated
// against the bank schema first; the integrity rules the schema cannot
// express are then checked question by question, with every defect
// collected into a single *ErrInvalidBank so a broken file surfaces all
// of its problems at once.
func Parse(data []byte) (*Bank, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var raw rawBank
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if v := raw.Meta.FormatVersion; v != "" {
		if err := checkFormat(v); err != nil {
			return nil, err
		}
	}

	questions, defects := buildQuestions(raw.Questions)
	if len(defects) > 0 {
		return nil, &ErrInvalidBank{Defects: defects}
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	return &Bank{
		Meta: Meta{
			Title:          raw.Meta.Title,
			Creator:        raw.Meta.Creator,
			Description:    raw.Meta.Description,
			TotalQuestions: raw.Meta.TotalQuestions,
			FormatVersion:  raw.Meta.FormatVersion,
		},
		Questions: questions,
	}, nil
}

// buildQuestions converts raw entries to Questions, preserving file
// order. Entries with defects are reported, never silently repaired: a
// question with zero or several options flagged correct would grade
// wrong answers as right, so the whole bank is rejected instead.
func buildQuestions(raws []rawQuestion) ([]Question, []Defect) {
	var defects []Defect
	seen := make(map[string]int, len(raws))
	questions := make([]Question, 0, len(raws))

	for i, rq := range raws {
		bad := func(format string, args ...any) {
			defects = append(defects, Defect{Index: i, ID: rq.ID, Msg: fmt.Sprintf(format, args...)})
		}

		if prev, dup := seen[rq.ID]; dup {
			bad("duplicate id, already used by entry %d", prev+1)
			continue
		}
		seen[rq.ID] = i

		kind := Kind(rq.Type)
		if !kind.Valid() {
			bad("unknown type %q", rq.Type)
			continue
		}

		q := Question{
			ID:        rq.ID,
			Kind:      kind,
			KindLabel: rq.TypeDescription,
			Prompt:    rq.Question,
		}
		if q.KindLabel == "" {
			q.KindLabel = kind.Label()
		}
		if rq.Explanation != nil {
			q.Explanation = *rq.Explanation
		}

		before := len(defects)
		if kind.Choice() {
			if len(rq.Options) == 0 {
				bad("missing options")
			} else {
				opts := make([]string, len(rq.Options))
				correct, flagged := -1, 0
				for j, opt := range rq.Options {
					opts[j] = opt.Text
					if opt.IsCorrect {
						flagged++
						if correct == -1 {
							correct = j
						}
					}
				}
				switch flagged {
				case 0:
					bad("no option flagged correct")
				case 1:
					q.Options = opts
					q.CorrectIndex = correct
				default:
					bad("%d options flagged correct", flagged)
				}
			}
			if rq.Answer != nil && strings.TrimSpace(*rq.Answer) != "" {
				bad("unexpected free-text answer on a choice question")
			}
		} else {
			if len(rq.Options) > 0 {
				bad("unexpected options on a fill-in question")
			}
			if rq.Answer == nil || strings.TrimSpace(*rq.Answer) == "" {
				bad("missing answer")
			} else {
				q.Answer = *rq.Answer
			}
		}

		if len(defects) == before {
			questions = append(questions, q)
		}
	}

	return questions, defects
}

func checkFormat(v string) error {
	sv := v
	if !strings.HasPrefix(sv, "v") {
		sv = "v" + sv
	}
	if !semver.IsValid(sv) {
		return fmt.Errorf("invalid format_version %q", v)
	}
	if semver.Major(sv) != SupportedFormat {
		return &ErrUnsupportedFormat{Version: v}
	}
	return nil
}
