package questionnaire

import (
	"errors"
	"fmt"
)

// OptionsPerQuestion is the fixed number of choices for every item.
const OptionsPerQuestion = 4

// MaxOptionValue is the highest severity value an option may carry.
const MaxOptionValue = 3

// Option is one fixed-choice answer with its severity value.
type Option struct {
	Label string
	Value int
}

// Question is a single instrument item. Positions are 1-indexed.
type Question struct {
	Position int
	Prompt   string
	Options  []Option

	// SafetyItem marks the self-harm item that independently triggers
	// emergency guidance.
	SafetyItem bool
}

// HasValue reports whether v is one of the question's option values.
func (q Question) HasValue(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// OptionIndex returns the index of the option with value v, or -1.
func (q Question) OptionIndex(v int) int {
	for i, o := range q.Options {
		if o.Value == v {
			return i
		}
	}
	return -1
}

// Instrument is an ordered set of questions.
type Instrument struct {
	Name      string
	Questions []Question
}

// Len returns the number of questions.
func (in Instrument) Len() int {
	return len(in.Questions)
}

// At returns the question at a 1-indexed position.
func (in Instrument) At(position int) (Question, bool) {
	if position < 1 || position > len(in.Questions) {
		return Question{}, false
	}
	return in.Questions[position-1], true
}

// SafetyPosition returns the position of the safety item, if any.
func (in Instrument) SafetyPosition() (int, bool) {
	for _, q := range in.Questions {
		if q.SafetyItem {
			return q.Position, true
		}
	}
	return 0, false
}

// MaxScore is the highest total the instrument can produce.
func (in Instrument) MaxScore() int {
	total := 0
	for _, q := range in.Questions {
		top := 0
		for _, o := range q.Options {
			if o.Value > top {
				top = o.Value
			}
		}
		total += top
	}
	return total
}

// Validate checks the structural invariants of the instrument.
func (in Instrument) Validate() error {
	if len(in.Questions) == 0 {
		return errors.New("instrument has no questions")
	}
	safety := 0
	for i, q := range in.Questions {
		if q.Position != i+1 {
			return fmt.Errorf("question %d: position %d out of order", i+1, q.Position)
		}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d: %d options, want %d", q.Position, len(q.Options), OptionsPerQuestion)
		}
		for j, o := range q.Options {
			if o.Value < 0 || o.Value > MaxOptionValue {
				return fmt.Errorf("question %d: option value %d outside [0, %d]", q.Position, o.Value, MaxOptionValue)
			}
			if j > 0 && o.Value <= q.Options[j-1].Value {
				return fmt.Errorf("question %d: option values not strictly increasing", q.Position)
			}
		}
		if q.SafetyItem {
			safety++
		}
	}
	if safety > 1 {
		return fmt.Errorf("instrument has %d safety items, want at most 1", safety)
	}
	return nil
}

func q(pos int, prompt string, labels ...string) Question {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Label: l, Value: i}
	}
	return Question{Position: pos, Prompt: prompt, Options: opts}
}

// EPDS returns the ten-item Edinburgh Postnatal Depression Scale as
// presented to the user. Questions cover the past seven days.
func EPDS() Instrument {
	selfHarm := q(10, "The thought of harming myself has occurred to me",
		"Never", "Hardly ever", "Sometimes", "Yes, quite often")
	selfHarm.SafetyItem = true

	return Instrument{
		Name: "EPDS",
		Questions: []Question{
			q(1, "I have been able to laugh and see the funny side of things",
				"As much as I always could", "Not quite so much now", "Definitely not so much now", "Not at all"),
			q(2, "I have looked forward with enjoyment to things",
				"As much as I ever did", "Rather less than I used to", "Definitely less than I used to", "Hardly at all"),
			q(3, "I have blamed myself unnecessarily when things went wrong",
				"No, never", "Not very often", "Yes, some of the time", "Yes, most of the time"),
			q(4, "I have been anxious or worried for no good reason",
				"No, not at all", "Hardly ever", "Yes, sometimes", "Yes, very often"),
			q(5, "I have felt scared or panicky for no good reason",
				"No, not at all", "No, not much", "Yes, sometimes", "Yes, quite a lot"),
			q(6, "Things have been getting on top of me",
				"No, I have been coping as well as ever", "No, most of the time I have coped quite well",
				"Yes, sometimes I haven't been coping as well as usual", "Yes, most of the time I haven't been able to cope"),
			q(7, "I have been so unhappy that I have had difficulty sleeping",
				"No, not at all", "Not very often", "Yes, sometimes", "Yes, most of the time"),
			q(8, "I have felt sad or miserable",
				"No, not at all", "Not very often", "Yes, quite often", "Yes, most of the time"),
			q(9, "I have been so unhappy that I have been crying",
				"No, never", "Only occasionally", "Yes, quite often", "Yes, most of the time"),
			selfHarm,
		},
	}
}
