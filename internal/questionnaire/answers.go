package questionnaire

import "sort"

// Answers maps a question position to its committed severity value.
// A position holds at most one value; setting it again overwrites.
type Answers struct {
	values map[int]int
}

// NewAnswers returns an empty mapping.
func NewAnswers() Answers {
	return Answers{values: make(map[int]int)}
}

// Set commits value at position, replacing any earlier value.
func (a *Answers) Set(position, value int) {
	if a.values == nil {
		a.values = make(map[int]int)
	}
	a.values[position] = value
}

// Get returns the committed value at position.
func (a Answers) Get(position int) (int, bool) {
	v, ok := a.values[position]
	return v, ok
}

// Len returns the number of committed positions.
func (a Answers) Len() int {
	return len(a.values)
}

// Complete reports whether every position 1..n is committed.
func (a Answers) Complete(n int) bool {
	for p := 1; p <= n; p++ {
		if _, ok := a.values[p]; !ok {
			return false
		}
	}
	return true
}

// Total sums all committed values.
func (a Answers) Total() int {
	total := 0
	for _, v := range a.values {
		total += v
	}
	return total
}

// Ordered returns the committed answers sorted by question id.
func (a Answers) Ordered() []AnswerPair {
	out := make([]AnswerPair, 0, len(a.values))
	for p, v := range a.values {
		out = append(out, AnswerPair{QuestionID: p, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	c := NewAnswers()
	for p, v := range a.values {
		c.values[p] = v
	}
	return c
}
