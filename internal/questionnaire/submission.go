package questionnaire

// AnswerPair is one (question id, answer value) entry of a submission.
type AnswerPair struct {
	QuestionID int
	Value      int
}

// Submission is the finalized payload for the scoring collaborator.
// The ID is stable across resubmissions of the same questionnaire instance
// so the collaborator can deduplicate.
type Submission struct {
	ID        string
	SessionID string
	SubjectID string
	Attempt   int
	Answers   []AnswerPair
}

// Total sums the submitted answer values.
func (s Submission) Total() int {
	total := 0
	for _, a := range s.Answers {
		total += a.Value
	}
	return total
}

// Value returns the submitted value for a question id.
func (s Submission) Value(questionID int) (int, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return 0, false
}
