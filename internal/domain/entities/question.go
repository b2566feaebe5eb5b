package entities

// Question is a single multiple-choice question of a topic.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"` // at least two
	CorrectIndex int      `json:"answer"`  // index into Options
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// ValidOption reports whether idx points at one of the options.
func (q Question) ValidOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

// Topic is a named quiz with its ordered question set.
type Topic struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}
