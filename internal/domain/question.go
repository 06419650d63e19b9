package domain

// Question is one planned interview question. Regeneration produces a new value.
type Question struct {
	ID                string     `json:"id"`
	Text              string     `json:"text"`
	Difficulty        Difficulty `json:"difficulty"`
	SkillArea         SkillArea  `json:"skill_area"`
	Type              string     `json:"type"`
	Topic             string     `json:"topic,omitempty"`
	RelatedTopic      string     `json:"related_topic,omitempty"`
	ExpectedConcepts  []string   `json:"expected_concepts"`
	IdealAnswerPoints []string   `json:"ideal_answer_points"`
	TimeLimit         int        `json:"time_limit"`
	// Position is the zero-based slot of the question in the plan.
	Position int `json:"position"`
	Revision int `json:"revision,omitempty"`
}

// QuestionView is the caller-facing projection of the current question.
type QuestionView struct {
	Number     int        `json:"question_number"`
	Total      int        `json:"total_questions"`
	ID         string     `json:"question_id"`
	Text       string     `json:"question_text"`
	Difficulty Difficulty `json:"difficulty"`
	SkillArea  SkillArea  `json:"skill_area"`
	TimeLimit  int        `json:"time_limit"`
	Type       string     `json:"question_type"`
}

// View projects the question for a plan of the given size.
func (q Question) View(total int) QuestionView {
	return QuestionView{
		Number:     q.Position + 1,
		Total:      total,
		ID:         q.ID,
		Text:       q.Text,
		Difficulty: q.Difficulty,
		SkillArea:  q.SkillArea,
		TimeLimit:  q.TimeLimit,
		Type:       q.Type,
	}
}
