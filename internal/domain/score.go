package domain

import "time"

// AreaScore is the aggregate for one skill area. Tested is false when no
// question of that area was answered; Score is then meaningless and reported as "no data".
type AreaScore struct {
	Area      SkillArea `json:"area"`
	Score     float64   `json:"score"`
	Questions int       `json:"questions"`
	Tested    bool      `json:"tested"`
}

// InterviewScore is the final readiness verdict.
type InterviewScore struct {
	Candidate            string                  `json:"candidate"`
	JobTitle             string                  `json:"job_title"`
	TotalScore           float64                 `json:"total_score"`
	SkillAreaScores      map[SkillArea]AreaScore `json:"skill_area_scores"`
	QuestionScores       []float64               `json:"question_scores"`
	Strengths            []string                `json:"strengths"`
	Weaknesses           []string                `json:"weaknesses"`
	Readiness            Readiness               `json:"readiness_category"`
	HiringReadiness      HiringReadiness         `json:"hiring_readiness_indicator"`
	ActionableFeedback   []string                `json:"actionable_feedback"`
	RoleFit              float64                 `json:"role_fit"`
	TimeManagementScore  float64                 `json:"time_management_score"`
	AdaptabilityScore    float64                 `json:"adaptability_score"`
	TechnicalDepth       float64                 `json:"technical_depth"`
	TechnicalDepthTested bool                    `json:"technical_depth_tested"`
	CommunicationQuality float64                 `json:"communication_quality"`
	CompletionPercentage float64                 `json:"completion_percentage"`
	EarlyTermination     bool                    `json:"early_termination"`
	QuestionsAnswered    int                     `json:"questions_answered"`
	TotalQuestions       int                     `json:"total_questions"`
	CalculatedAt         time.Time               `json:"calculated_at"`
}
