package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/mock-interviewer/internal/ai"
	"github.com/spigell/mock-interviewer/internal/domain"
	"github.com/spigell/mock-interviewer/internal/logger"
	"github.com/spigell/mock-interviewer/internal/utils"
)

const (
	systemInstruction   = "You are an expert technical interviewer. You grade answers strictly and fairly and always reply with a single JSON object."
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Grader implements ai.Grader on top of a Gemini content generator.
type Grader struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Grader = (*Grader)(nil)

func NewGrader(generator contentGenerator, log *zap.Logger, maxLogLength int) *Grader {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Grader{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (g *Grader) Grade(ctx context.Context, req ai.GradeRequest) (*ai.Grade, error) {
	if strings.TrimSpace(req.Question.Text) == "" {
		return nil, errors.New("question text is required")
	}

	prompt := buildPrompt(req.Question, req.Answer)

	g.logger.Debug("gemini grade request",
		zap.String("question_id", req.Question.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini grade response",
		zap.String("question_id", req.Question.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	grade, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	grade.Raw = raw
	return grade, nil
}

func buildPrompt(q domain.Question, answer string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = "(no answer given)"
	}

	r := strings.NewReplacer(
		"{{QUESTION}}", q.Text,
		"{{SKILL_AREA}}", q.SkillArea.Label(),
		"{{DIFFICULTY}}", q.Difficulty.String(),
		"{{EXPECTED_CONCEPTS}}", bulletList(q.ExpectedConcepts),
		"{{IDEAL_POINTS}}", bulletList(q.IdealAnswerPoints),
		"{{ANSWER}}", answer,
	)
	return r.Replace(promptTemplate)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none listed)"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

type gradePayload struct {
	Accuracy     *float64 `mapstructure:"accuracy_score"`
	Clarity      *float64 `mapstructure:"clarity_score"`
	Depth        *float64 `mapstructure:"depth_score"`
	Relevance    *float64 `mapstructure:"relevance_score"`
	Feedback     string   `mapstructure:"overall_feedback"`
	Strengths    []string `mapstructure:"strengths"`
	Improvements []string `mapstructure:"areas_for_improvement"`
}

func parseResponse(raw string) (*ai.Grade, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, errors.New("gemini response is empty")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	var payload gradePayload
	if err := mapstructure.WeakDecode(data, &payload); err != nil {
		return nil, fmt.Errorf("decode gemini grade: %w", err)
	}

	var missing []string
	scores := map[string]*float64{
		"accuracy_score":  payload.Accuracy,
		"clarity_score":   payload.Clarity,
		"depth_score":     payload.Depth,
		"relevance_score": payload.Relevance,
	}
	for _, key := range []string{"accuracy_score", "clarity_score", "depth_score", "relevance_score"} {
		if scores[key] == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("gemini response is missing %s", strings.Join(missing, ", "))
	}

	return &ai.Grade{
		Accuracy:     domain.ClampScore(*payload.Accuracy),
		Clarity:      domain.ClampScore(*payload.Clarity),
		Depth:        domain.ClampScore(*payload.Depth),
		Relevance:    domain.ClampScore(*payload.Relevance),
		Feedback:     strings.TrimSpace(payload.Feedback),
		Strengths:    payload.Strengths,
		Improvements: payload.Improvements,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
