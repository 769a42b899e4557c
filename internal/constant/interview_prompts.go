package constant

import (
	"fmt"
	"strings"

	"ai-interviewer-be/pkg/feedback"
)

// Retrieval queries are fixed per interview mode: they steer the context
// block toward project detail or people/leadership material.
const (
	TechnicalRetrievalQuery   = "projects implementation"
	BehaviouralRetrievalQuery = "team leadership"

	// RetrievalTopK is how many resume chunks ground one generation round.
	RetrievalTopK = 8
)

func exclusionClause(excluded []string) string {
	if len(excluded) == 0 {
		return ""
	}
	return fmt.Sprintf("Do NOT repeat these questions: %s\n", strings.Join(excluded, " | "))
}

// TechnicalQuestionPrompt asks for exactly one technical question,
// excluding everything already generated in this round.
func TechnicalQuestionPrompt(context string, excluded []string) string {
	return fmt.Sprintf(`Generate EXACTLY 1 technical interview question.
%sResume:
%s`, exclusionClause(excluded), context)
}

// BehaviouralQuestionPrompt asks for one STAR-style behavioural question.
func BehaviouralQuestionPrompt(context string, excluded []string) string {
	return fmt.Sprintf(`Generate EXACTLY 1 behavioural interview question using STAR.
%sResume:
%s`, exclusionClause(excluded), context)
}

// ScoresPrompt requests the five-dimension score grid in the closed
// "label: int" format the feedback parser accepts.
func ScoresPrompt(question, answer string) string {
	return fmt.Sprintf(`Analyze the following technical interview question and answer.
Provide scores (1-5) for: %s.

Q: %s
A: %s

Output format:
Concept: <int>
Depth: <int>
Reasoning: <int>
Clarity: <int>
Confidence: <int>`, strings.Join(feedback.ScoreDimensions, ", "), question, answer)
}

// SummaryPrompt requests a short free-text assessment.
func SummaryPrompt(question, answer string) string {
	return fmt.Sprintf("Summarize:\nQ:%s\nA:%s", question, answer)
}

// FlagsPrompt requests zero or more flags from the closed vocabulary.
func FlagsPrompt(question, answer string) string {
	return fmt.Sprintf(`Analyze the answer. If there are issues, output one or more of these flags:
%s

If the answer is acceptable/perfect or just a normal answer, output: NONE

Q: %s
A: %s

Output format:
FLAGS: <comma_separated_flags_or_NONE>`, strings.Join(feedback.AllowedFlags, ", "), question, answer)
}
