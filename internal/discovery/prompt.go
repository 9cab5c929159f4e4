package discovery

import (
	"fmt"
	"strings"

	"alcyxob/exercise-discovery/internal/ai"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 3000
)

const systemInstruction = `You are an expert strength and conditioning coach building an exercise library.
Respond with a single JSON object and nothing else. Do not wrap it in markdown.`

const candidateShape = `{
  "exercises": [
    {
      "name": "string",
      "description": "string",
      "category": "strength | power | endurance | balance | mobility | sport_specific",
      "primaryMuscleGroup": "string",
      "secondaryMuscleGroups": ["string"],
      "equipment": "string",
      "difficulty": "beginner | intermediate | advanced | elite",
      "instructions": ["step 1", "step 2"],
      "coachingCues": ["string"],
      "commonMistakes": ["string"],
      "benefits": ["string"],
      "setRepGuidelines": "string",
      "progressions": ["string"],
      "sportApplications": ["string"],
      "safetyNotes": "string"
    }
  ]
}`

// buildRequest renders the completion request for one search term.
func buildRequest(term string, count int, fctx FilterContext, temperature float64, maxTokens int) ai.Request {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find %d distinct, well-established exercises for the search term %q.\n", count, term)
	b.WriteString("Instructions must be ordered steps an athlete can follow in sequence.\n")

	var constraints []string
	if fctx.Sport != "" {
		constraints = append(constraints, fmt.Sprintf("- Every exercise must transfer to %s and list %q in sportApplications.", fctx.Sport, fctx.Sport))
	}
	if fctx.FitnessComponent != "" {
		constraints = append(constraints, fmt.Sprintf("- Focus on developing %s.", fctx.FitnessComponent))
	}
	if fctx.Purpose != "" {
		constraints = append(constraints, fmt.Sprintf("- The training purpose is %s.", strings.ReplaceAll(fctx.Purpose, "_", " ")))
	}
	if len(constraints) > 0 {
		b.WriteString("\nConstraints:\n")
		b.WriteString(strings.Join(constraints, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\nReturn JSON in exactly this shape:\n")
	b.WriteString(candidateShape)

	return ai.Request{
		System:      systemInstruction,
		Prompt:      b.String(),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
