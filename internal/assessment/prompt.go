package assessment

import (
	"fmt"
	"strings"
)

func QuizPrompt(industry string, skills []string) string {
	var expertise string
	if len(skills) > 0 {
		expertise = " with expertise in " + strings.Join(skills, ", ")
	}
	return fmt.Sprintf(`
    Generate 10 technical interview questions for a %s professional%s.

    Each question should be multiple choice with 4 options.

    Return the response in this JSON format only, no additional text:
    {
      "questions": [
        {
          "question": "string",
          "options": ["string", "string", "string", "string"],
          "correctAnswer": "string",
          "explanation": "string"
        }
      ]
    }
`, industry, expertise)
}

func ImprovementPrompt(industry string, wrong []QuestionResult) string {
	parts := make([]string, len(wrong))
	for i, q := range wrong {
		parts[i] = fmt.Sprintf("Question: %q\nCorrect Answer: %q\nUser Answer: %q", q.Question, q.Answer, q.UserAnswer)
	}
	return fmt.Sprintf(`
      The user got the following %s technical interview questions wrong:

      %s

      Based on these mistakes, provide a concise, specific improvement tip.
      Focus on the knowledge gaps revealed by these wrong answers.
      Keep the response under 2 sentences and make it encouraging.
      Don't explicitly mention the mistakes, instead focus on what to learn/practice.
`, industry, strings.Join(parts, "\n\n"))
}
