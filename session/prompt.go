package session

import "github.com/tmc/langchaingo/prompts"

const answerTemplate = `Answer the question using only the context below.
If the context contains nothing relevant, say that you don't know.

Context:
{context}

Question: {question}

Answer:`

var answerPrompt = prompts.NewPromptTemplate(answerTemplate, []string{"context", "question"})

func formatAnswerPrompt(contextText, question string) (string, error) {
	return answerPrompt.Format(map[string]any{
		"context":  contextText,
		"question": question,
	})
}
