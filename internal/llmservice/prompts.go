package llmservice

import (
	"fmt"
	"strings"

	"document-copilot/internal/intent"
)

// buildPrompt assembles a grounded prompt whose instruction and rules vary
// with the detected query intent. Every variant forbids answering from
// outside the provided context.
func buildPrompt(question, context string, it intent.Intent) string {
	var instruction, rules string

	switch it {
	case intent.DocumentSummary:
		instruction = "You are given multiple excerpts from a single research paper. " +
			"Write a concise but complete summary of the paper by synthesizing " +
			"information across all excerpts."
		rules = "- Use ONLY the provided text\n" +
			"- Combine information across sections\n" +
			"- Do NOT say information is missing unless context is irrelevant\n"
	case intent.Section:
		instruction = "Explain and summarize the given section using only the provided text."
		rules = "- Use only the given section\n"
	case intent.Comparison:
		instruction = "Compare the concepts using only the provided text."
		rules = "- Use only the given context\n"
	case intent.Why:
		instruction = "Explain the reason using only the provided text."
		rules = "- Use only the given context\n"
	default:
		instruction = "Answer the question using only the provided text."
		rules = "- If missing, say:\n" +
			"  'The document does not contain enough information to answer this.'"
	}

	prompt := fmt.Sprintf(`%s

Rules:
%s

--------------------
CONTEXT:
%s
--------------------

QUESTION:
%s

ANSWER:`, instruction, rules, context, question)

	return strings.TrimSpace(prompt)
}
