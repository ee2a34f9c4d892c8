package llm

import "strings"

// GreetingPhrase opens every rewritten body.
const GreetingPhrase = "Hope all is well."

const rewriteInstructions = `You are an expert business communication editor. Your task is to analyze an email and rewrite its core message.

CRITICAL INSTRUCTIONS:
1. Analyze and Deconstruct: First, silently identify the original email's greeting, core message, and signature.
2. Aggressively Rewrite the Core Message:
   - Your primary goal is to transform the message, not just make minor edits.
   - Drastically shorten sentences and eliminate redundant words to improve conciseness and impact.
   - Use formal, polished business language. Use complete sentences and proper grammar. Do not use contractions.
   - The rewritten body MUST begin with the phrase "` + GreetingPhrase + `"
   - Preserve the original meaning. DO NOT add new information, facts, or sentiments.
3. Use Paragraphs: Keep the original paragraph structure in the rewritten body, separating paragraphs with '\n'.
4. Required JSON Output: Your entire response MUST be a single, valid JSON object with exactly four string keys: "subject", "original_greeting", "rewritten_body", and "original_signature".
   - "subject" is always required: write a short subject line for the rewritten email.
   - If the email has no greeting or no signature, set that key to an empty string. Never omit a key.

---
USER'S EMAIL TEXT TO PROCESS:
`

// BuildRewritePrompt returns the system prompt for emailText. It is a pure
// function of its input.
func BuildRewritePrompt(emailText string) string {
	var b strings.Builder
	b.Grow(len(rewriteInstructions) + len(emailText))
	b.WriteString(rewriteInstructions)
	b.WriteString(emailText)
	return b.String()
}
