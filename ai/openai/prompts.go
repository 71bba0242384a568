package openai

import (
	"fmt"

	"github.com/poiesic/souk/core"
)

const judgeResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "related": {
      "type": "boolean"
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "rationale": {
      "type": "string"
    }
  },
  "required": ["related", "confidence", "rationale"],
  "additionalProperties": false
}`

const judgePromptTemplate = `You judge whether a semantic relationship holds between two terms and return the verdict as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

The relationship to judge: %s

Rules:
- "related" is true only when the relationship clearly holds; when in doubt, answer false.
- "confidence" is your certainty from 0.0 (guessing) to 1.0 (certain).
- "rationale" is one short sentence; never more than 20 words.
- Judge the terms as generic concepts, not as brand names or proper nouns, unless the term is unambiguously one.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (implication):
Input: term_a: "smartphone" term_b: "phone"
Output:
{"related": true, "confidence": 0.95, "rationale": "a smartphone is a kind of phone"}

Example (no implication):
Input: term_a: "phone" term_b: "laptop"
Output:
{"related": false, "confidence": 0.9, "rationale": "phones and laptops are distinct device categories"}

Example (antonym):
Input: term_a: "smoker" term_b: "non-smoker"
Output:
{"related": true, "confidence": 0.97, "rationale": "the terms directly negate each other"}`

// relationQuestion phrases the queried relation for the prompt.
func relationQuestion(kind core.RelationKind) string {
	switch kind {
	case core.RelationImplies:
		return `does term_a imply term_b, i.e. is term_a a kind, instance, or specialization of term_b?`
	case core.RelationAntonym:
		return `are term_a and term_b antonyms or direct opposites?`
	case core.RelationExcludes:
		return `does term_a fall under the excluded concept term_b, either directly or as a subtype?`
	}
	return `are term_a and term_b semantically related?`
}

// buildJudgePrompt creates the system prompt for a relation kind.
func buildJudgePrompt(kind core.RelationKind) string {
	return fmt.Sprintf(judgePromptTemplate, judgeResponseSchema, relationQuestion(kind))
}
