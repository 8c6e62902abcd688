package openai

import "fmt"

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "main_topic": {"type": "string"},
    "user_goal": {"type": "string"},
    "intent_type": {"type": "string", "enum": ["learn", "solve", "discover", "manage", "entertain"]},
    "key_concepts": {"type": "array", "items": {"type": "string"}},
    "search_focus_terms": {"type": "array", "items": {"type": "string"}},
    "avoid_categories": {"type": "array", "items": {"type": "string"}},
    "semantic_query": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  },
  "required": ["main_topic", "user_goal", "intent_type", "key_concepts", "search_focus_terms", "semantic_query", "confidence"],
  "additionalProperties": false
}`

const intentPromptTemplate = `You interpret a user's free-text request for software applications and return
their intent as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

%s

Rules:
- main_topic names the SPECIFIC domain of the request, not a generic store category.
  Write "plant care", never "lifestyle"; write "expense tracking", never "finance".
- key_concepts lists the concepts driving the request, most relevant first, lowercase, 1-3 words each.
- search_focus_terms lists concrete terms an app listing would use for this need, lowercase.
- avoid_categories lists app categories the user clearly does not want; empty array when none.
- semantic_query is one natural sentence restating the need, suitable for embedding.
- confidence reflects how unambiguous the request is, from 0.0 to 1.0.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "apps to help me relax and sleep at night"
Output:
{
  "main_topic": "sleep improvement",
  "user_goal": "fall asleep more easily and relax in the evening",
  "intent_type": "solve",
  "key_concepts": ["sleep", "relaxation", "bedtime"],
  "search_focus_terms": ["sleep sounds", "meditation", "white noise", "wind down"],
  "avoid_categories": [],
  "semantic_query": "an app that helps me relax in the evening and fall asleep at night",
  "confidence": 0.9
}

Example:
Input: "track my plants watering but nothing social"
Output:
{
  "main_topic": "plant care",
  "user_goal": "remember when to water houseplants",
  "intent_type": "manage",
  "key_concepts": ["plant care", "watering", "reminders"],
  "search_focus_terms": ["watering schedule", "plant tracker", "houseplant"],
  "avoid_categories": ["social"],
  "semantic_query": "an app that tracks my houseplants and reminds me when to water them",
  "confidence": 0.85
}`

const rerankResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "app_id": {"type": "string"},
      "relevance": {"type": "number", "minimum": 0, "maximum": 10},
      "confidence": {"type": "number", "minimum": 0, "maximum": 1},
      "pitch": {"type": "string"},
      "justification": {"type": "string"}
    },
    "required": ["app_id", "relevance", "confidence", "pitch", "justification"],
    "additionalProperties": false
  }
}`

const rerankPromptTemplate = `You judge how well each candidate application serves a user's request and
return one score per candidate as a JSON array.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening bracket [ and
end with the closing bracket ]. Your output must exactly follow this schema:

%s

Rules:
- Score EVERY candidate exactly once, identified by its app_id copied verbatim.
- relevance is 0 (useless for this request) to 10 (exactly what the user asked for).
- confidence is your 0.0-1.0 certainty in the relevance judgment.
- pitch is one personal sentence telling this user why the app fits them; use the user
  context when provided.
- justification briefly states the evidence behind the relevance score.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the array.`

// buildIntentPrompt creates the system prompt for intent analysis.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate, intentResponseSchema)
}

// buildRerankPrompt creates the system prompt for candidate re-scoring.
func buildRerankPrompt() string {
	return fmt.Sprintf(rerankPromptTemplate, rerankResponseSchema)
}
