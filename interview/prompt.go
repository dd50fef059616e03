package interview

import (
	"strings"

	"github.com/storee/storee"
)

// Prompt composition is deliberately pure and deterministic: the same turn
// history always yields the same request. The full history is sent on every
// call; no truncation happens here, silently or otherwise.

const personaPrompt = `You are an empathetic and skilled interviewer helping someone capture their life memories. Your role is to:

1. Ask thoughtful, open-ended questions that encourage detailed responses
2. Show genuine interest in their experiences and emotions
3. Remember details from previous parts of the conversation
4. Ask follow-up questions based on what they've shared
5. Help them explore deeper aspects of their memories
6. Be conversational and warm, not clinical or robotic
7. Focus on one memory or topic at a time to avoid overwhelming them
8. Capture factual details and specific information

Guidelines:
- Ask one question at a time
- Reference previous details they've shared to show you're listening
- If they mention people, places, or events, ask for more specific details about those
- Help them explore the factual aspects of their memories (who, what, when, where, why, how)
- If they seem to be done with a topic, suggest moving to a related memory or ask about a different time period
- Keep questions natural and conversational
- Avoid yes/no questions - prefer "how", "what", "when", "where", "why" questions
- Focus on getting concrete details and specific information
- Encourage them to share specific facts, dates, names, and descriptions

Your goal is to help them create detailed, factual memories that capture the specific details of what happened. The final summary will be based only on what they actually shared, so focus on getting concrete information rather than emotional interpretations.`

const summaryInstruction = `Based on this conversation, create a factual memory summary using ONLY the details and information the subject actually shared. Do not add any embellishments, assumptions, or creative details. Focus on:

1. The specific memories and experiences they mentioned
2. The exact details, people, places, and dates they provided
3. Their actual words and descriptions
4. The facts they shared about what happened

IMPORTANT:
- Use only information the subject explicitly stated
- Do not make up or infer any details
- Do not add dramatic language or creative flourishes
- Keep it factual and direct
- Write in first person using their actual words when possible

Reply with the factual memory summary only.`

const titleInstruction = `Generate a short, factual title (max 60 characters) for this memory. The title should reflect the specific memory or experience the subject described, using only the details they actually mentioned. Reply with the title only.`

// Generation parameters per mode, matching the character of each task:
// conversational questions get headroom and warmth, summaries get a low
// temperature to stay factual, titles get a tight token budget.
const (
	questionMaxTokens = 200
	summaryMaxTokens  = 300
	titleMaxTokens    = 50
)

var (
	questionTemperature = 0.7
	summaryTemperature  = 0.2
	titleTemperature    = 0.7
)

// ComposeQuestion builds the next-question request: the interviewer persona
// as the system instruction followed by the full turn history.
func ComposeQuestion(turns []storee.Turn) storee.CompletionRequest {
	return storee.CompletionRequest{
		System:      personaPrompt,
		Turns:       turns,
		MaxTokens:   questionMaxTokens,
		Temperature: &questionTemperature,
	}
}

// ComposeSummary builds the summarization request. The conversation is
// rendered as a speaker-labeled transcript inside a single subject turn so
// the gateway treats it as material to summarize, not as a dialogue to join.
func ComposeSummary(turns []storee.Turn) storee.CompletionRequest {
	return storee.CompletionRequest{
		System: summaryInstruction,
		Turns: []storee.Turn{{
			Speaker: storee.SpeakerSubject,
			Text:    "Conversation:\n" + Transcript(turns),
		}},
		MaxTokens:   summaryMaxTokens,
		Temperature: &summaryTemperature,
	}
}

// ComposeTitle builds the title request from subject turns only, so the
// title is grounded in the subject's own words rather than the questions.
func ComposeTitle(subjectTurns []storee.Turn) storee.CompletionRequest {
	texts := make([]string, len(subjectTurns))
	for i, t := range subjectTurns {
		texts[i] = t.Text
	}
	return storee.CompletionRequest{
		System: titleInstruction,
		Turns: []storee.Turn{{
			Speaker: storee.SpeakerSubject,
			Text:    strings.Join(texts, " "),
		}},
		MaxTokens:   titleMaxTokens,
		Temperature: &titleTemperature,
	}
}

// Transcript renders turns as speaker-labeled lines.
func Transcript(turns []storee.Turn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(t.Speaker))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
	}
	return sb.String()
}
