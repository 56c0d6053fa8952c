package domain

import "time"

// Confidence tells callers whether an answer was grounded in retrieved context.
type Confidence string

const (
	// ConfidenceGrounded marks an answer generated from retrieved passages.
	ConfidenceGrounded Confidence = "grounded"

	// ConfidenceUngrounded marks a fallback answer produced without context.
	ConfidenceUngrounded Confidence = "ungrounded"
)

// Answer is the post-processed reply to a user question.
type Answer struct {
	// Question is the trimmed question that was asked.
	Question string

	// Text is a single line of at most the configured number of characters.
	Text string

	// Passages are the retrieved chunks the answer was conditioned on.
	Passages []ScoredChunk

	// Confidence reports whether retrieval found any context.
	Confidence Confidence
}

// Grounded reports whether the answer was conditioned on retrieved context.
func (a Answer) Grounded() bool {
	return a.Confidence == ConfidenceGrounded
}

// Turn is one question and its answer.
type Turn struct {
	Question string
	Answer   Answer
	AskedAt  time.Time
}

// Conversation is the append-only log of a single session.
// It belongs to the UI layer; the retrieval core only ever sees one question.
type Conversation struct {
	Mood  Mood
	Turns []Turn
}

// Append records a completed turn.
func (c *Conversation) Append(t Turn) {
	c.Turns = append(c.Turns, t)
}

// Len returns the number of turns recorded.
func (c Conversation) Len() int {
	return len(c.Turns)
}

// Last returns the most recent turn, if any.
func (c Conversation) Last() (Turn, bool) {
	if len(c.Turns) == 0 {
		return Turn{}, false
	}
	return c.Turns[len(c.Turns)-1], true
}
