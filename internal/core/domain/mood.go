package domain

import (
	"fmt"
	"strings"
)

// Mood is a feeling the user can pick to tailor tips and suggestions.
type Mood string

// Supported moods.
const (
	MoodSad         Mood = "Sad"
	MoodAnxious     Mood = "Anxious"
	MoodLonely      Mood = "Lonely"
	MoodAngry       Mood = "Angry"
	MoodMotivated   Mood = "Motivated"
	MoodHappy       Mood = "Happy"
	MoodExcited     Mood = "Excited"
	MoodTired       Mood = "Tired"
	MoodBored       Mood = "Bored"
	MoodOverwhelmed Mood = "Overwhelmed"
)

// MaxTipsPerMood caps how many relaxation tips are shown for a mood.
const MaxTipsPerMood = 4

// AllMoods returns the supported moods in display order.
func AllMoods() []Mood {
	return []Mood{
		MoodSad,
		MoodAnxious,
		MoodLonely,
		MoodAngry,
		MoodMotivated,
		MoodHappy,
		MoodExcited,
		MoodTired,
		MoodBored,
		MoodOverwhelmed,
	}
}

// IsValid returns true if the mood is recognised.
func (m Mood) IsValid() bool {
	_, ok := suggestedQuestions[m]
	return ok
}

// String returns the string representation.
func (m Mood) String() string {
	return string(m)
}

// ParseMood resolves a mood name case-insensitively.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	for _, m := range AllMoods() {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
}

// SuggestedQuestions returns the canned questions offered for the mood.
// Unknown moods return nil.
func (m Mood) SuggestedQuestions() []string {
	qs := suggestedQuestions[m]
	if qs == nil {
		return nil
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

var suggestedQuestions = map[Mood][]string{
	MoodSad: {
		"How to cope with sadness?",
		"Why do I feel low even after resting?",
		"How can I cheer up alone?",
		"Is crying okay?",
		"Can journaling help sadness?",
	},
	MoodAnxious: {
		"How can I reduce anxiety?",
		"What are grounding techniques?",
		"Can breathing help anxiety?",
		"How to stop overthinking?",
		"Why does my heart race?",
	},
	MoodLonely: {
		"What should I do when I feel lonely?",
		"How to stay socially connected?",
		"Can self-talk help loneliness?",
		"How to enjoy being alone?",
		"Why do I feel invisible?",
	},
	MoodAngry: {
		"How to calm down when I'm angry?",
		"What helps with emotional control?",
		"Can movement release anger?",
		"Is it okay to feel angry?",
		"Why do I snap suddenly?",
	},
	MoodMotivated: {
		"How can I keep up the motivation?",
		"What are some productive habits?",
		"How to avoid burnout?",
		"Why do I lose focus?",
		"Can rewards boost motivation?",
	},
	MoodHappy: {
		"How to maintain positive energy?",
		"How can I help others feel happy too?",
		"Why is gratitude important?",
		"Can joy be shared?",
		"How to celebrate small wins?",
	},
	MoodExcited: {
		"How to channel excitement?",
		"What to do with sudden bursts of joy?",
		"Can excitement cause anxiety?",
		"How to stay grounded while excited?",
		"Should I share my excitement?",
	},
	MoodTired: {
		"How to feel refreshed quickly?",
		"Does stretching help tiredness?",
		"What are healthy breaks?",
		"Should I nap or move?",
		"Why am I always tired?",
	},
	MoodBored: {
		"What to do when bored?",
		"Can boredom lead to creativity?",
		"How to reset my mind?",
		"Is it okay to feel bored?",
		"What are fun 5-min activities?",
	},
	MoodOverwhelmed: {
		"How to manage overwhelm?",
		"Can deep breathing help stress?",
		"How to break down tasks?",
		"Should I ask for help?",
		"How to slow down my mind?",
	},
}

// Phrases spoken by the assistant.
const (
	WelcomeMessage  = "Welcome to EmotiCare! How are you feeling today?"
	FarewellMessage = "Keep smiling! You will have a great day!"
)
