package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnswer asks the model to answer a question from retrieved context.
	// The template expects two %s placeholders: the context, then the question.
	PromptAnswer = "answer"
)

// NoContextPlaceholder fills the context slot of the answer prompt when no
// passages were retrieved.
const NoContextPlaceholder = "(no context available)"

// DefaultAnswerPrompt is the built-in answer template. The "Context:" and
// "Question:" labels are also what the offline answerer parses.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultAnswerPrompt = `You are EmotiCare, a warm and supportive mental health companion. Answer the question using only the passages below. Reply in one or two short, kind sentences. If the passages do not help, say so gently and suggest talking to someone they trust.

Context:
%s

Question: %s
Answer:`

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
