package orchestrator

// IntentKind discriminates user intents entering the orchestrator.
type IntentKind int

const (
	IntentTyped IntentKind = iota
	IntentPreset
	IntentVoice
	IntentSummarize
	IntentSuggest
	IntentRestart
)

// Intent is one user-initiated action that may produce an outbound request.
type Intent struct {
	Kind  IntentKind
	Text  string // typed and preset messages
	Audio []byte // recorded voice payload
}

// TypedMessage is a message typed into the input field.
func TypedMessage(text string) Intent { return Intent{Kind: IntentTyped, Text: text} }

// PresetMessage is a click on one of the preset question buttons.
func PresetMessage(text string) Intent { return Intent{Kind: IntentPreset, Text: text} }

// VoiceMessage is a finalized microphone recording.
func VoiceMessage(audio []byte) Intent { return Intent{Kind: IntentVoice, Audio: audio} }

// Summarize asks for a summary of the conversation so far.
func Summarize() Intent { return Intent{Kind: IntentSummarize} }

// SuggestTopic asks for a conversation-starter suggestion.
func SuggestTopic() Intent { return Intent{Kind: IntentSuggest} }

// Restart resets the whole session.
func Restart() Intent { return Intent{Kind: IntentRestart} }
