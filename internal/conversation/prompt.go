package conversation

// Button is one inline choice; Payload round-trips through DecodePayload.
type Button struct {
	Label   string
	Payload string
}

// Prompt is one outbound message. Menu renders as a one-time reply keyboard,
// Buttons as inline keyboard rows; at most one of the two is set.
type Prompt struct {
	Text    string
	Menu    [][]string
	Buttons [][]Button
}

// Sender delivers prompts to a chat. The telebot adapter implements it; tests
// substitute a recorder.
type Sender interface {
	Send(chatID int64, p Prompt) error
}
