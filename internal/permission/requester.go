package permission

import "fmt"

// Confirmer asks a yes/no question
type Confirmer interface {
	PromptYesNo(prompt string, defaultYes bool) (bool, error)
}

// PromptRequester asks the user at the terminal
type PromptRequester struct {
	confirm Confirmer
}

// NewPromptRequester creates a requester backed by a yes/no prompt
func NewPromptRequester(c Confirmer) *PromptRequester {
	return &PromptRequester{confirm: c}
}

// Request asks the user whether to allow name
func (r *PromptRequester) Request(name Name) (bool, error) {
	return r.confirm.PromptYesNo(fmt.Sprintf("Allow datasave to use %s?", describe(name)), false)
}

// StaticRequester answers every request with a fixed value
type StaticRequester struct {
	Answer bool
	Calls  int
}

// Request records the call and returns the fixed answer
func (r *StaticRequester) Request(name Name) (bool, error) {
	r.Calls++
	return r.Answer, nil
}

func describe(name Name) string {
	switch name {
	case WriteExternalStorage:
		return "write access to the external documents directory"
	default:
		return string(name)
	}
}
