package importer

import "lapse/internal/sequence"

// Decision is a selector's verdict on a single sequence.
type Decision int

const (
	// DecisionNo skips the sequence.
	DecisionNo Decision = iota
	// DecisionYes exports the sequence.
	DecisionYes
	// DecisionAll exports the sequence and every remaining one without
	// asking again.
	DecisionAll
	// DecisionQuit skips the sequence and ends the session.
	DecisionQuit
)

// Selector decides per sequence whether it should be exported.
// alreadyImported is true when the catalog has seen the sequence before.
type Selector interface {
	Decide(seq sequence.Sequence, alreadyImported bool) (Decision, error)
}

// AcceptAll approves every sequence without interaction.
type AcceptAll struct{}

// Decide always returns DecisionYes.
func (AcceptAll) Decide(sequence.Sequence, bool) (Decision, error) {
	return DecisionYes, nil
}
