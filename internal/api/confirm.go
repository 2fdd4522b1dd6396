package api

import "context"

// Prompts shown before destructive intents
const (
	PromptDeleteTask  = "Delete this active task permanently?"
	PromptClearHist   = "Permanently clear the history? Every performance metric and history chart will be updated."
	PromptClearActive = "Delete all active tasks? The backlog will be left empty."
	PromptReset       = "Restore the dashboard to the original demo data?"
)

// Confirmer gates irreversible intents. Declining makes the intent a no-op.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// NeverConfirm declines every prompt
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })

// ConfirmIf returns AlwaysConfirm when ok is true and NeverConfirm otherwise
func ConfirmIf(ok bool) Confirmer {
	if ok {
		return AlwaysConfirm
	}
	return NeverConfirm
}
