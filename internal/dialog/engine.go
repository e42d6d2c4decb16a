// Package dialog implements the part-request wizard as a finite-state machine.
// Transition is a pure function of (step, fields, input); it returns the next
// step, the updated fields, and a list of declarative effects. Executing the
// effects (sending prompts, dispatching notifications, running lookups) is the
// driver's job, which keeps the engine free of transport dependencies.
package dialog

import (
	"strconv"
	"strings"

	"github.com/hackmir/partsbot/internal/domain"
)

// Step identifies a wizard position for a user.
type Step string

const (
	// StepIdle indicates there is no active conversation with the user.
	StepIdle Step = "idle"
	// StepBrand waits for the vehicle brand.
	StepBrand Step = "brand"
	// StepModel waits for the vehicle model.
	StepModel Step = "model"
	// StepYear waits for the production year.
	StepYear Step = "year"
	// StepPartName waits for the requested part name.
	StepPartName Step = "part_name"
	// StepSearchQuery waits for a free-text part search query.
	StepSearchQuery Step = "search_query"
)

// Reply-keyboard button labels recognized by the engine. ButtonBack is the
// reserved escape token available in every wizard step.
const (
	ButtonFindPart    = "Find a part"
	ButtonSearchParts = "Search parts"
	ButtonScrapyards  = "Scrapyards"
	ButtonContact     = "Contact admin"
	ButtonBack        = "Back"
)

// CancelCommand aborts the dialogue from any state.
const CancelCommand = "/cancel"

// Fields carries the values collected so far. The populated fields are always
// exactly the prefix of brand, model, year, part name corresponding to the
// steps already completed.
type Fields struct {
	Brand    string
	Model    string
	Year     int
	PartName string
}

// EffectKind discriminates Effect variants.
type EffectKind int

const (
	// EffectPrompt asks the user for the next wizard input.
	EffectPrompt EffectKind = iota
	// EffectMenu shows the main menu, optionally preceded by a status line.
	EffectMenu
	// EffectNotify dispatches a completed part request to the administrator.
	EffectNotify
	// EffectListDirectory renders the scrapyard directory.
	EffectListDirectory
	// EffectSearchParts runs a catalog search for Effect.Query.
	EffectSearchParts
	// EffectContactAdmin forwards a contact request to the administrator.
	EffectContactAdmin
)

// Effect is a declarative side effect produced by a transition.
type Effect struct {
	Kind    EffectKind
	Text    string
	Query   string
	Request *domain.PartRequest
}

// Prompts and status lines emitted by the engine.
const (
	PromptBrand       = "Enter the vehicle brand:"
	PromptModel       = "Enter the vehicle model:"
	PromptYear        = "Enter the production year:"
	PromptYearInvalid = "The year must be a number, please try again:"
	PromptPartName    = "Enter the part name:"
	PromptSearch      = "Enter the part name to search for:"
	TextMenu          = "Choose an option:"
	TextCancelled     = "Dialogue ended."
	TextSubmitted     = "Your request has been sent to the administrator."
)

// Transition advances the wizard. It never mutates its arguments and performs
// no I/O; a field is only committed after its validation succeeds.
func Transition(step Step, fields Fields, input string) (Step, Fields, []Effect) {
	input = strings.TrimSpace(input)

	// /cancel wins over everything, including half-typed wizard answers.
	// Cancellation and menu display are a single combined effect so the user
	// gets one message, not two.
	if input == CancelCommand {
		return StepIdle, Fields{}, []Effect{{Kind: EffectMenu, Text: TextCancelled}}
	}

	if step != StepIdle && input == ButtonBack {
		return StepIdle, Fields{}, []Effect{{Kind: EffectMenu, Text: TextMenu}}
	}

	switch step {
	case StepIdle:
		switch input {
		case ButtonFindPart:
			return StepBrand, fields, []Effect{{Kind: EffectPrompt, Text: PromptBrand}}
		case ButtonSearchParts:
			return StepSearchQuery, fields, []Effect{{Kind: EffectPrompt, Text: PromptSearch}}
		case ButtonScrapyards:
			return StepIdle, fields, []Effect{{Kind: EffectListDirectory}}
		case ButtonContact:
			return StepIdle, fields, []Effect{{Kind: EffectContactAdmin}}
		}
		// Unrecognized free text in idle is ignored on purpose.
		return StepIdle, fields, nil

	case StepBrand:
		fields.Brand = input
		return StepModel, fields, []Effect{{Kind: EffectPrompt, Text: PromptModel}}

	case StepModel:
		fields.Model = input
		return StepYear, fields, []Effect{{Kind: EffectPrompt, Text: PromptYear}}

	case StepYear:
		year, err := strconv.Atoi(input)
		if err != nil {
			return StepYear, fields, []Effect{{Kind: EffectPrompt, Text: PromptYearInvalid}}
		}
		fields.Year = year
		return StepPartName, fields, []Effect{{Kind: EffectPrompt, Text: PromptPartName}}

	case StepPartName:
		fields.PartName = input
		req := &domain.PartRequest{
			Brand:    fields.Brand,
			Model:    fields.Model,
			Year:     fields.Year,
			PartName: fields.PartName,
		}
		return StepIdle, Fields{}, []Effect{
			{Kind: EffectNotify, Request: req},
			{Kind: EffectMenu, Text: TextSubmitted},
		}

	case StepSearchQuery:
		return StepIdle, fields, []Effect{{Kind: EffectSearchParts, Query: input}}
	}

	return step, fields, nil
}

// MenuRows returns the main-menu reply keyboard layout.
func MenuRows() [][]string {
	return [][]string{
		{ButtonFindPart, ButtonSearchParts},
		{ButtonScrapyards, ButtonContact},
	}
}

// BackRows returns the in-wizard reply keyboard layout.
func BackRows() [][]string {
	return [][]string{{ButtonBack}}
}
