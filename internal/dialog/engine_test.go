package dialog

import (
	"testing"

	"github.com/hackmir/partsbot/internal/domain"
)

func TestStartWizardFromIdle(t *testing.T) {
	step, fields, effects := Transition(StepIdle, Fields{}, ButtonFindPart)
	if step != StepBrand {
		t.Fatalf("step = %s, expected %s", step, StepBrand)
	}
	if fields != (Fields{}) {
		t.Fatalf("fields should stay empty, got %+v", fields)
	}
	if len(effects) != 1 || effects[0].Kind != EffectPrompt || effects[0].Text != PromptBrand {
		t.Fatalf("unexpected effects: %+v", effects)
	}
}

func TestIdleIgnoresUnrecognizedInput(t *testing.T) {
	step, fields, effects := Transition(StepIdle, Fields{}, "hello there")
	if step != StepIdle {
		t.Fatalf("step = %s, expected idle", step)
	}
	if fields != (Fields{}) {
		t.Fatalf("fields changed: %+v", fields)
	}
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %+v", effects)
	}
}

func TestYearValidationKeepsState(t *testing.T) {
	in := Fields{Brand: "Toyota", Model: "Camry"}
	step, fields, effects := Transition(StepYear, in, "not-a-year")
	if step != StepYear {
		t.Fatalf("step = %s, expected to stay at %s", step, StepYear)
	}
	if fields != in {
		t.Fatalf("fields changed on invalid input: %+v", fields)
	}
	if len(effects) != 1 || effects[0].Kind != EffectPrompt || effects[0].Text != PromptYearInvalid {
		t.Fatalf("expected validation re-prompt, got %+v", effects)
	}
}

func TestYearAccepted(t *testing.T) {
	step, fields, effects := Transition(StepYear, Fields{Brand: "Toyota", Model: "Camry"}, "2015")
	if step != StepPartName {
		t.Fatalf("step = %s, expected %s", step, StepPartName)
	}
	if fields.Year != 2015 {
		t.Fatalf("year = %d, expected 2015", fields.Year)
	}
	if len(effects) != 1 || effects[0].Text != PromptPartName {
		t.Fatalf("unexpected effects: %+v", effects)
	}
}

func TestHappyPathEmitsExactlyOneNotification(t *testing.T) {
	step := StepIdle
	fields := Fields{}
	inputs := []string{ButtonFindPart, "Toyota", "Camry", "2015", "brake pad"}

	var notifications []*domain.PartRequest
	for _, input := range inputs {
		var effects []Effect
		step, fields, effects = Transition(step, fields, input)
		assertPrefixInvariant(t, step, fields)
		for _, eff := range effects {
			if eff.Kind == EffectNotify {
				notifications = append(notifications, eff.Request)
			}
		}
	}

	if step != StepIdle {
		t.Fatalf("final step = %s, expected idle", step)
	}
	if fields != (Fields{}) {
		t.Fatalf("fields not cleared after submit: %+v", fields)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifications))
	}
	req := notifications[0]
	if req.Brand != "Toyota" || req.Model != "Camry" || req.Year != 2015 || req.PartName != "brake pad" {
		t.Fatalf("unexpected request record: %+v", req)
	}
}

func TestBackDiscardsFields(t *testing.T) {
	step, fields, effects := Transition(StepModel, Fields{Brand: "Toyota"}, ButtonBack)
	if step != StepIdle {
		t.Fatalf("step = %s, expected idle", step)
	}
	if fields != (Fields{}) {
		t.Fatalf("fields preserved after back: %+v", fields)
	}
	if len(effects) != 1 || effects[0].Kind != EffectMenu {
		t.Fatalf("expected menu effect, got %+v", effects)
	}
}

func TestCancelFromAnyState(t *testing.T) {
	states := []struct {
		step   Step
		fields Fields
	}{
		{StepIdle, Fields{}},
		{StepBrand, Fields{}},
		{StepModel, Fields{Brand: "Lada"}},
		{StepYear, Fields{Brand: "Lada", Model: "Niva"}},
		{StepPartName, Fields{Brand: "Lada", Model: "Niva", Year: 1999}},
		{StepSearchQuery, Fields{}},
	}
	for _, st := range states {
		step, fields, effects := Transition(st.step, st.fields, CancelCommand)
		if step != StepIdle {
			t.Fatalf("cancel from %s: step = %s, expected idle", st.step, step)
		}
		if fields != (Fields{}) {
			t.Fatalf("cancel from %s: fields not cleared: %+v", st.step, fields)
		}
		if len(effects) != 1 || effects[0].Kind != EffectMenu || effects[0].Text != TextCancelled {
			t.Fatalf("cancel from %s: expected combined reset-and-menu effect, got %+v", st.step, effects)
		}
	}
}

func TestDirectoryBranchStaysIdle(t *testing.T) {
	step, _, effects := Transition(StepIdle, Fields{}, ButtonScrapyards)
	if step != StepIdle {
		t.Fatalf("step = %s, expected idle", step)
	}
	if len(effects) != 1 || effects[0].Kind != EffectListDirectory {
		t.Fatalf("expected directory effect, got %+v", effects)
	}
}

func TestSearchBranchReturnsToIdle(t *testing.T) {
	step, _, effects := Transition(StepIdle, Fields{}, ButtonSearchParts)
	if step != StepSearchQuery {
		t.Fatalf("step = %s, expected %s", step, StepSearchQuery)
	}
	if len(effects) != 1 || effects[0].Text != PromptSearch {
		t.Fatalf("unexpected effects: %+v", effects)
	}

	step, fields, effects := Transition(StepSearchQuery, Fields{}, "bumper")
	if step != StepIdle {
		t.Fatalf("step after query = %s, expected idle", step)
	}
	if fields != (Fields{}) {
		t.Fatalf("search must not touch wizard fields: %+v", fields)
	}
	if len(effects) != 1 || effects[0].Kind != EffectSearchParts || effects[0].Query != "bumper" {
		t.Fatalf("expected search effect for query, got %+v", effects)
	}
}

// assertPrefixInvariant checks that populated fields are exactly the prefix of
// brand, model, year, part name corresponding to the current wizard position.
func assertPrefixInvariant(t *testing.T, step Step, fields Fields) {
	t.Helper()
	switch step {
	case StepIdle, StepBrand, StepSearchQuery:
		if fields != (Fields{}) {
			t.Fatalf("state %s: expected empty fields, got %+v", step, fields)
		}
	case StepModel:
		if fields.Brand == "" || fields.Model != "" || fields.Year != 0 || fields.PartName != "" {
			t.Fatalf("state %s: expected exactly brand, got %+v", step, fields)
		}
	case StepYear:
		if fields.Brand == "" || fields.Model == "" || fields.Year != 0 || fields.PartName != "" {
			t.Fatalf("state %s: expected brand+model, got %+v", step, fields)
		}
	case StepPartName:
		if fields.Brand == "" || fields.Model == "" || fields.Year == 0 || fields.PartName != "" {
			t.Fatalf("state %s: expected brand+model+year, got %+v", step, fields)
		}
	}
}
