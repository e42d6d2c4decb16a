package dialog

import (
	"strings"
	"testing"

	"github.com/hackmir/partsbot/internal/domain"
)

func TestFormatScrapyardsEmpty(t *testing.T) {
	if got := FormatScrapyards(nil); got != "No scrapyards found." {
		t.Fatalf("unexpected empty listing: %q", got)
	}
}

func TestFormatScrapyardsEscapesMarkdown(t *testing.T) {
	out := FormatScrapyards([]domain.Scrapyard{
		{Name: "AutoDoc_24", VehicleType: "trucks", Location: "Riga", Contact: "+371 555"},
	})
	if !strings.Contains(out, `AutoDoc\_24`) {
		t.Fatalf("underscore not escaped: %q", out)
	}
	if !strings.Contains(out, "trucks") || !strings.Contains(out, "Riga") {
		t.Fatalf("listing incomplete: %q", out)
	}
	if !strings.Contains(out, "(trucks) - Riga") {
		t.Fatalf("unexpected entry separator: %q", out)
	}
}

func TestFormatPartsListsPrices(t *testing.T) {
	out := FormatParts([]domain.Part{
		{Name: "brake pad", Condition: "new", Price: 25.5},
		{Name: "alternator", Condition: "used", Price: 80},
	})
	if !strings.Contains(out, "brake pad (new): 25.50") {
		t.Fatalf("missing first entry: %q", out)
	}
	if !strings.Contains(out, "alternator (used): 80.00") {
		t.Fatalf("missing second entry: %q", out)
	}
}

func TestFormatPartRequestFallsBackToUserID(t *testing.T) {
	out := FormatPartRequest(&domain.PartRequest{
		ID: "req-1", UserID: 99, Brand: "Toyota", Model: "Camry", Year: 2015, PartName: "brake pad",
	})
	if !strings.Contains(out, "id 99") {
		t.Fatalf("expected user id fallback: %q", out)
	}
	if !strings.Contains(out, "Year: 2015") {
		t.Fatalf("year missing: %q", out)
	}
}
