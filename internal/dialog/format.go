package dialog

import (
	"fmt"
	"strings"

	tgformat "github.com/hackmir/partsbot/core/telegram/format"
	"github.com/hackmir/partsbot/internal/domain"
)

// FormatScrapyards renders the directory listing as Markdown.
func FormatScrapyards(yards []domain.Scrapyard) string {
	if len(yards) == 0 {
		return "No scrapyards found."
	}
	var b strings.Builder
	b.WriteString("*Scrapyards:*\n")
	for _, y := range yards {
		fmt.Fprintf(&b, "%s (%s) - %s, %s\n",
			escapeMD(y.Name), escapeMD(y.VehicleType), escapeMD(y.Location), escapeMD(y.Contact))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatParts renders catalog search results as Markdown.
func FormatParts(parts []domain.Part) string {
	if len(parts) == 0 {
		return "No parts found."
	}
	var b strings.Builder
	b.WriteString("*Search results:*\n")
	for _, p := range parts {
		fmt.Fprintf(&b, "%s (%s): %.2f\n", escapeMD(p.Name), escapeMD(p.Condition), p.Price)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPartRequest renders the admin notification text for a completed wizard.
func FormatPartRequest(req *domain.PartRequest) string {
	user := req.Username
	if user == "" {
		user = fmt.Sprintf("id %d", req.UserID)
	} else {
		user = "@" + user
	}
	return fmt.Sprintf("Part request %s from %s:\nBrand: %s\nModel: %s\nYear: %d\nPart: %s",
		req.ID, user, req.Brand, req.Model, req.Year, req.PartName)
}

func escapeMD(s string) string {
	escaped, err := tgformat.EscapeMarkdown(s, tgformat.MarkdownV1, "")
	if err != nil {
		return s
	}
	return escaped
}
