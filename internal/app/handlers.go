package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hackmir/partsbot/core/logger"
	coretelegram "github.com/hackmir/partsbot/core/telegram"
	"github.com/hackmir/partsbot/core/telegram/callbacks"
	"github.com/hackmir/partsbot/core/telegram/commands"
	tghelpers "github.com/hackmir/partsbot/core/telegram/helpers"
	"github.com/hackmir/partsbot/core/telegram/keyboard"
	"github.com/hackmir/partsbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

const commandTimeout = 5 * time.Second

const (
	usageAddScrapyard    = "Usage: /add_scrapyard name; vehicle type; location; contact"
	usageEditScrapyard   = "Usage: /edit_scrapyard id; name; vehicle type; location; contact"
	usageDeleteScrapyard = "Usage: /delete_scrapyard id"
	usageAddPart         = "Usage: /add_part name; condition; price"
)

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.driver.Start,
		Description: "Show the main menu",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.driver.Cancel,
		Description: "Cancel the current dialogue",
	})
	reg.RegisterCommand("/add_scrapyard", commands.Command{
		Handler:     a.addScrapyard,
		Description: "Add a scrapyard to the directory",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/edit_scrapyard", commands.Command{
		Handler:     a.editScrapyard,
		Description: "Edit a directory record",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/delete_scrapyard", commands.Command{
		Handler:     a.deleteScrapyard,
		Description: "Delete a directory record",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/add_part", commands.Command{
		Handler:     a.addPart,
		Description: "Add a part to the catalog",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/scrapyards", commands.Command{
		Handler:     a.listScrapyards,
		Description: "List directory records with delete buttons",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) {
	_ = reg.RegisterCallback("sy_del", a.deleteScrapyardCallback)
}

// commandArgs splits the command payload on ";" so names may contain spaces.
// It returns false when the argument count does not match.
func commandArgs(c tele.Context, want int) ([]string, bool) {
	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		return nil, false
	}
	parts := strings.Split(payload, ";")
	if len(parts) != want {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func commandContext(c tele.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(tghelpers.BuildContext(c), commandTimeout)
}

func (a *App) addScrapyard(c tele.Context) error {
	args, ok := commandArgs(c, 4)
	if !ok {
		return tghelpers.SendText(c, usageAddScrapyard)
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	id, err := a.yards.Create(ctx, domain.Scrapyard{
		Name:        args[0],
		VehicleType: args[1],
		Location:    args[2],
		Contact:     args[3],
	})
	if err != nil {
		logger.SVCDirectory.Error("scrapyard create failed",
			slog.String("event", "admin.add_scrapyard"),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "Could not add the scrapyard, try again later.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Scrapyard %q added with id %d.", args[0], id))
}

func (a *App) editScrapyard(c tele.Context) error {
	args, ok := commandArgs(c, 5)
	if !ok {
		return tghelpers.SendText(c, usageEditScrapyard)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, usageEditScrapyard)
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	err = a.yards.Update(ctx, domain.Scrapyard{
		ID:          id,
		Name:        args[1],
		VehicleType: args[2],
		Location:    args[3],
		Contact:     args[4],
	})
	if err != nil {
		logger.SVCDirectory.Error("scrapyard update failed",
			slog.String("event", "admin.edit_scrapyard"),
			slog.Int64("scrapyard_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, fmt.Sprintf("Could not update scrapyard %d.", id))
	}
	return tghelpers.SendText(c, fmt.Sprintf("Scrapyard %d updated.", id))
}

func (a *App) deleteScrapyard(c tele.Context) error {
	args, ok := commandArgs(c, 1)
	if !ok {
		return tghelpers.SendText(c, usageDeleteScrapyard)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, usageDeleteScrapyard)
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	if err := a.yards.Delete(ctx, id); err != nil {
		logger.SVCDirectory.Error("scrapyard delete failed",
			slog.String("event", "admin.delete_scrapyard"),
			slog.Int64("scrapyard_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, fmt.Sprintf("Could not delete scrapyard %d.", id))
	}
	return tghelpers.SendText(c, fmt.Sprintf("Scrapyard %d deleted.", id))
}

func (a *App) addPart(c tele.Context) error {
	args, ok := commandArgs(c, 3)
	if !ok {
		return tghelpers.SendText(c, usageAddPart)
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil || price < 0 {
		return tghelpers.SendText(c, usageAddPart)
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	id, err := a.parts.Create(ctx, domain.Part{
		Name:      args[0],
		Condition: args[1],
		Price:     price,
	})
	if err != nil {
		logger.SVCParts.Error("part create failed",
			slog.String("event", "admin.add_part"),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "Could not add the part, try again later.")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Part %q added with id %d.", args[0], id))
}

// listScrapyards shows the directory to the administrator with one inline
// delete button per record.
func (a *App) listScrapyards(c tele.Context) error {
	ctx, cancel := commandContext(c)
	defer cancel()

	yards := a.directory.Lookup(ctx, strings.TrimSpace(c.Message().Payload))
	if len(yards) == 0 {
		return tghelpers.SendText(c, "No scrapyards found.")
	}

	buttons := make([]keyboard.InlineBtn, 0, len(yards))
	for _, y := range yards {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("❌ %s (%d)", y.Name, y.ID),
			Unique: "sy_del",
			Data:   strconv.FormatInt(y.ID, 10),
		})
	}
	return tghelpers.SendText(c, "Directory records:", &tele.SendOptions{
		ReplyMarkup: keyboard.InlineButtonsNPerRow(buttons, 2),
	})
}

func (a *App) deleteScrapyardCallback(c tele.Context) error {
	// The delete buttons are only ever sent to the admin chat, but the
	// callback payload is client-controlled, so gate the sender again.
	if c.Sender().ID != a.cfg.Core.Telegram.AdminID {
		return nil
	}
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return tghelpers.SendText(c, "Broken delete button payload.")
	}

	ctx, cancel := commandContext(c)
	defer cancel()

	if err := a.yards.Delete(ctx, id); err != nil {
		logger.SVCDirectory.Error("scrapyard delete failed",
			slog.String("event", "admin.delete_scrapyard"),
			slog.Int64("scrapyard_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, fmt.Sprintf("Could not delete scrapyard %d.", id))
	}
	return tghelpers.SendText(c, fmt.Sprintf("Scrapyard %d deleted.", id))
}
