package dialog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hackmir/partsbot/core/logger"
	tghelpers "github.com/hackmir/partsbot/core/telegram/helpers"
	"github.com/hackmir/partsbot/core/telegram/keyboard"
	"github.com/hackmir/partsbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// DirectoryService returns scrapyard records for display. Implementations
// never fail the caller; internal errors degrade to an empty result.
type DirectoryService interface {
	Lookup(ctx context.Context, query string) []domain.Scrapyard
}

// PartsService searches the parts catalog with the same degradation contract.
type PartsService interface {
	Search(ctx context.Context, name string) []domain.Part
}

// SendAPI is the slice of the bot API the notifier needs for out-of-band
// delivery to the administrator.
type SendAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier delivers completed requests to the administrator. Failures are the
// caller's to log; the user has already been acknowledged.
type Notifier interface {
	PartRequest(ctx context.Context, api SendAPI, req *domain.PartRequest) error
	Contact(ctx context.Context, api SendAPI, req *domain.ContactRequest) error
}

// Driver hosts the dialogue engine behind the Telegram transport: it loads the
// session, runs Transition under the per-user lock, and executes the returned
// effects.
type Driver struct {
	store        *Store
	directory    DirectoryService
	parts        PartsService
	notifier     Notifier
	adminContact string
}

// NewDriver wires the dialogue driver with its collaborators.
func NewDriver(store *Store, directory DirectoryService, parts PartsService, notifier Notifier, adminContact string) *Driver {
	return &Driver{
		store:        store,
		directory:    directory,
		parts:        parts,
		notifier:     notifier,
		adminContact: adminContact,
	}
}

// InProgress reports whether the user is inside the wizard.
func (d *Driver) InProgress(userID int64) bool {
	return d.store.InProgress(userID)
}

// ManagerHandler routes an inbound text update through the engine. It serves
// both in-progress wizard steps and idle-state menu selections.
func (d *Driver) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID

	lock := d.store.Lock(userID)
	lock.Lock()
	sess := d.store.GetOrCreate(userID)
	next, fields, effects := Transition(sess.Step, sess.Fields, c.Text())

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "dialog", "fsm.transition",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("from", string(sess.Step)),
		slog.String("to", string(next)),
	)

	sess.Step = next
	sess.Fields = fields
	d.store.Save(sess)
	lock.Unlock()

	return d.execute(c, effects)
}

// Start resets the session and shows the main menu.
func (d *Driver) Start(c tele.Context) error {
	d.store.Clear(c.Sender().ID)
	return d.execute(c, []Effect{{Kind: EffectMenu, Text: TextMenu}})
}

// Cancel aborts the dialogue regardless of state. Reset and menu display are
// one combined message.
func (d *Driver) Cancel(c tele.Context) error {
	d.store.Clear(c.Sender().ID)
	return d.execute(c, []Effect{{Kind: EffectMenu, Text: TextCancelled}})
}

func (d *Driver) execute(c tele.Context, effects []Effect) error {
	ctx := tghelpers.BuildContext(c)
	for _, eff := range effects {
		switch eff.Kind {
		case EffectPrompt:
			if err := tghelpers.SendText(c, eff.Text, &tele.SendOptions{ReplyMarkup: keyboard.ReplyButtons(BackRows()...)}); err != nil {
				return err
			}
		case EffectMenu:
			if err := tghelpers.SendText(c, eff.Text, &tele.SendOptions{ReplyMarkup: keyboard.ReplyButtons(MenuRows()...)}); err != nil {
				return err
			}
		case EffectListDirectory:
			yards := d.directory.Lookup(ctx, "")
			if err := tghelpers.SendMD(c, FormatScrapyards(yards)); err != nil {
				return err
			}
		case EffectSearchParts:
			parts := d.parts.Search(ctx, eff.Query)
			if err := tghelpers.SendMD(c, FormatParts(parts)); err != nil {
				return err
			}
		case EffectContactAdmin:
			d.notifyContact(ctx, c)
			if err := tghelpers.SendText(c, "You can reach the administrator here: "+d.adminContact); err != nil {
				return err
			}
		case EffectNotify:
			d.dispatchRequest(ctx, c, eff.Request)
		}
	}
	return nil
}

// dispatchRequest stamps the requester identity onto the record and hands it
// to the notifier. Delivery failures are logged only: the acknowledgment has
// already been queued for the user.
func (d *Driver) dispatchRequest(ctx context.Context, c tele.Context, req *domain.PartRequest) {
	if req == nil {
		return
	}
	sender := c.Sender()
	req.ID = uuid.NewString()
	req.UserID = sender.ID
	req.Username = sender.Username

	if err := d.notifier.PartRequest(ctx, c.Bot(), req); err != nil {
		logger.Error(ctx, "dialog", "notify.part_request",
			slog.String("status", "fail"),
			slog.Int64("user_id", req.UserID),
			slog.String("request_id", req.ID),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(ctx, "dialog", "notify.part_request",
		slog.String("status", "ok"),
		slog.Int64("user_id", req.UserID),
		slog.String("request_id", req.ID),
	)
}

func (d *Driver) notifyContact(ctx context.Context, c tele.Context) {
	sender := c.Sender()
	req := &domain.ContactRequest{
		UserID:   sender.ID,
		Username: sender.Username,
		Message:  "asked to get in touch",
	}
	if err := d.notifier.Contact(ctx, c.Bot(), req); err != nil {
		logger.Error(ctx, "dialog", "notify.contact",
			slog.String("status", "fail"),
			slog.Int64("user_id", req.UserID),
			slog.String("err", err.Error()),
		)
	}
}
