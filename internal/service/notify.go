package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hackmir/partsbot/core/logger"
	"github.com/hackmir/partsbot/core/telegram/sender"
	"github.com/hackmir/partsbot/internal/dialog"
	"github.com/hackmir/partsbot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// AdminNotifier delivers completed requests to the configured administrator
// through the asynchronous sender dispatcher. Enqueue failures fall back to a
// direct send so a saturated queue never drops a request silently.
type AdminNotifier struct {
	dispatcher *sender.Dispatcher
	adminID    int64
}

// NewAdminNotifier builds the notifier for the given admin identity.
func NewAdminNotifier(dispatcher *sender.Dispatcher, adminID int64) *AdminNotifier {
	return &AdminNotifier{dispatcher: dispatcher, adminID: adminID}
}

// PartRequest forwards a completed wizard record to the administrator.
func (n *AdminNotifier) PartRequest(ctx context.Context, api dialog.SendAPI, req *domain.PartRequest) error {
	if req == nil {
		return fmt.Errorf("notify: nil part request")
	}
	return n.deliver(ctx, api, "notify.part_request", dialog.FormatPartRequest(req))
}

// Contact forwards a contact request to the administrator.
func (n *AdminNotifier) Contact(ctx context.Context, api dialog.SendAPI, req *domain.ContactRequest) error {
	if req == nil {
		return fmt.Errorf("notify: nil contact request")
	}
	user := req.Username
	if user == "" {
		user = fmt.Sprintf("id %d", req.UserID)
	} else {
		user = "@" + user
	}
	return n.deliver(ctx, api, "notify.contact", fmt.Sprintf("User %s %s.", user, req.Message))
}

func (n *AdminNotifier) deliver(ctx context.Context, api dialog.SendAPI, action, text string) error {
	if n.adminID == 0 {
		return fmt.Errorf("notify: admin id is not configured")
	}
	if api == nil {
		return fmt.Errorf("notify: nil send api")
	}
	recipient := &tele.User{ID: n.adminID}
	run := func() error {
		_, err := api.Send(recipient, text)
		return err
	}

	if n.dispatcher != nil {
		err := n.dispatcher.Enqueue(ctx, action, "sendMessage", run)
		if err == nil {
			return nil
		}
		logger.SVCRequests.Warn("notify queue fallback",
			slog.String("event", action),
			slog.String("err", err.Error()),
		)
	}
	return run()
}
