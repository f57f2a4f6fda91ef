package line

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/convstore"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/logger"
	"github.com/ahwei/flight-ticket-alarm/internal/render"
	"github.com/ahwei/flight-ticket-alarm/internal/usecase"
)

// Chat texts for search outcomes.
const (
	searchFailedText = "查詢航班時發生問題，請稍後再試 🙏"
	noResultsText    = "找不到符合條件的航班 😢"
)

// Webhook handles POST /api/line/webhook. Signature verification is done by
// the bot client; events are deduplicated through the conversation store so
// LINE redeliveries never advance a flow twice.
type Webhook struct {
	bot           *linebot.Client
	sender        Sender
	conversations usecase.ConversationUseCase
	search        usecase.FlightSearchUseCase
	store         convstore.Store
	log           *logger.Logger
}

// NewWebhook creates the webhook handler. A nil logger disables logging.
func NewWebhook(bot *linebot.Client, sender Sender, conversations usecase.ConversationUseCase, search usecase.FlightSearchUseCase, store convstore.Store, log *logger.Logger) *Webhook {
	if log == nil {
		log = logger.Nop()
	}
	return &Webhook{
		bot:           bot,
		sender:        sender,
		conversations: conversations,
		search:        search,
		store:         store,
		log:           log.WithComponent("line"),
	}
}

// Handle parses and processes one webhook delivery. LINE expects a 200 for
// anything it should not redeliver, so per-event processing failures are
// logged and swallowed; only an unparseable or badly signed request gets a 400.
func (w *Webhook) Handle(c echo.Context) error {
	events, err := w.bot.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			return c.String(http.StatusBadRequest, "invalid signature")
		}
		return c.String(http.StatusBadRequest, "bad request")
	}

	ctx := c.Request().Context()
	for _, event := range events {
		w.handleEvent(ctx, event)
	}

	return c.String(http.StatusOK, "OK")
}

func (w *Webhook) handleEvent(ctx context.Context, event *linebot.Event) {
	if event.Type != linebot.EventTypeMessage {
		return
	}
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		return
	}

	first, err := w.store.MarkEventSeen(ctx, event.WebhookEventID)
	if err != nil {
		w.log.Error().Err(err).Str("event_id", event.WebhookEventID).Msg("Event dedup failed")
	} else if !first {
		w.log.Info().
			Str("event_id", event.WebhookEventID).
			Bool("redelivery", event.DeliveryContext.IsRedelivery).
			Msg("Duplicate event suppressed")
		return
	}

	userID := event.Source.UserID

	action, err := w.conversations.Advance(ctx, userID, message.Text)
	if err != nil {
		w.log.Error().Err(err).Str("user_id", userID).Msg("Conversation failed")
		w.reply(ctx, event.ReplyToken, searchFailedText, nil)
		return
	}

	switch action.Type {
	case usecase.ActionDispatch:
		w.dispatch(ctx, event.ReplyToken, userID, action)
	default:
		w.reply(ctx, event.ReplyToken, action.Text, action.QuickReplies)
	}
}

// dispatch runs the finalized search and renders the reply: a carousel when
// offers decode, a no-results text when none do, and an apology on source
// failure.
func (w *Webhook) dispatch(ctx context.Context, replyToken, userID string, action usecase.Action) {
	result, err := w.search.SearchRequest(ctx, *action.Request)
	if err != nil {
		w.log.Error().Err(err).Str("user_id", userID).Msg("Dispatched search failed")
		w.reply(ctx, replyToken, searchFailedText, nil)
		return
	}

	cards := render.DecodeOffers(result.Offers)
	if len(cards) == 0 {
		w.reply(ctx, replyToken, noResultsText, nil)
		return
	}

	if err := w.sender.ReplyCards(ctx, replyToken, cards); err != nil {
		w.log.Error().Err(err).Str("user_id", userID).Msg("Carousel reply failed")
	}
}

func (w *Webhook) reply(ctx context.Context, replyToken, text string, quickReplies []string) {
	if err := w.sender.ReplyText(ctx, replyToken, text, quickReplies); err != nil {
		w.log.Error().Err(err).Msg("Text reply failed")
	}
}
