// Package line provides the LINE Messaging API adapter: webhook handling for
// inbound chat messages and reply rendering for prompts and offer carousels.
package line

import (
	"context"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ahwei/flight-ticket-alarm/internal/render"
)

// carouselAltText is shown in chat lists and push previews instead of the
// flex content.
const carouselAltText = "航班資訊"

// Sender is the port for outbound LINE replies, so the webhook handler can be
// tested without the Messaging API.
type Sender interface {
	// ReplyText sends a text reply, optionally with quick-reply buttons.
	ReplyText(ctx context.Context, replyToken, text string, quickReplies []string) error

	// ReplyCards sends the offer carousel.
	ReplyCards(ctx context.Context, replyToken string, cards []render.Card) error
}

// BotSender sends replies through the LINE Messaging API.
type BotSender struct {
	client *linebot.Client
}

// NewBotSender creates a Sender backed by the given bot client.
func NewBotSender(client *linebot.Client) *BotSender {
	return &BotSender{client: client}
}

// ReplyText implements Sender.
func (s *BotSender) ReplyText(ctx context.Context, replyToken, text string, quickReplies []string) error {
	message := linebot.NewTextMessage(text)

	if len(quickReplies) > 0 {
		buttons := make([]*linebot.QuickReplyButton, 0, len(quickReplies))
		for _, label := range quickReplies {
			buttons = append(buttons, linebot.NewQuickReplyButton("", linebot.NewMessageAction(label, label)))
		}
		_, err := s.client.ReplyMessage(replyToken, message.WithQuickReplies(linebot.NewQuickReplyItems(buttons...))).WithContext(ctx).Do()
		return err
	}

	_, err := s.client.ReplyMessage(replyToken, message).WithContext(ctx).Do()
	return err
}

// ReplyCards implements Sender.
func (s *BotSender) ReplyCards(ctx context.Context, replyToken string, cards []render.Card) error {
	carousel := BuildCarousel(cards)
	_, err := s.client.ReplyMessage(replyToken, linebot.NewFlexMessage(carouselAltText, carousel)).WithContext(ctx).Do()
	return err
}

var _ Sender = (*BotSender)(nil)
