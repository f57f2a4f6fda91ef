package line

import (
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ahwei/flight-ticket-alarm/internal/render"
)

const (
	colorMuted = "#888888"
	colorFaint = "#aaaaaa"

	taxIncludedFootnote = "*含稅價"
)

// BuildCarousel converts decoded cards into a flex carousel. The card list
// is already capped and ordered by the renderer.
func BuildCarousel(cards []render.Card) *linebot.CarouselContainer {
	bubbles := make([]*linebot.BubbleContainer, 0, len(cards))
	for _, card := range cards {
		bubbles = append(bubbles, buildBubble(card))
	}
	return &linebot.CarouselContainer{
		Type:     linebot.FlexContainerTypeCarousel,
		Contents: bubbles,
	}
}

// buildBubble lays out one offer card: airline header, ticketing window,
// per-direction segment blocks, then cabin and price lines with the
// tax-included footnote.
func buildBubble(card render.Card) *linebot.BubbleContainer {
	contents := []linebot.FlexComponent{
		&linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   card.AirlineName,
			Weight: linebot.FlexTextWeightTypeBold,
			Size:   linebot.FlexTextSizeTypeXl,
			Wrap:   true,
		},
		&linebot.TextComponent{
			Type:  linebot.FlexComponentTypeText,
			Text:  card.DateRange,
			Size:  linebot.FlexTextSizeTypeSm,
			Color: colorFaint,
		},
	}

	for _, itinerary := range card.Itineraries {
		contents = append(contents, &linebot.SeparatorComponent{
			Type:   linebot.FlexComponentTypeSeparator,
			Margin: linebot.FlexComponentMarginTypeMd,
		})

		if itinerary.Label != "" {
			contents = append(contents, &linebot.TextComponent{
				Type:   linebot.FlexComponentTypeText,
				Text:   itinerary.Label,
				Weight: linebot.FlexTextWeightTypeBold,
				Size:   linebot.FlexTextSizeTypeMd,
				Margin: linebot.FlexComponentMarginTypeMd,
			})
		}

		for _, segment := range itinerary.Segments {
			contents = append(contents,
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   segment.Title,
					Weight: linebot.FlexTextWeightTypeBold,
					Size:   linebot.FlexTextSizeTypeSm,
					Margin: linebot.FlexComponentMarginTypeMd,
					Wrap:   true,
				},
				textLine(segment.Aircraft),
				textLine(segment.Departure),
				textLine(segment.Arrival),
				textLine(segment.FlightTime),
			)
		}
	}

	contents = append(contents,
		&linebot.SeparatorComponent{
			Type:   linebot.FlexComponentTypeSeparator,
			Margin: linebot.FlexComponentMarginTypeMd,
		},
		&linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   card.CabinLine,
			Size:   linebot.FlexTextSizeTypeSm,
			Color:  colorMuted,
			Margin: linebot.FlexComponentMarginTypeMd,
		},
		&linebot.TextComponent{
			Type:   linebot.FlexComponentTypeText,
			Text:   card.PriceLine,
			Weight: linebot.FlexTextWeightTypeBold,
			Size:   linebot.FlexTextSizeTypeMd,
			Margin: linebot.FlexComponentMarginTypeSm,
		},
		&linebot.TextComponent{
			Type:  linebot.FlexComponentTypeText,
			Text:  taxIncludedFootnote,
			Size:  linebot.FlexTextSizeTypeXs,
			Color: colorFaint,
		},
	)

	return &linebot.BubbleContainer{
		Type: linebot.FlexContainerTypeBubble,
		Body: &linebot.BoxComponent{
			Type:     linebot.FlexComponentTypeBox,
			Layout:   linebot.FlexBoxLayoutTypeVertical,
			Spacing:  linebot.FlexComponentSpacingTypeSm,
			Contents: contents,
		},
	}
}

func textLine(text string) *linebot.TextComponent {
	return &linebot.TextComponent{
		Type:  linebot.FlexComponentTypeText,
		Text:  text,
		Size:  linebot.FlexTextSizeTypeSm,
		Color: colorMuted,
		Wrap:  true,
	}
}
