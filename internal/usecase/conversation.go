package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/convstore"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/logger"
)

// TriggerPhrase starts (or restarts) a conversational flight search.
// Matching is a case-insensitive exact match on the trimmed message.
const TriggerPhrase = "搜尋航班"

// Prompts and hints of the conversational flow.
const (
	promptTripType      = "請問要查詢單程還是來回？"
	promptDepartureDate = "請輸入出發日期 (格式 YYYY-MM-DD)"
	promptOrigin        = "請輸入出發機場代碼 (例如 TPE)"
	promptDestination   = "請輸入抵達機場代碼 (例如 NRT)"
	promptReturnDate    = "請輸入回程日期 (格式 YYYY-MM-DD)"
	promptHowToStart    = "輸入「" + TriggerPhrase + "」開始查詢機票 ✈️"

	hintInvalidTripType = "請選擇 one-way 或 round-trip。"
	hintInvalidDate     = "日期格式不正確。"
	hintInvalidAirport  = "機場代碼需為 3 個英文字母。"
)

// tripTypeQuickReplies are offered whenever the trip type is being collected.
var tripTypeQuickReplies = []string{string(domain.TripOneWay), string(domain.TripRoundTrip)}

// ActionType discriminates what the caller should do with an Action.
type ActionType string

// Action types returned by Advance.
const (
	// ActionPrompt asks the user for the next field (or re-asks after
	// invalid input).
	ActionPrompt ActionType = "prompt"

	// ActionDispatch hands the caller a complete SearchRequest to execute.
	ActionDispatch ActionType = "dispatch"
)

// Action is the outcome of one conversation turn.
type Action struct {
	Type         ActionType
	Text         string
	QuickReplies []string

	// Request is set only for ActionDispatch.
	Request *domain.SearchRequest
}

func prompt(text string, quickReplies ...string) Action {
	return Action{Type: ActionPrompt, Text: text, QuickReplies: quickReplies}
}

// ConversationUseCase advances per-user flight search dialogues.
type ConversationUseCase interface {
	// Advance consumes one user message and returns the next action.
	// Dispatch actions leave the user with no stored state; the caller is
	// responsible for running the search and rendering the reply.
	Advance(ctx context.Context, userID, text string) (Action, error)
}

type conversationUseCase struct {
	store convstore.Store
	log   *logger.Logger
}

// NewConversationUseCase creates the conversational state machine on top of
// the given store.
func NewConversationUseCase(store convstore.Store, log *logger.Logger) ConversationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &conversationUseCase{
		store: store,
		log:   log.WithComponent("conversation"),
	}
}

// Advance implements ConversationUseCase.
func (uc *conversationUseCase) Advance(ctx context.Context, userID, text string) (Action, error) {
	message := strings.TrimSpace(text)

	// The trigger phrase always resets the flow, discarding any prior state.
	if strings.EqualFold(message, TriggerPhrase) {
		state := domain.NewConversationState()
		if err := uc.store.Put(ctx, userID, state); err != nil {
			return Action{}, fmt.Errorf("start conversation: %w", err)
		}
		uc.log.Info().Str("user_id", userID).Msg("Conversation started")
		return prompt(promptTripType, tripTypeQuickReplies...), nil
	}

	state, found, err := uc.store.Get(ctx, userID)
	if err != nil {
		return Action{}, fmt.Errorf("load conversation: %w", err)
	}
	if !found {
		// No flow in progress: tell the user how to start, touch nothing.
		return prompt(promptHowToStart), nil
	}

	switch state.Step {
	case domain.StepTripType:
		return uc.collectTripType(ctx, userID, state, message)
	case domain.StepDepartureDate:
		return uc.collectDate(ctx, userID, state, message, domain.StepOrigin, promptOrigin, promptDepartureDate, func(s *domain.ConversationState, v string) { s.DepartureDate = v })
	case domain.StepOrigin:
		return uc.collectAirport(ctx, userID, state, message, domain.StepDestination, promptDestination, promptOrigin, func(s *domain.ConversationState, v string) { s.Origin = v })
	case domain.StepDestination:
		return uc.collectDestination(ctx, userID, state, message)
	case domain.StepReturnDate:
		return uc.collectReturnDate(ctx, userID, state, message)
	default:
		// Unknown step can only come from a stale store entry; restart.
		if err := uc.store.Delete(ctx, userID); err != nil {
			return Action{}, fmt.Errorf("reset conversation: %w", err)
		}
		return prompt(promptHowToStart), nil
	}
}

func (uc *conversationUseCase) collectTripType(ctx context.Context, userID string, state *domain.ConversationState, message string) (Action, error) {
	if !strings.EqualFold(message, string(domain.TripOneWay)) && !strings.EqualFold(message, string(domain.TripRoundTrip)) {
		return prompt(hintInvalidTripType+promptTripType, tripTypeQuickReplies...), nil
	}

	state.Trip = domain.ParseTripType(message)
	state.Step = domain.StepDepartureDate
	if err := uc.store.Put(ctx, userID, state); err != nil {
		return Action{}, fmt.Errorf("save conversation: %w", err)
	}
	return prompt(promptDepartureDate), nil
}

func (uc *conversationUseCase) collectDate(ctx context.Context, userID string, state *domain.ConversationState, message string, next domain.Step, nextPrompt, samePrompt string, assign func(*domain.ConversationState, string)) (Action, error) {
	if !domain.IsValidDate(message) {
		return prompt(hintInvalidDate + samePrompt), nil
	}

	assign(state, message)
	state.Step = next
	if err := uc.store.Put(ctx, userID, state); err != nil {
		return Action{}, fmt.Errorf("save conversation: %w", err)
	}
	return prompt(nextPrompt), nil
}

func (uc *conversationUseCase) collectAirport(ctx context.Context, userID string, state *domain.ConversationState, message string, next domain.Step, nextPrompt, samePrompt string, assign func(*domain.ConversationState, string)) (Action, error) {
	if !domain.IsValidAirportCode(message) {
		return prompt(hintInvalidAirport + samePrompt), nil
	}

	assign(state, strings.ToUpper(message))
	state.Step = next
	if err := uc.store.Put(ctx, userID, state); err != nil {
		return Action{}, fmt.Errorf("save conversation: %w", err)
	}
	return prompt(nextPrompt), nil
}

func (uc *conversationUseCase) collectDestination(ctx context.Context, userID string, state *domain.ConversationState, message string) (Action, error) {
	if !domain.IsValidAirportCode(message) {
		return prompt(hintInvalidAirport + promptDestination), nil
	}
	state.Destination = strings.ToUpper(message)

	// Round-trips still need a return date; one-way flows are complete.
	if state.Trip == domain.TripRoundTrip {
		state.Step = domain.StepReturnDate
		if err := uc.store.Put(ctx, userID, state); err != nil {
			return Action{}, fmt.Errorf("save conversation: %w", err)
		}
		return prompt(promptReturnDate), nil
	}

	return uc.dispatch(ctx, userID, state, "")
}

func (uc *conversationUseCase) collectReturnDate(ctx context.Context, userID string, state *domain.ConversationState, message string) (Action, error) {
	if !domain.IsValidDate(message) {
		return prompt(hintInvalidDate + promptReturnDate), nil
	}
	return uc.dispatch(ctx, userID, state, message)
}

// dispatch finalizes the accumulated state into a SearchRequest and removes
// the user's state. The state is deleted before the request reaches the
// caller, so an abandoned search never leaves a half-open flow behind.
func (uc *conversationUseCase) dispatch(ctx context.Context, userID string, state *domain.ConversationState, returnDate string) (Action, error) {
	req, err := state.Finalize(returnDate)
	if err != nil {
		return Action{}, err
	}

	if err := uc.store.Delete(ctx, userID); err != nil {
		return Action{}, fmt.Errorf("finish conversation: %w", err)
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("origin", req.Legs[0].Origin).
		Str("destination", req.Legs[0].Destination).
		Str("trip", string(req.Trip)).
		Msg("Conversation dispatched search")

	return Action{Type: ActionDispatch, Request: &req}, nil
}
