package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/convstore"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/timeutil"
)

const testUser = "U1234"

func newConversation(t *testing.T) (ConversationUseCase, convstore.Store) {
	t.Helper()
	store := convstore.NewMemory(30*time.Minute, timeutil.NewMockClock(testNow))
	return NewConversationUseCase(store, nil), store
}

// advance is a helper that fails the test on unexpected errors.
func advance(t *testing.T, uc ConversationUseCase, text string) Action {
	t.Helper()
	action, err := uc.Advance(context.Background(), testUser, text)
	require.NoError(t, err)
	return action
}

func TestAdvance_TriggerStartsFlow(t *testing.T) {
	uc, store := newConversation(t)

	action := advance(t, uc, "搜尋航班")

	assert.Equal(t, ActionPrompt, action.Type)
	assert.Equal(t, []string{"one-way", "round-trip"}, action.QuickReplies)

	state, found, err := store.Get(context.Background(), testUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.StepTripType, state.Step)
}

func TestAdvance_TriggerResetsExistingFlow(t *testing.T) {
	uc, store := newConversation(t)

	advance(t, uc, "搜尋航班")
	advance(t, uc, "one-way")
	advance(t, uc, "2026-10-01")

	// Mid-flow, the trigger phrase starts over from the first step.
	action := advance(t, uc, "搜尋航班")
	assert.Equal(t, ActionPrompt, action.Type)

	state, found, err := store.Get(context.Background(), testUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.StepTripType, state.Step)
	assert.Empty(t, state.DepartureDate)
}

func TestAdvance_NoStateNonTrigger(t *testing.T) {
	uc, store := newConversation(t)

	action := advance(t, uc, "hello?")

	assert.Equal(t, ActionPrompt, action.Type)
	assert.Contains(t, action.Text, TriggerPhrase)

	_, found, err := store.Get(context.Background(), testUser)
	require.NoError(t, err)
	assert.False(t, found, "a stray message must not create state")
}

func TestAdvance_OneWayHappyPath(t *testing.T) {
	uc, store := newConversation(t)

	advance(t, uc, "搜尋航班")
	advance(t, uc, "ONE-WAY") // case-insensitive
	advance(t, uc, "2026-10-01")
	advance(t, uc, "tpe") // lower case accepted, normalized to upper

	action := advance(t, uc, "NRT")
	assert.Equal(t, ActionDispatch, action.Type)
	require.NotNil(t, action.Request)

	req := *action.Request
	require.Len(t, req.Legs, 1)
	assert.Equal(t, domain.Leg{Date: "2026-10-01", Origin: "TPE", Destination: "NRT"}, req.Legs[0])
	assert.Equal(t, domain.TripOneWay, req.Trip)
	assert.Equal(t, domain.CabinEconomy, req.Cabin)
	assert.Equal(t, domain.DefaultPassengers(), req.Passengers)

	// State is deleted the instant the search is dispatched.
	_, found, err := store.Get(context.Background(), testUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAdvance_RoundTripCollectsReturnDate(t *testing.T) {
	uc, _ := newConversation(t)

	advance(t, uc, "搜尋航班")
	advance(t, uc, "round-trip")
	advance(t, uc, "2026-10-01")
	advance(t, uc, "TPE")

	action := advance(t, uc, "NRT")
	assert.Equal(t, ActionPrompt, action.Type, "round-trip still needs a return date")

	action = advance(t, uc, "2026-10-10")
	assert.Equal(t, ActionDispatch, action.Type)
	require.NotNil(t, action.Request)

	req := *action.Request
	require.Len(t, req.Legs, 2)
	assert.Equal(t, domain.Leg{Date: "2026-10-10", Origin: "NRT", Destination: "TPE"}, req.Legs[1])
}

func TestAdvance_InvalidInputRepromptsWithoutAdvancing(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		input string
		step  domain.Step
	}{
		{
			name:  "bad trip type",
			setup: []string{"搜尋航班"},
			input: "maybe",
			step:  domain.StepTripType,
		},
		{
			name:  "bad departure date",
			setup: []string{"搜尋航班", "one-way"},
			input: "tomorrow",
			step:  domain.StepDepartureDate,
		},
		{
			name:  "bad origin code",
			setup: []string{"搜尋航班", "one-way", "2026-10-01"},
			input: "T1",
			step:  domain.StepOrigin,
		},
		{
			name:  "bad destination code",
			setup: []string{"搜尋航班", "one-way", "2026-10-01", "TPE"},
			input: "Narita",
			step:  domain.StepDestination,
		},
		{
			name:  "bad return date",
			setup: []string{"搜尋航班", "round-trip", "2026-10-01", "TPE", "NRT"},
			input: "10/10",
			step:  domain.StepReturnDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newConversation(t)
			for _, msg := range tt.setup {
				advance(t, uc, msg)
			}

			action := advance(t, uc, tt.input)
			assert.Equal(t, ActionPrompt, action.Type)

			state, found, err := store.Get(context.Background(), testUser)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.step, state.Step, "step must not advance on invalid input")
		})
	}
}

func TestAdvance_UsersAreIndependent(t *testing.T) {
	store := convstore.NewMemory(30*time.Minute, timeutil.NewMockClock(testNow))
	uc := NewConversationUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.Advance(ctx, "U1", "搜尋航班")
	require.NoError(t, err)

	// A second user's message does not touch U1's flow.
	action, err := uc.Advance(ctx, "U2", "one-way")
	require.NoError(t, err)
	assert.Contains(t, action.Text, TriggerPhrase)

	state, found, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.StepTripType, state.Step)
}

func TestAdvance_TrimsWhitespace(t *testing.T) {
	uc, _ := newConversation(t)

	action := advance(t, uc, "  搜尋航班  ")
	assert.Equal(t, ActionPrompt, action.Type)
	assert.Equal(t, []string{"one-way", "round-trip"}, action.QuickReplies)
}
