package chat

import (
	"context"
	"errors"
	"testing"

	"elyubot/internal/catalog"
	"elyubot/internal/intent"
	"elyubot/internal/lexicon"
	"elyubot/internal/llm"
	"elyubot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Snapshot{
		Municipalities: []catalog.Town{
			{Name: "Agoo", Description: "Coastal town with busy fish landing sites."},
			{Name: "Bauang", Description: "Grape-growing town along the coast."},
		},
		Products: []catalog.Product{
			{Name: "Milkfish", Description: "Fresh bangus from the coast", Category: "seafood", Town: "Agoo",
				StoreID: "st-fish", PriceRange: "PHP 180-220 per kilo"},
			{Name: "Grapes", Description: "A popular vineyard fruit", Category: "fruit", Town: "Bauang", StoreID: "st-grape"},
		},
		Stores: []catalog.Store{
			{StoreID: "st-fish", Name: "Agoo Fish Market", Town: "Agoo", OperatingHours: "5am-12nn"},
			{StoreID: "st-grape", Name: "Bauang Grape Farm", Town: "Bauang"},
		},
		SignatureProducts: []catalog.SignatureProduct{
			{Town: "Agoo", ProductName: "Milkfish"},
		},
	})
}

func newTestService(opts ...ServiceOption) *Service {
	return NewService(testCatalog(), lexicon.Default(), session.NewMemoryStore(), zap.NewNop(), opts...)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (session.Slots, error) {
	return session.Slots{}, errors.New("store down")
}
func (failingStore) Put(context.Context, string, session.Slots) error { return errors.New("store down") }
func (failingStore) Clear(context.Context, string) error              { return errors.New("store down") }

func TestSendEmptyUtterance(t *testing.T) {
	svc := newTestService()
	got := svc.Send(context.Background(), "c1", "   ")
	assert.Contains(t, got, "Say something")
}

func TestSendGreeting(t *testing.T) {
	svc := newTestService()
	got := svc.Send(context.Background(), "c1", "hello!")
	assert.Contains(t, got, "ElyuBot")
}

// A full conversation: list a town's products, ask a price by local name,
// then chain into the store with a bare pronoun via the remembered slot.
func TestSendConversationFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	got := svc.Send(ctx, "c1", "What products can I find in Agoo?")
	require.Contains(t, got, "In Agoo")
	require.Contains(t, got, "Milkfish")

	got = svc.Send(ctx, "c1", "What is the price of bangus?")
	require.Contains(t, got, "PHP 180-220 per kilo")

	// No product named this turn; the slot from the previous one carries.
	got = svc.Send(ctx, "c1", "Where can I buy it?")
	require.Contains(t, got, "Agoo Fish Market")
}

func TestSendConversationsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Send(ctx, "alpha", "What products can I find in Agoo?")
	svc.Send(ctx, "beta", "What products can I find in Bauang?")

	// Each conversation's follow-up resolves against its own town.
	got := svc.Send(ctx, "alpha", "What products are sold there?")
	assert.Contains(t, got, "Milkfish")

	got = svc.Send(ctx, "beta", "What products are sold there?")
	assert.Contains(t, got, "Grapes")
	assert.NotContains(t, got, "Milkfish")
}

func TestSendSignatureQuery(t *testing.T) {
	svc := newTestService()
	got := svc.Send(context.Background(), "c1", "What is Agoo known for?")
	assert.Equal(t, "Agoo is known for Milkfish.", got)
}

func TestSendSessionFailureYieldsTroubleMessage(t *testing.T) {
	svc := NewService(testCatalog(), lexicon.Default(), failingStore{}, zap.NewNop())
	got := svc.Send(context.Background(), "c1", "What products are in Agoo?")
	assert.Equal(t, troubleText, got)
}

func TestSendGeneralUsesGenerator(t *testing.T) {
	gen := &llm.Mock{Response: "La Union is famous for its surf and local crafts."}
	svc := newTestService(WithGenerator(gen))

	got := svc.Send(context.Background(), "c1", "tell me something about the region")
	assert.Equal(t, gen.Response, got)
	assert.Equal(t, 1, gen.Calls)
}

// Generator failures downgrade to the rule-based answer, never to an error.
func TestSendGeneralGeneratorFailureFallsBack(t *testing.T) {
	gen := &llm.Mock{Err: errors.New("model offline")}
	svc := newTestService(WithGenerator(gen))

	got := svc.Send(context.Background(), "c1", "tell me something about the region")
	assert.Contains(t, got, "local products")
	assert.Equal(t, 1, gen.Calls)
}

// The generator only runs for general chit-chat, not for catalog answers.
func TestSendCatalogTurnsSkipGenerator(t *testing.T) {
	gen := &llm.Mock{Response: "should not appear"}
	svc := newTestService(WithGenerator(gen))

	got := svc.Send(context.Background(), "c1", "What products are in Agoo?")
	assert.Contains(t, got, "In Agoo")
	assert.Zero(t, gen.Calls)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Send(ctx, "c1", "What products can I find in Agoo?")
	svc.Reset(ctx, "c1")

	// With the town slot gone, a bare product question asks for scope.
	got := svc.Send(ctx, "c1", "What products do you have?")
	assert.Contains(t, got, "Which municipality")
}

func TestSendScoredConfidence(t *testing.T) {
	svc := newTestService()

	got := svc.SendScored(context.Background(), "c1", "What products are in Agoo?",
		&intent.Score{Intent: "product_inquiry", Confidence: 0.9})
	require.Contains(t, got, "In Agoo")

	// The same utterance under a collapsed external score falls back to the
	// example menu instead of answering.
	got = svc.SendScored(context.Background(), "c2", "What products are in Agoo?",
		&intent.Score{Intent: "product_inquiry", Confidence: 0.1})
	require.Contains(t, got, "1.")
}
