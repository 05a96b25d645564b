package chat

import (
	"context"
	"testing"

	"elyubot/internal/catalog"
	"elyubot/internal/intent"
	"elyubot/internal/lexicon"
	"elyubot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scenarioService builds a service over a minimal, purpose-built catalog.
func scenarioService() *Service {
	cat := catalog.New(catalog.Snapshot{
		Municipalities: []catalog.Town{
			{Name: "San Fernando", Description: "Capital city of La Union."},
			{Name: "Naguilian", Description: "Basi capital of the province."},
			{Name: "Agoo", Description: "Coastal town in the south."},
		},
		Products: []catalog.Product{
			{Name: "Ube Wine", Description: "Sweet purple-yam wine", Category: "beverage", Town: "San Fernando", StoreID: "st-pasalubong"},
			{Name: "Basi", Description: "Fermented sugarcane wine", Category: "beverage", Town: "Naguilian", StoreID: "st-basi"},
			{Name: "Oyster Mushroom", Description: "Freshly grown mushrooms", Category: "produce", Town: "Agoo", StoreID: "st-mushroom"},
		},
		Stores: []catalog.Store{
			{StoreID: "st-pasalubong", Name: "City Pasalubong Center", Town: "San Fernando"},
			{StoreID: "st-basi", Name: "Naguilian Basi Brewery", Town: "Naguilian"},
			{StoreID: "st-mushroom", Name: "Agoo Mushroom Farm", Town: "Agoo"},
		},
		SignatureProducts: []catalog.SignatureProduct{
			{Town: "Agoo", ProductName: "Oyster Mushroom"},
			{Town: "Naguilian", ProductName: "Basi"},
		},
	})
	return NewService(cat, lexicon.Default(), session.NewMemoryStore(), zap.NewNop())
}

func TestScenarioTownListing(t *testing.T) {
	svc := scenarioService()

	got := svc.Send(context.Background(), "s1", "what can I buy in San Fernando")
	require.Contains(t, got, "Ube Wine")
	assert.NotContains(t, got, "Basi")
	assert.NotContains(t, got, "Oyster Mushroom")
}

func TestScenarioProductToStore(t *testing.T) {
	svc := scenarioService()

	got := svc.Send(context.Background(), "s2", "where is Naguilian basi sold")
	require.Contains(t, got, "Naguilian Basi Brewery")
	assert.NotContains(t, got, "Pasalubong")
}

func TestScenarioSignature(t *testing.T) {
	svc := scenarioService()

	got := svc.Send(context.Background(), "s3", "what is Agoo known for")
	require.Contains(t, got, "Oyster Mushroom")
	assert.NotContains(t, got, "Basi", "other towns' specialties must not leak in")
}

func TestScenarioGibberishLowConfidence(t *testing.T) {
	svc := scenarioService()

	got := svc.SendScored(context.Background(), "s4", "buy famous asdf qwerty",
		&intent.Score{Intent: "nlu_fallback", Confidence: 0.1})
	require.Contains(t, got, "1.")
	require.Contains(t, got, "2.")
	require.Contains(t, got, "3.")
}
