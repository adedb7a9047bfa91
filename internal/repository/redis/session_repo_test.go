package redis

import (
	"encoding/json"
	"testing"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeStage(t *testing.T, stage domain.Stage) stageEnvelope {
	t.Helper()

	payload, err := json.Marshal(stage)
	require.NoError(t, err)

	return stageEnvelope{Kind: stage.Kind(), Payload: payload}
}

func TestDecodeStageRestoresPayload(t *testing.T) {
	env := encodeStage(t, domain.CheckoutShipping{Phone: "+99890", Address: "Toshkent"})

	stage, err := decodeStage(env)
	require.NoError(t, err)

	st, ok := stage.(domain.CheckoutShipping)
	require.True(t, ok)
	assert.Equal(t, "+99890", st.Phone)
	assert.Equal(t, "Toshkent", st.Address)
}

func TestDecodeStageEditAwaitingValue(t *testing.T) {
	env := encodeStage(t, domain.EditAwaitingValue{ProductID: 7, Field: domain.FieldPrice})

	stage, err := decodeStage(env)
	require.NoError(t, err)

	st, ok := stage.(domain.EditAwaitingValue)
	require.True(t, ok)
	assert.Equal(t, int64(7), st.ProductID)
	assert.Equal(t, domain.FieldPrice, st.Field)
}

func TestDecodeStageFieldlessVariant(t *testing.T) {
	stage, err := decodeStage(stageEnvelope{Kind: domain.KindSearchWait})
	require.NoError(t, err)
	assert.Equal(t, domain.SearchWait{}, stage)
}

func TestDecodeStageUnknownKind(t *testing.T) {
	_, err := decodeStage(stageEnvelope{Kind: "time_travel"})
	require.Error(t, err)
}
