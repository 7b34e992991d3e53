package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalPayload struct {
	Price Optional[float64] `json:"price"`
	Notes Optional[string]  `json:"notes"`
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	var p optionalPayload
	require.NoError(t, json.Unmarshal([]byte(`{"price": null, "notes": "hello"}`), &p))

	assert.True(t, p.Price.IsSet())
	assert.True(t, p.Price.IsNull())
	assert.Nil(t, p.Price.Ptr())

	assert.True(t, p.Notes.IsSet())
	assert.False(t, p.Notes.IsNull())
	v, ok := p.Notes.Value()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestOptional_MissingKeyIsUnset(t *testing.T) {
	var p optionalPayload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

	assert.False(t, p.Price.IsSet())
	assert.False(t, p.Price.IsNull())
	_, ok := p.Price.Value()
	assert.False(t, ok)
}

func TestOptional_WrongTypeFails(t *testing.T) {
	var p optionalPayload
	assert.Error(t, json.Unmarshal([]byte(`{"price": "abc"}`), &p))
}

func TestOptional_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(optionalPayload{Price: Some(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 1.5, "notes": null}`, string(out))
}
