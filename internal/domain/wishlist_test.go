package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"add", ActionAdd, false},
		{"remove", ActionRemove, false},
		{"clear", "", true},
		{"ADD", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItem_WireFormat(t *testing.T) {
	addedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	item := Item{
		SessionID: "sess-1",
		ProductID: "p1",
		Name:      "Silk Dress",
		Slug:      "silk-dress",
		Price:     3450,
		AddedAt:   addedAt,
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	// Wire field names are camelCase; the session binding never leaks.
	assert.Equal(t, "p1", out["id"])
	assert.Equal(t, "silk-dress", out["slug"])
	assert.Equal(t, "2026-03-14T09:26:53Z", out["addedAt"])
	assert.NotContains(t, out, "SessionID")
	assert.NotContains(t, out, "session_id")
	// Optional fields are omitted when empty.
	assert.NotContains(t, out, "image")
	assert.NotContains(t, out, "category")
}

func TestProduct_Snapshot(t *testing.T) {
	p := &Product{
		ID:       "p1",
		Name:     "Cashmere Coat",
		Slug:     "cashmere-coat",
		Price:    12900,
		Image:    "https://cdn.luxfashion.example/p1.jpg",
		Category: "Outerwear",
	}

	at := time.Now().UTC()
	item := p.Snapshot("sess-9", at)

	assert.Equal(t, "sess-9", item.SessionID)
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, "Cashmere Coat", item.Name)
	assert.Equal(t, 12900.0, item.Price)
	assert.Equal(t, at, item.AddedAt)
}
