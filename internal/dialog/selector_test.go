package dialog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/common"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		n, page  int
		wantPage int
		wantLo   int
		wantHi   int
		prev     bool
		next     bool
	}{
		{"first of three", 12, 0, 0, 0, 5, false, true},
		{"middle", 12, 1, 1, 5, 10, true, true},
		{"last partial", 12, 2, 2, 10, 12, true, false},
		{"page past end clamps", 12, 9, 2, 10, 12, true, false},
		{"negative clamps to zero", 12, -3, 0, 0, 5, false, true},
		{"exact multiple last page", 10, 1, 1, 5, 10, true, false},
		{"single short page", 3, 0, 0, 0, 3, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Paginate(tt.n, 5, tt.page)
			assert.Equal(t, tt.wantPage, v.Page)
			assert.Equal(t, tt.wantLo, v.Lo)
			assert.Equal(t, tt.wantHi, v.Hi)
			assert.Equal(t, tt.prev, v.HasPrev)
			assert.Equal(t, tt.next, v.HasNext)
		})
	}
}

func TestDecodeCallback(t *testing.T) {
	ev, err := decodeCallback("add_to_42")
	require.NoError(t, err)
	assert.Equal(t, "add_to", ev.Prefix)
	assert.False(t, ev.Nav)
	assert.Equal(t, "42", ev.ItemID)

	id, err := ev.itemID64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	ev, err = decodeCallback("nav_add_to_3")
	require.NoError(t, err)
	assert.Equal(t, "add_to", ev.Prefix)
	assert.True(t, ev.Nav)
	assert.Equal(t, 3, ev.Page)
}

func TestDecodeCallbackMalformed(t *testing.T) {
	for _, data := range []string{"", "junk", "add_to_", "_42", "nav_", "nav_x", "nav_add_to_x", "nav_add_to_-1"} {
		_, err := decodeCallback(data)
		assert.True(t, errors.Is(err, common.ErrBadPayload), "payload %q must fail closed", data)
	}
}

func TestItemID64Malformed(t *testing.T) {
	ev := callbackEvent{Prefix: "add_to", ItemID: "abc"}
	_, err := ev.itemID64()
	assert.True(t, errors.Is(err, common.ErrBadPayload))
}

func TestSelectorKeyboard(t *testing.T) {
	items := make([]selectorItem, 12)
	for i := range items {
		items[i] = selectorItem{ID: string(rune('a' + i)), Label: "item"}
	}

	kb := selectorKeyboard(items, "pick", 5, 0)
	require.Len(t, kb, 6)
	assert.Equal(t, "pick_a", kb[0][0].Data)
	require.Len(t, kb[5], 1)
	assert.Equal(t, "nav_pick_1", kb[5][0].Data)

	kb = selectorKeyboard(items, "pick", 5, 2)
	require.Len(t, kb, 3)
	require.Len(t, kb[2], 1)
	assert.Equal(t, "nav_pick_1", kb[2][0].Data)

	// Re-rendering is idempotent.
	again := selectorKeyboard(items, "pick", 5, 2)
	assert.Equal(t, kb, again)
}
