package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentUpdateAllowed = []string{"name", "class_id", "guardian_name", "guardian_phone"}

func TestFilterFieldsDropsUnknownKeys(t *testing.T) {
	data := map[string]any{
		"name":      "Budi",
		"tenant_id": "999",
		"npsn":      "override",
		"class_id":  "c1",
	}
	out := FilterFields(data, studentUpdateAllowed)
	assert.Equal(t, map[string]any{"name": "Budi", "class_id": "c1"}, out)
	for k := range out {
		assert.Contains(t, studentUpdateAllowed, k)
	}
}

func TestFilterFieldsEmptyAllowList(t *testing.T) {
	out := FilterFields(map[string]any{"name": "Budi"}, nil)
	assert.Empty(t, out)
}

func TestFilterJSON(t *testing.T) {
	raw := []byte(`{"name":"Budi","tenant_id":"999","guardian_phone":"0812","extra":{"x":1}}`)
	out := FilterJSON(raw, studentUpdateAllowed)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, map[string]any{"name": "Budi", "guardian_phone": "0812"}, m)
}

func TestFilterJSONInvalidInput(t *testing.T) {
	out := FilterJSON([]byte(`not json`), studentUpdateAllowed)
	assert.JSONEq(t, `{}`, string(out))
}

func TestFilterJSONPreservesValueEncoding(t *testing.T) {
	raw := []byte(`{"name":"Budi","class_id":null}`)
	out := FilterJSON(raw, studentUpdateAllowed)
	assert.JSONEq(t, `{"name":"Budi","class_id":null}`, string(out))
}
