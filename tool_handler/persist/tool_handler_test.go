package persist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

type capturingStore struct {
	saved    []FinancialRecord
	failures int
}

func (s *capturingStore) SaveRecord(ctx context.Context, rec FinancialRecord) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("store unavailable")
	}

	s.saved = append(s.saved, rec)
	return nil
}

func validArguments() map[string]any {
	return map[string]any{
		"id":         "netflix-1",
		"confidence": 0.95,
		"subject":    "Confirmación de pago - Netflix",
		"name":       "Netflix subscription",
		"sender": map[string]any{
			"name":  "Netflix",
			"email": "info@netflix.com",
		},
		"date":        "2024-12-01T10:00:00Z",
		"description": "Monthly subscription charge",
		"type":        "expense",
		"amount": map[string]any{
			"value":    15.99,
			"currency": "USD",
		},
	}
}

func TestInvokeSavesValidRecord(t *testing.T) {
	store := &capturingStore{}
	th := NewToolHandler(WithStore(store))

	rsp, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
		CallId:    "call-1",
		Arguments: validArguments(),
		Session:   toolhandler.NewSession(),
	})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "netflix-1", store.saved[0].Id)
	assert.InDelta(t, 15.99, store.saved[0].Amount.Value, 1e-9)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(rsp.Content), &payload))
	assert.Equal(t, true, payload["saved"])
	assert.Equal(t, "netflix-1", payload["id"])
}

func TestInvokeRejectsInvalidRecords(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(args map[string]any)
	}{
		{
			name:   "missing id",
			mutate: func(args map[string]any) { delete(args, "id") },
		},
		{
			name:   "confidence above 1",
			mutate: func(args map[string]any) { args["confidence"] = 1.5 },
		},
		{
			name:   "missing subject",
			mutate: func(args map[string]any) { args["subject"] = "  " },
		},
		{
			name:   "missing sender email",
			mutate: func(args map[string]any) { args["sender"] = map[string]any{"name": "Netflix"} },
		},
		{
			name:   "missing date",
			mutate: func(args map[string]any) { delete(args, "date") },
		},
		{
			name:   "unknown type",
			mutate: func(args map[string]any) { args["type"] = "transfer" },
		},
		{
			name:   "missing currency",
			mutate: func(args map[string]any) { args["amount"] = map[string]any{"value": 15.99} },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &capturingStore{}
			th := NewToolHandler(WithStore(store))

			args := validArguments()
			tc.mutate(args)

			_, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
				CallId:    "call-1",
				Arguments: args,
				Session:   toolhandler.NewSession(),
			})

			assert.Error(t, err)
			assert.Empty(t, store.saved)
		})
	}
}

func TestInvokeDeduplicatesWithinSession(t *testing.T) {
	store := &capturingStore{}
	th := NewToolHandler(WithStore(store))

	session := toolhandler.NewSession()

	_, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
		CallId:    "call-1",
		Arguments: validArguments(),
		Session:   session,
	})
	require.NoError(t, err)

	// a second call with a fresh call id but the same record id is refused
	_, err = th.Invoke(context.Background(), toolhandler.ToolRequest{
		CallId:    "call-2",
		Arguments: validArguments(),
		Session:   session,
	})

	assert.ErrorContains(t, err, "already processed")
	assert.Len(t, store.saved, 1)
}

func TestInvokeRetriesAfterFailedSave(t *testing.T) {
	store := &capturingStore{failures: 1}
	th := NewToolHandler(WithStore(store))

	session := toolhandler.NewSession()

	_, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
		CallId:    "call-1",
		Arguments: validArguments(),
		Session:   session,
	})
	require.Error(t, err)
	require.Empty(t, store.saved)

	// a failed save must not consume the dedup key; the retry persists
	rsp, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
		CallId:    "call-2",
		Arguments: validArguments(),
		Session:   session,
	})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(rsp.Content), &payload))
	assert.Equal(t, true, payload["saved"])
}

func TestInvokeAllowsSameRecordAcrossSessions(t *testing.T) {
	store := &capturingStore{}
	th := NewToolHandler(WithStore(store))

	for i := 0; i < 2; i++ {
		_, err := th.Invoke(context.Background(), toolhandler.ToolRequest{
			CallId:    "call-1",
			Arguments: validArguments(),
			Session:   toolhandler.NewSession(),
		})
		require.NoError(t, err)
	}

	assert.Len(t, store.saved, 2)
}
