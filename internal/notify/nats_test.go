package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pollwatch/internal/config"
	"git.home.luguber.info/inful/pollwatch/internal/watcher"
)

func TestNewPublisher_DisabledRejected(t *testing.T) {
	_, err := NewPublisher(config.NATSConfig{Enabled: false})
	require.Error(t, err)
}

func TestCyclePayload_RoundTrip(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	payload := CyclePayload{
		CycleID:   "abc-123",
		Timestamp: at,
		Changes: watcher.ChangeList{
			{Type: watcher.ChangeAdded, Directory: "/watched", File: "a.txt"},
			{Type: watcher.ChangeRemoved, Directory: "/watched", File: "b.txt"},
		},
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded CyclePayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, payload, decoded)
	require.Contains(t, string(data), `"type":"added"`)
}
