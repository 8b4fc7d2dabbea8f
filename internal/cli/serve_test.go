package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReminderLoop_Disabled(t *testing.T) {
	stop := startReminderLoop(nil, 0)
	stop()
	stop()
}

func TestStartReminderLoop_SendsPeriodically(t *testing.T) {
	dataDir := newInitializedDataDir(t)
	subscribeAndVerify(t, dataDir, "ivan@example.com")
	_, err := runCLI(t, dataDir, "add", "Feed the cat")
	require.NoError(t, err)
	before := len(outboxMessages(t, dataDir))

	c := openContainer(t, dataDir)
	stop := startReminderLoop(c, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return len(outboxMessages(t, dataDir)) > before
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop()
}
