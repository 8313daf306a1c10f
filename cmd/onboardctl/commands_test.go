package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/storage/memory"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/progress"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/config"
)

func memoryOpener(store onboarding.UseCase) storeOpener {
	return func(context.Context, string, bool) (onboarding.UseCase, func(), error) {
		return store, nil, nil
	}
}

func execute(t *testing.T, store onboarding.UseCase, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(memoryOpener(store))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedThenListNotifications(t *testing.T) {
	t.Parallel()

	store := onboarding.NewStore(memory.New(), nil, nil, onboarding.WithLazySeeding(false))

	_, err := execute(t, store, "seed", "--email", "cli@sunpowerabc.com")
	require.NoError(t, err)

	out, err := execute(t, store, "notifications", "--email", "cli@sunpowerabc.com", "--unread")
	require.NoError(t, err)

	var list []onboarding.Notification
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "n1", list[0].ID)
}

func TestSeedRequiresEmail(t *testing.T) {
	t.Parallel()

	store := onboarding.NewStore(memory.New(), nil, nil)
	_, err := execute(t, store, "seed")
	assert.Error(t, err)
}

func TestRejectAndAudit(t *testing.T) {
	t.Parallel()

	store := onboarding.NewStore(memory.New(), nil, nil)

	out, err := execute(t, store, "reject-ppe", "--email", "cli@sunpowerabc.com", "--reason", "Wrong size")
	require.NoError(t, err)

	var setup onboarding.EmploymentSetup
	require.NoError(t, json.Unmarshal([]byte(out), &setup))
	assert.Equal(t, onboarding.PpeStatusRejected, setup.PpeStatus)
	assert.Equal(t, "Wrong size", setup.PpeAdminNote)

	out, err = execute(t, store, "audit")
	require.NoError(t, err)

	var entries []onboarding.AuditEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "reject_ppe", entries[0].Action)
}

func TestCompleteThenResetStep(t *testing.T) {
	t.Parallel()

	store := onboarding.NewStore(memory.New(), nil, nil)

	_, err := execute(t, store, "complete-step", "--email", "cli@sunpowerabc.com", "--screen", "4")
	require.NoError(t, err)

	out, err := execute(t, store, "reset-step", "--email", "cli@sunpowerabc.com", "--screen", "4")
	require.NoError(t, err)

	var setup onboarding.EmploymentSetup
	require.NoError(t, json.Unmarshal([]byte(out), &setup))
	assert.False(t, setup.Screen4Completed)
}

func TestProgressFromFile(t *testing.T) {
	t.Parallel()

	tasks := progress.DefaultTasks()
	tasks[1].Status = progress.TaskStatusCompleted
	b, err := json.Marshal(tasks)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	out, err := execute(t, nil, "progress", "--tasks", path)
	require.NoError(t, err)

	var view progress.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.CompletedIndex)
	assert.Equal(t, "/i9", view.Continue.To)
}

func TestNotificationPublisher(t *testing.T) {
	t.Parallel()

	disabled := &config.Config{}
	assert.Nil(t, notificationPublisher(disabled, zap.NewNop()))

	enabled := &config.Config{Events: config.EventsConfig{
		KafkaBrokers:      []string{"127.0.0.1:9092"},
		NotificationTopic: "onboarding.notifications",
	}}
	p := notificationPublisher(enabled, zap.NewNop())
	require.NotNil(t, p)
	p.Close()
}

func TestDefaultOpener_WithEvents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`server:
  listen_addr: ":50051"
storage:
  driver: memory
events:
  kafka_brokers: ["127.0.0.1:9092"]
`), 0o600))

	store, closeFn, err := defaultOpener(context.Background(), path, false)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NotNil(t, closeFn)
	closeFn()
}
