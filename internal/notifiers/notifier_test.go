package notifiers

import (
	"context"
	"errors"
	"testing"

	"github.com/hibare/mongostash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func enabledNotifier(t *testing.T, nfs ...NotifiersIface) *Notifier {
	t.Helper()
	n := &Notifier{cfg: &config.Config{Notifiers: config.NotifiersConfig{Enabled: true}}}
	for _, nf := range nfs {
		n.register(nf)
	}
	return n
}

func TestNotifier_Disabled(t *testing.T) {
	n := NewNotifier(&config.Config{})

	require.NoError(t, n.InitStore())
	assert.False(t, n.Enabled())
	require.ErrorIs(t, n.NotifyBackupSuccess(context.Background(), 2, "s3://b/k"), ErrNotifiersDisabled)
	require.ErrorIs(t, n.NotifyBackupFailure(context.Background(), errors.New("boom")), ErrNotifiersDisabled)
}

func TestNotifier_InitStore_DiscordDisabled(t *testing.T) {
	n := &Notifier{cfg: &config.Config{Notifiers: config.NotifiersConfig{Enabled: true}}}

	require.NoError(t, n.InitStore())
	assert.Empty(t, n.notifiers())
}

func TestNotifier_NotifyBackupSuccess(t *testing.T) {
	active := NewMockNotifiersIface(t)
	inactive := NewMockNotifiersIface(t)
	n := enabledNotifier(t, active, inactive)

	active.On("Enabled").Return(true)
	active.On("NotifyBackupSuccess", mock.Anything, 2, "s3://backups/mongodb_backup").Return(nil)
	inactive.On("Enabled").Return(false)

	require.NoError(t, n.NotifyBackupSuccess(context.Background(), 2, "s3://backups/mongodb_backup"))
	inactive.AssertNotCalled(t, "NotifyBackupSuccess", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_NotifyBackupFailure_SendErrorIsSwallowed(t *testing.T) {
	nf := NewMockNotifiersIface(t)
	n := enabledNotifier(t, nf)
	runErr := errors.New("connection refused")

	nf.On("Enabled").Return(true)
	nf.On("NotifyBackupFailure", mock.Anything, runErr).Return(errors.New("webhook down"))

	require.NoError(t, n.NotifyBackupFailure(context.Background(), runErr))
}
