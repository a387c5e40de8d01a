// Package notifiers implements various notification mechanisms for backup events.
package notifiers

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/notifiers/discord"
)

var (
	// ErrNotifiersDisabled is returned when notifiers are globally disabled.
	ErrNotifiersDisabled = errors.New("notifiers are disabled")
)

// NotifiersIface defines the interface that all notifier implementations must satisfy.
// revive:disable-next-line exported
type NotifiersIface interface {
	Enabled() bool
	NotifyBackupSuccess(ctx context.Context, collections int, location string) error
	NotifyBackupFailure(ctx context.Context, err error) error
}

// NotifierStoreIface defines the interface for managing multiple notifiers.
type NotifierStoreIface interface {
	Enabled() bool
	NotifyBackupSuccess(ctx context.Context, collections int, location string) error
	NotifyBackupFailure(ctx context.Context, err error) error
	InitStore() error
}

// Notifier manages multiple notifier implementations.
type Notifier struct {
	cfg   *config.Config
	mu    sync.RWMutex
	store []NotifiersIface
}

func (n *Notifier) register(nf NotifiersIface) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.store = append(n.store, nf)
}

func (n *Notifier) notifiers() []NotifiersIface {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.store
}

// Enabled checks if notifiers are globally enabled in the configuration.
func (n *Notifier) Enabled() bool {
	return n.cfg.Notifiers.Enabled
}

// NotifyBackupSuccess sends a backup success notification using all enabled notifiers.
func (n *Notifier) NotifyBackupSuccess(ctx context.Context, collections int, location string) error {
	if !n.Enabled() {
		return ErrNotifiersDisabled
	}

	for _, notifier := range n.notifiers() {
		if !notifier.Enabled() {
			slog.DebugContext(ctx, "Notifier disabled; skipping NotifyBackupSuccess")
			continue
		}
		if err := notifier.NotifyBackupSuccess(ctx, collections, location); err != nil {
			slog.ErrorContext(ctx, "Failed to send NotifyBackupSuccess", "error", err)
		}
	}

	return nil
}

// NotifyBackupFailure sends a backup failure notification using all enabled notifiers.
func (n *Notifier) NotifyBackupFailure(ctx context.Context, nErr error) error {
	if !n.Enabled() {
		return ErrNotifiersDisabled
	}

	for _, notifier := range n.notifiers() {
		if !notifier.Enabled() {
			slog.DebugContext(ctx, "Notifier disabled; skipping NotifyBackupFailure")
			continue
		}
		if err := notifier.NotifyBackupFailure(ctx, nErr); err != nil {
			slog.ErrorContext(ctx, "Failed to send NotifyBackupFailure", "error", err)
		}
	}

	return nil
}

// InitStore initializes and registers the notifiers turned on in the configuration.
func (n *Notifier) InitStore() error {
	if !n.Enabled() || !n.cfg.Notifiers.Discord.Enabled {
		return nil
	}

	d, err := discord.NewDiscordNotifier(n.cfg)
	if err != nil {
		return err
	}

	n.register(d)

	return nil
}

// NewNotifier creates a new Notifier instance with the provided configuration.
func NewNotifier(cfg *config.Config) NotifierStoreIface {
	return &Notifier{cfg: cfg}
}
