// Package discord sends backup notifications to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hibare/GoCommon/v2/pkg/notifiers/discord"
	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/constants"
)

const (
	successColor = 1498748
	failureColor = 14554702
)

// Discord sends notifications to a Discord channel via webhook.
type Discord struct {
	Cfg    *config.Config
	client discord.ClientIface
}

// Enabled checks if the Discord notifier is enabled in the configuration.
func (d *Discord) Enabled() bool {
	return d.Cfg.Notifiers.Discord.Enabled
}

func (d *Discord) title(status string) string {
	return fmt.Sprintf("**MongoDB Backup %s** - *%s*", status, d.Cfg.Mongo.Database)
}

// NotifyBackupSuccess sends a success notification to the Discord channel.
func (d *Discord) NotifyBackupSuccess(ctx context.Context, collections int, location string) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Color: successColor,
				Fields: []discord.EmbedField{
					{
						Name:   "Location",
						Value:  location,
						Inline: false,
					},
					{
						Name:   "Collections",
						Value:  strconv.Itoa(collections),
						Inline: false,
					},
				},
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    d.title("Successful"),
	}

	return d.client.Send(ctx, &message)
}

// NotifyBackupFailure sends a failure notification to the Discord channel.
func (d *Discord) NotifyBackupFailure(ctx context.Context, err error) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Title:       "Error",
				Description: err.Error(),
				Color:       failureColor,
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    d.title("Failed"),
	}

	return d.client.Send(ctx, &message)
}

// NewDiscordNotifier creates a new Discord notifier instance.
func NewDiscordNotifier(cfg *config.Config) (*Discord, error) {
	client, err := discord.NewClient(discord.Options{
		WebhookURL: cfg.Notifiers.Discord.Webhook,
	})
	if err != nil {
		return nil, err
	}

	return &Discord{
		Cfg:    cfg,
		client: client,
	}, nil
}
