package config

import "errors"

var (
	ErrMissingBotToken = errors.New("missing BOT_TOKEN environment variable")
	ErrMissingChannel  = errors.New("missing channel ID (set CHANNEL_ID or channel.id)")
	ErrBadChannelID    = errors.New("channel ID is not a valid integer")
)
