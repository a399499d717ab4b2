package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"slack-chat-converter/internal/domain"
	applog "slack-chat-converter/internal/log"
	"slack-chat-converter/internal/ports"

	"github.com/slack-go/slack"
)

const defaultHistoryPageSize = 200

// SlackAPISource реализует интерфейс DataSource поверх Slack Web API.
// Источник собирает пользователей, каналы и историю сообщений заданного
// канала в единый экспорт и возвращает его в виде JSON.
type SlackAPISource struct {
	api       *slack.Client
	channelID string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewSlackAPISource создает новый экземпляр SlackAPISource.
func NewSlackAPISource(token, channelID string, timeout time.Duration, logger *slog.Logger) ports.DataSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlackAPISource{
		api:       slack.New(token, slack.OptionLog(&applog.SlackAPIAdapter{Logger: logger})),
		channelID: channelID,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch запрашивает данные через Slack Web API и возвращает собранный экспорт.
func (s *SlackAPISource) Fetch() ([]byte, error) {
	if s.channelID == "" {
		return nil, fmt.Errorf("channel id not specified")
	}

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	export := &domain.SlackExport{}

	users, err := s.api.GetUsersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, u := range users {
		export.Users = append(export.Users, apiUser(u))
	}
	s.logger.Info("fetched users", "count", len(users))

	channels, err := s.fetchChannels(ctx)
	if err != nil {
		return nil, err
	}
	export.Channels = channels
	s.logger.Info("fetched channels", "count", len(channels))

	messages, err := s.fetchHistory(ctx)
	if err != nil {
		return nil, err
	}
	export.Messages = messages
	s.logger.Info("fetched messages", "channel_id", s.channelID, "count", len(messages))

	data, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	return data, nil
}

// fetchChannels постранично обходит conversations.list.
func (s *SlackAPISource) fetchChannels(ctx context.Context) ([]domain.SlackChannel, error) {
	var result []domain.SlackChannel

	params := &slack.GetConversationsParameters{Limit: defaultHistoryPageSize}
	for {
		channels, cursor, err := s.api.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch channels: %w", err)
		}

		for _, ch := range channels {
			result = append(result, domain.SlackChannel{ID: ch.ID, Name: ch.Name})
		}

		if cursor == "" {
			return result, nil
		}
		params.Cursor = cursor
	}
}

// fetchHistory постранично обходит conversations.history выбранного канала.
func (s *SlackAPISource) fetchHistory(ctx context.Context) ([]domain.SlackMessage, error) {
	var result []domain.SlackMessage

	params := &slack.GetConversationHistoryParameters{
		ChannelID: s.channelID,
		Limit:     defaultHistoryPageSize,
	}
	for {
		history, err := s.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history for channel %s: %w", s.channelID, err)
		}

		for _, msg := range history.Messages {
			converted, err := apiMessage(msg)
			if err != nil {
				return nil, err
			}
			result = append(result, converted)
		}

		if !history.HasMore || history.ResponseMetaData.NextCursor == "" {
			return result, nil
		}
		params.Cursor = history.ResponseMetaData.NextCursor
	}
}

// apiUser переводит пользователя Web API в доменную модель. Ключ deleted
// у API-пользователя присутствует всегда, поэтому указатель заполняется
// безусловно.
func apiUser(u slack.User) domain.SlackUser {
	deleted := u.Deleted
	return domain.SlackUser{
		ID:       u.ID,
		Name:     u.Name,
		RealName: u.RealName,
		Deleted:  &deleted,
		Profile: &domain.SlackProfile{
			RealName: u.Profile.RealName,
		},
	}
}

// apiMessage переводит сообщение Web API в доменную модель, сохраняя
// blocks и attachments в сыром виде.
func apiMessage(msg slack.Message) (domain.SlackMessage, error) {
	converted := domain.SlackMessage{
		Ts:   msg.Timestamp,
		User: msg.User,
		Text: msg.Text,
	}

	for _, block := range msg.Blocks.BlockSet {
		raw, err := json.Marshal(block)
		if err != nil {
			return domain.SlackMessage{}, fmt.Errorf("failed to marshal block: %w", err)
		}
		converted.Blocks = append(converted.Blocks, raw)
	}

	for _, attachment := range msg.Attachments {
		raw, err := json.Marshal(attachment)
		if err != nil {
			return domain.SlackMessage{}, fmt.Errorf("failed to marshal attachment: %w", err)
		}
		converted.Attachments = append(converted.Attachments, raw)
	}

	return converted, nil
}
