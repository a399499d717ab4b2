package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slack-chat-converter/internal/domain"
)

func falseValue() *bool {
	v := false
	return &v
}

func testExport(messages ...domain.SlackMessage) *domain.SlackExport {
	return &domain.SlackExport{
		Users: []domain.SlackUser{
			{ID: "U08RGD1RD", Name: "john", RealName: "John Doe", Deleted: falseValue()},
		},
		Channels: []domain.SlackChannel{{ID: "C5Z73A7RA", Name: "general"}},
		Messages: messages,
	}
}

var (
	testChannels = domain.ChannelMap{"general": {SlackID: "C5Z73A7RA", ZulipID: 137}}
	testIDMap    = domain.UserIDMap{"U08RGD1RD": 540}
)

func TestConversionService(t *testing.T) {
	t.Run("Пустой экспорт дает пустой результат", func(t *testing.T) {
		svc := NewConversionService()
		converted, err := svc.ConvertMessages(context.Background(), &domain.SlackExport{}, testChannels, testIDMap)
		require.NoError(t, err)
		assert.Empty(t, converted)
	})

	t.Run("Порядок сообщений сохраняется при нескольких воркерах", func(t *testing.T) {
		var messages []domain.SlackMessage
		for i := 0; i < 20; i++ {
			messages = append(messages, domain.SlackMessage{
				Ts:   fmt.Sprintf("ts-%02d", i),
				Text: "msg",
			})
		}
		messages[0].Ts = "first"
		messages[19].Ts = "last"

		svc := NewConversionService(WithPoolSize(4))
		converted, err := svc.ConvertMessages(context.Background(), testExport(messages...), testChannels, testIDMap)
		require.NoError(t, err)
		require.Len(t, converted, 20)
		assert.Equal(t, "first", converted[0].SlackTs)
		assert.Equal(t, "last", converted[19].SlackTs)
	})

	t.Run("Текст, упоминания и флаг ссылки попадают в результат", func(t *testing.T) {
		svc := NewConversionService()
		export := testExport(domain.SlackMessage{
			Ts:   "1483051909.018729",
			Text: "Hi <@U08RGD1RD|john>: see <https://foo.com|foo> in <#C5Z73A7RA|general>",
		})

		converted, err := svc.ConvertMessages(context.Background(), export, testChannels, testIDMap)
		require.NoError(t, err)
		require.Len(t, converted, 1)
		assert.Equal(t, "Hi @**John Doe**: see [foo](https://foo.com) in #**general**", converted[0].Content)
		assert.Equal(t, []int64{540}, converted[0].MentionedUserIDs)
		assert.True(t, converted[0].HasLink)
		assert.Empty(t, converted[0].Error)
	})

	t.Run("Блоки и вложения рендерятся после тела", func(t *testing.T) {
		svc := NewConversionService()
		export := testExport(domain.SlackMessage{
			Ts:   "1",
			Text: "intro",
			Blocks: []json.RawMessage{
				json.RawMessage(`{"type": "divider"}`),
			},
			Attachments: []json.RawMessage{
				json.RawMessage(`{"title": "Report"}`),
			},
		})

		converted, err := svc.ConvertMessages(context.Background(), export, testChannels, testIDMap)
		require.NoError(t, err)
		require.Len(t, converted, 1)
		assert.Equal(t, "intro\n\n----\n\n## Report", converted[0].Content)
	})

	t.Run("Ошибка одного сообщения не прерывает пакет", func(t *testing.T) {
		svc := NewConversionService()
		export := testExport(
			domain.SlackMessage{Ts: "1", Text: "<@U08RGD1RD>"},
			domain.SlackMessage{Ts: "2", Text: "ok", Blocks: []json.RawMessage{
				json.RawMessage(`{"type": "header", "text": {"type": "mrkdwn", "text": "bad"}}`),
			}},
			domain.SlackMessage{Ts: "3", Text: "fine"},
		)

		converted, err := svc.ConvertMessages(context.Background(), export, testChannels, testIDMap)
		require.NoError(t, err)
		require.Len(t, converted, 3)
		assert.Empty(t, converted[0].Error)
		assert.NotEmpty(t, converted[1].Error)
		assert.Equal(t, "fine", converted[2].Content)
	})

	t.Run("Истекший контекст возвращает ошибку таймаута", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var messages []domain.SlackMessage
		for i := 0; i < 200; i++ {
			messages = append(messages, domain.SlackMessage{Ts: fmt.Sprintf("ts-%03d", i), Text: "msg"})
		}

		svc := NewConversionService(WithPoolSize(1))
		_, err := svc.ConvertMessages(ctx, testExport(messages...), testChannels, testIDMap)
		assert.Error(t, err)
	})
}
