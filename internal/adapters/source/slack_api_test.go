package source

import (
	"encoding/json"
	"testing"

	"slack-chat-converter/internal/domain"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackAPISource(t *testing.T) {
	t.Run("NewSlackAPISource создает корректный экземпляр", func(t *testing.T) {
		source := NewSlackAPISource("xoxb-test", "C123", 0, nil)
		assert.NotNil(t, source)
	})

	t.Run("Fetch возвращает ошибку для пустого идентификатора канала", func(t *testing.T) {
		source := NewSlackAPISource("xoxb-test", "", 0, nil)

		data, err := source.Fetch()

		assert.Error(t, err)
		assert.Nil(t, data)
		assert.Contains(t, err.Error(), "channel id not specified")
	})

	t.Run("apiUser переносит полное имя и признак удаления", func(t *testing.T) {
		u := slack.User{
			ID:       "U024BE7LH",
			Name:     "bobby",
			RealName: "Bobby Tables",
			Deleted:  false,
		}
		u.Profile.RealName = "Bobby Tables"

		converted := apiUser(u)

		assert.Equal(t, "U024BE7LH", converted.ID)
		assert.Equal(t, "bobby", converted.Name)
		assert.Equal(t, "Bobby Tables", converted.RealName)
		require.NotNil(t, converted.Deleted)
		assert.False(t, *converted.Deleted)
		require.NotNil(t, converted.Profile)
		assert.Equal(t, "Bobby Tables", converted.Profile.RealName)
	})

	t.Run("apiUser не теряет признак удаленного пользователя", func(t *testing.T) {
		converted := apiUser(slack.User{ID: "U2", Name: "gone", Deleted: true})

		require.NotNil(t, converted.Deleted)
		assert.True(t, *converted.Deleted)
	})

	t.Run("apiMessage сохраняет текстовые поля и вложения", func(t *testing.T) {
		msg := slack.Message{
			Msg: slack.Msg{
				Timestamp: "1538226155.000100",
				User:      "U024BE7LH",
				Text:      "*hello*",
				Attachments: []slack.Attachment{
					{Title: "report"},
				},
			},
		}

		converted, err := apiMessage(msg)

		require.NoError(t, err)
		assert.Equal(t, "1538226155.000100", converted.Ts)
		assert.Equal(t, "U024BE7LH", converted.User)
		assert.Equal(t, "*hello*", converted.Text)
		require.Len(t, converted.Attachments, 1)

		var attachment map[string]any
		require.NoError(t, json.Unmarshal(converted.Attachments[0], &attachment))
		assert.Equal(t, "report", attachment["title"])
	})

	t.Run("apiMessage сериализует blocks в сырой JSON", func(t *testing.T) {
		msg := slack.Message{
			Msg: slack.Msg{
				Timestamp: "1.0",
				Blocks: slack.Blocks{
					BlockSet: []slack.Block{slack.NewDividerBlock()},
				},
			},
		}

		converted, err := apiMessage(msg)

		require.NoError(t, err)
		require.Len(t, converted.Blocks, 1)

		var block map[string]any
		require.NoError(t, json.Unmarshal(converted.Blocks[0], &block))
		assert.Equal(t, "divider", block["type"])
	})

	t.Run("экспорт из API разбирается парсером без потерь", func(t *testing.T) {
		export := &domain.SlackExport{
			Users: []domain.SlackUser{
				{ID: "U1", Name: "bobby", Profile: &domain.SlackProfile{RealName: "Bobby Tables"}},
			},
			Channels: []domain.SlackChannel{{ID: "C1", Name: "general"}},
			Messages: []domain.SlackMessage{{Ts: "1.0", Text: "hi"}},
		}

		data, err := json.Marshal(export)
		require.NoError(t, err)

		var parsed domain.SlackExport
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, export.Users, parsed.Users)
		assert.Equal(t, export.Channels, parsed.Channels)
		assert.Equal(t, export.Messages, parsed.Messages)
	})
}
