package domain

import "encoding/json"

// SlackExport представляет корневую структуру объединенного файла экспорта.
type SlackExport struct {
	Users    []SlackUser    `json:"users"`
	Channels []SlackChannel `json:"channels"`
	Messages []SlackMessage `json:"messages"`
}

// SlackUser представляет запись пользователя из экспорта Slack.
type SlackUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name,omitempty"`
	// Deleted хранится указателем: поведение различается для случая,
	// когда ключ отсутствует, и когда он явно равен false.
	Deleted       *bool         `json:"deleted,omitempty"`
	IsMirrorDummy bool          `json:"is_mirror_dummy"`
	Profile       *SlackProfile `json:"profile,omitempty"`
}

// SlackProfile представляет вложенный профиль пользователя Slack.
type SlackProfile struct {
	RealName string `json:"real_name,omitempty"`
}

// SlackChannel представляет запись канала из экспорта Slack.
type SlackChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlackMessage представляет одно сообщение в экспорте.
// Blocks и Attachments остаются сырыми JSON-деревьями: их схема
// принадлежит Slack и валидируется только при рендеринге.
type SlackMessage struct {
	Ts          string            `json:"ts"`
	User        string            `json:"user"`
	Text        string            `json:"text"`
	Blocks      []json.RawMessage `json:"blocks,omitempty"`
	Attachments []json.RawMessage `json:"attachments,omitempty"`
}

// ChannelIDs хранит пару идентификаторов канала: исходный Slack ID
// и числовой ID, выделенный на принимающей стороне.
type ChannelIDs struct {
	SlackID string `json:"slack_id"`
	ZulipID int64  `json:"zulip_id"`
}

// ChannelMap отображает имя канала в пару его идентификаторов.
// Имена каналов уникальны в пределах одного вызова конвертации.
type ChannelMap map[string]ChannelIDs

// UserIDMap отображает Slack ID пользователя в числовой ID принимающей стороны.
type UserIDMap map[string]int64

// ConversionResult - результат конвертации текста одного сообщения.
type ConversionResult struct {
	// Text - текст в разметке принимающей стороны.
	Text string `json:"text"`
	// MentionedUserIDs - ID упомянутых пользователей в порядке появления.
	// Дубликаты сохраняются: пользователь может быть упомянут несколько раз.
	MentionedUserIDs []int64 `json:"mentioned_user_ids"`
	// HasLink - true, если хотя бы один токен ссылки или mailto был переписан.
	HasLink bool `json:"has_link"`
}

// ConvertedMessage представляет результат конвертации целого сообщения,
// включая отрендеренные блоки и вложения.
type ConvertedMessage struct {
	SlackTs          string  `json:"slack_ts"`
	Content          string  `json:"content"`
	MentionedUserIDs []int64 `json:"mentioned_user_ids"`
	HasLink          bool    `json:"has_link"`
	// Error непусто, если конвертация этого сообщения завершилась ошибкой.
	// Пакетная обработка при этом продолжается.
	Error string `json:"error,omitempty"`
}
