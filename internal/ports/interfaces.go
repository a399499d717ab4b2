package ports

import (
	"context"

	"slack-chat-converter/internal/domain"
)

// DataSource определяет интерфейс для получения исходных данных экспорта.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// Parser определяет интерфейс для парсинга данных экспорта.
type Parser interface {
	// Parse преобразует сырые данные в структурированную модель экспорта.
	Parse(data []byte) (*domain.SlackExport, error)
}

// MappingService определяет интерфейс для построения таблиц соответствия
// идентификаторов Slack числовым идентификаторам принимающей стороны.
type MappingService interface {
	BuildUserIDMap(users []domain.SlackUser) domain.UserIDMap
	BuildChannelMap(channels []domain.SlackChannel) domain.ChannelMap
}

// ConversionService определяет интерфейс для пакетной конвертации сообщений.
type ConversionService interface {
	ConvertMessages(ctx context.Context, export *domain.SlackExport, channels domain.ChannelMap, userIDMap domain.UserIDMap) ([]domain.ConvertedMessage, error)
}

// Exporter определяет интерфейс для вывода результата.
type Exporter interface {
	// Export принимает финальный список сконвертированных сообщений и выводит их.
	Export(messages []domain.ConvertedMessage) error
}
