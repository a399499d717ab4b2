package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"slack-chat-converter/internal/adapters/source"
	"slack-chat-converter/internal/cache"
	"slack-chat-converter/internal/domain"
	"slack-chat-converter/internal/pkg/config"
	"slack-chat-converter/internal/ports"
)

// ProcessExportUseCase инкапсулирует бизнес-логику для обработки файла экспорта Slack.
type ProcessExportUseCase struct {
	cfg        *config.Config
	parser     ports.Parser
	mapper     ports.MappingService
	converter  ports.ConversionService
	cacheStore *cache.CacheStore
}

// NewProcessExportUseCase создает новый экземпляр ProcessExportUseCase.
func NewProcessExportUseCase(
	cfg *config.Config,
	parser ports.Parser,
	mapper ports.MappingService,
	converter ports.ConversionService,
	cacheStore *cache.CacheStore,
) *ProcessExportUseCase {
	return &ProcessExportUseCase{
		cfg:        cfg,
		parser:     parser,
		mapper:     mapper,
		converter:  converter,
		cacheStore: cacheStore,
	}
}

// ProcessExport обрабатывает файл экспорта Slack.
// Он читает файл, разбирает его, строит таблицы соответствия и конвертирует сообщения.
func (uc *ProcessExportUseCase) ProcessExport(ctx context.Context, filePath string) ([]domain.ConvertedMessage, error) {
	fileHash, err := cache.CalculateFileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash for file %s: %w", filePath, err)
	}

	// Проверка кеша по хешу файла
	if cachedItem, found := uc.cacheStore.Get(fileHash); found {
		slog.Info("Попадание в кеш для файла", "hash", fileHash)
		return cachedItem.Data, nil
	}

	slog.Info("Обработка файла", "path", filePath)

	ds := source.NewCliSource(filePath)
	data, err := ds.Fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from %s: %w", filePath, err)
	}

	messages, err := uc.convert(ctx, data)
	if err != nil {
		return nil, err
	}

	// Кеширование окончательного результата
	ttl := uc.cfg.Processing.CacheTTL()
	uc.cacheStore.Put(fileHash, messages, ttl)
	slog.Info("Результат кеширован для файла", "hash", fileHash, "ttl", ttl.String())

	return messages, nil
}

// ConvertExport конвертирует экспорт, переданный в виде сырых байт.
func (uc *ProcessExportUseCase) ConvertExport(ctx context.Context, data []byte) ([]domain.ConvertedMessage, error) {
	dataHash := cache.CalculateHashFromString(string(data))

	// Проверка кеша по хешу содержимого
	if cachedItem, found := uc.cacheStore.Get(dataHash); found {
		slog.Info("Попадание в кеш для содержимого", "hash", dataHash)
		return cachedItem.Data, nil
	}

	messages, err := uc.convert(ctx, data)
	if err != nil {
		return nil, err
	}

	ttl := uc.cfg.Processing.CacheTTL()
	uc.cacheStore.Put(dataHash, messages, ttl)
	slog.Info("Результат кеширован для содержимого", "hash", dataHash, "ttl", ttl.String())

	return messages, nil
}

// convert выполняет общий конвейер: разбор, построение таблиц, конвертация.
func (uc *ProcessExportUseCase) convert(ctx context.Context, data []byte) ([]domain.ConvertedMessage, error) {
	export, err := uc.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	slog.Info("Разобран экспорт", "user_count", len(export.Users), "channel_count", len(export.Channels), "message_count", len(export.Messages))

	userIDMap := uc.mapper.BuildUserIDMap(export.Users)
	channelMap := uc.mapper.BuildChannelMap(export.Channels)
	slog.Info("Построены таблицы соответствия", "users", len(userIDMap), "channels", len(channelMap))

	messages, err := uc.converter.ConvertMessages(ctx, export, channelMap, userIDMap)
	if err != nil {
		return nil, fmt.Errorf("failed to convert messages: %w", err)
	}

	slog.Info("Обработка успешно завершена", "message_count", len(messages))
	return messages, nil
}
