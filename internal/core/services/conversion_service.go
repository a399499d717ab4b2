package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"slack-chat-converter/internal/core/blocks"
	"slack-chat-converter/internal/core/mrkdwn"
	"slack-chat-converter/internal/domain"
)

// Config хранит конфигурацию для ConversionService.
type Config struct {
	// TotalTimeout - максимальная продолжительность конвертации всего списка сообщений.
	TotalTimeout time.Duration
	// PoolSize - количество одновременных воркеров конвертации.
	PoolSize int
}

// Option - функциональная опция для настройки ConversionService.
type Option func(*ConversionService)

// WithTotalTimeout устанавливает общий таймаут пакетной конвертации.
// Нулевое значение отключает таймаут.
func WithTotalTimeout(d time.Duration) Option {
	return func(s *ConversionService) {
		s.config.TotalTimeout = d
	}
}

// WithPoolSize устанавливает количество одновременных воркеров.
func WithPoolSize(n int) Option {
	return func(s *ConversionService) {
		if n > 0 {
			s.config.PoolSize = n
		}
	}
}

// WithLogger устанавливает логгер для сервиса.
func WithLogger(l *slog.Logger) Option {
	return func(s *ConversionService) {
		if l != nil {
			s.log = l
		}
	}
}

// ConversionService конвертирует сообщения экспорта пулом воркеров.
// Ядро конвертации чистое, поэтому воркеры не разделяют никакого
// изменяемого состояния; сервис безопасен для одновременного использования.
type ConversionService struct {
	config Config
	log    *slog.Logger
}

// NewConversionService создает новый ConversionService с использованием
// функциональных опций поверх конфигурации по умолчанию.
func NewConversionService(opts ...Option) *ConversionService {
	s := &ConversionService{
		config: Config{
			TotalTimeout: 10 * time.Minute,
			PoolSize:     1,
		},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// convertTask и convertResult несут индекс сообщения, чтобы результат
// можно было вернуть в исходном порядке независимо от порядка завершения
// воркеров.
type convertTask struct {
	index   int
	message domain.SlackMessage
}

type convertResult struct {
	index   int
	message domain.ConvertedMessage
}

// ConvertMessages конвертирует все сообщения экспорта.
//
// Ошибка конвертации одного сообщения не прерывает пакет: такое сообщение
// помечается полем Error, и обработка продолжается. Единственная причина
// вернуть ошибку всего пакета - истечение общего таймаута; в этом случае
// возвращается то, что успели собрать.
func (s *ConversionService) ConvertMessages(ctx context.Context, export *domain.SlackExport, channels domain.ChannelMap, userIDMap domain.UserIDMap) ([]domain.ConvertedMessage, error) {
	if export == nil || len(export.Messages) == 0 {
		return nil, nil
	}

	cfg := s.config

	if cfg.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TotalTimeout)
		defer cancel()
	}

	s.log.InfoContext(ctx, "Starting conversion process",
		"messages", len(export.Messages),
		"pool_size", cfg.PoolSize,
		"total_timeout", cfg.TotalTimeout,
	)

	tasks := make(chan convertTask, len(export.Messages))
	results := make(chan convertResult, len(export.Messages))
	var wg sync.WaitGroup

	for i := 0; i < cfg.PoolSize; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg, export, channels, userIDMap, tasks, results)
	}

	for i, msg := range export.Messages {
		tasks <- convertTask{index: i, message: msg}
	}
	close(tasks)

	collected := make(map[int]domain.ConvertedMessage, len(export.Messages))
	finishedCount := 0

	for finishedCount < len(export.Messages) {
		select {
		case res := <-results:
			collected[res.index] = res.message
			finishedCount++
		case <-ctx.Done():
			// Общий таймаут сработал, пока мы ждали результатов.
			// Прекращаем ждать и возвращаем то, что успели собрать.
			converted := orderedResults(collected)
			err := fmt.Errorf("conversion process timed out: %w", ctx.Err())
			s.log.WarnContext(ctx, "Conversion process timed out", "converted_count", len(converted), "error", err)
			return converted, err
		}
	}

	wg.Wait()
	close(results)

	converted := orderedResults(collected)
	failed := 0
	for _, msg := range converted {
		if msg.Error != "" {
			failed++
		}
	}

	s.log.InfoContext(ctx, "Conversion process finished",
		"converted_count", len(converted),
		"failed_count", failed,
	)
	return converted, nil
}

func (s *ConversionService) worker(ctx context.Context, wg *sync.WaitGroup, export *domain.SlackExport, channels domain.ChannelMap, userIDMap domain.UserIDMap, tasks <-chan convertTask, results chan<- convertResult) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			// Глобальный контекст завершен, выходим.
			return
		case task, ok := <-tasks:
			if !ok {
				// Канал задач закрыт, больше работы нет.
				return
			}
			results <- convertResult{
				index:   task.index,
				message: s.convertMessage(ctx, task.message, export.Users, channels, userIDMap),
			}
		}
	}
}

// convertMessage конвертирует одно сообщение: тело через конвейер разметки,
// затем каждый блок и каждое вложение отдельной частью после тела.
func (s *ConversionService) convertMessage(ctx context.Context, msg domain.SlackMessage, users []domain.SlackUser, channels domain.ChannelMap, userIDMap domain.UserIDMap) domain.ConvertedMessage {
	converted := domain.ConvertedMessage{SlackTs: msg.Ts}

	res, err := mrkdwn.Convert(msg.Text, users, channels, userIDMap)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to convert message text", "ts", msg.Ts, "error", err)
		converted.Error = err.Error()
		return converted
	}

	var pieces []string
	if res.Text != "" {
		pieces = append(pieces, res.Text)
	}

	for i, raw := range msg.Blocks {
		var block map[string]any
		if err := json.Unmarshal(raw, &block); err != nil {
			converted.Error = fmt.Sprintf("blocks[%d]: %v", i, err)
			return converted
		}
		rendered, err := blocks.RenderBlock(block)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to render block", "ts", msg.Ts, "block", i, "error", err)
			converted.Error = fmt.Sprintf("blocks[%d]: %v", i, err)
			return converted
		}
		if rendered != "" {
			pieces = append(pieces, rendered)
		}
	}

	for i, raw := range msg.Attachments {
		var attachment map[string]any
		if err := json.Unmarshal(raw, &attachment); err != nil {
			converted.Error = fmt.Sprintf("attachments[%d]: %v", i, err)
			return converted
		}
		rendered, err := blocks.RenderAttachment(attachment)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to render attachment", "ts", msg.Ts, "attachment", i, "error", err)
			converted.Error = fmt.Sprintf("attachments[%d]: %v", i, err)
			return converted
		}
		if rendered != "" {
			pieces = append(pieces, rendered)
		}
	}

	converted.Content = strings.Join(pieces, "\n\n")
	converted.MentionedUserIDs = res.MentionedUserIDs
	converted.HasLink = res.HasLink
	return converted
}

// orderedResults возвращает собранные результаты в порядке исходных индексов.
func orderedResults(collected map[int]domain.ConvertedMessage) []domain.ConvertedMessage {
	indexes := make([]int, 0, len(collected))
	for i := range collected {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	converted := make([]domain.ConvertedMessage, 0, len(collected))
	for _, i := range indexes {
		converted = append(converted, collected[i])
	}
	return converted
}
