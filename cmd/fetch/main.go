package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"slack-chat-converter/internal/adapters/exporter"
	"slack-chat-converter/internal/adapters/parser"
	"slack-chat-converter/internal/adapters/source"
	"slack-chat-converter/internal/core/services"
	applog "slack-chat-converter/internal/log"
	"slack-chat-converter/internal/pkg/config"
	"slack-chat-converter/internal/pkg/term"
	"slack-chat-converter/internal/ports"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fetch run failed", "error", err)
		os.Exit(1)
	}
}

// run загружает экспорт (из файла или через Slack API), конвертирует
// сообщения и выводит результат в консоль или XLSX файл.
func run() error {
	var (
		filePath  string
		channelID string
		xlsxPath  string
	)
	flag.StringVar(&filePath, "file", "", "Path to a local export file (skips the Slack API)")
	flag.StringVar(&channelID, "channel", "", "Slack channel ID to fetch history from")
	flag.StringVar(&xlsxPath, "xlsx", "", "Write the result to an XLSX file instead of the console")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := applog.NewMaskedLogger(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Выбор источника данных: локальный файл или Slack Web API
	var ds ports.DataSource
	if filePath != "" {
		ds = source.NewCliSource(filePath)
	} else {
		token := cfg.SlackAPI.Token
		if channelID == "" {
			channelID = cfg.SlackAPI.ChannelID
		}

		terminal := term.NewTerminal()
		if token == "" {
			token, err = terminal.Token(ctx)
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
		}
		if channelID == "" {
			channelID, err = terminal.ChannelID(ctx)
			if err != nil {
				return fmt.Errorf("failed to read channel id: %w", err)
			}
		}

		timeout := time.Duration(cfg.SlackAPI.RequestTimeoutSeconds) * time.Second
		ds = source.NewSlackAPISource(token, channelID, timeout, logger)
	}

	data, err := ds.Fetch()
	if err != nil {
		return fmt.Errorf("failed to fetch export: %w", err)
	}

	export, err := parser.NewJsonParser().Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse export: %w", err)
	}

	mapper := services.NewMappingService(cfg.Conversion.UserIDBase, cfg.Conversion.ChannelIDBase)
	userIDMap := mapper.BuildUserIDMap(export.Users)
	channelMap := mapper.BuildChannelMap(export.Channels)

	converter := services.NewConversionService(
		services.WithPoolSize(cfg.Conversion.PoolSize),
		services.WithTotalTimeout(time.Duration(cfg.Processing.TaskTimeoutSeconds)*time.Second),
		services.WithLogger(logger),
	)

	messages, err := converter.ConvertMessages(ctx, export, channelMap, userIDMap)
	if err != nil {
		return fmt.Errorf("failed to convert messages: %w", err)
	}

	// Выбор способа вывода
	var out ports.Exporter
	if xlsxPath != "" {
		out = exporter.NewXlsxExporter(xlsxPath)
	} else {
		out = exporter.NewConsoleExporter()
	}

	if err := out.Export(messages); err != nil {
		return fmt.Errorf("failed to export result: %w", err)
	}

	slog.Info("Export converted", "message_count", len(messages))
	return nil
}
