package exporter

import (
	"bytes"
	"os"
	"slack-chat-converter/internal/domain"
	"strings"
	"testing"
)

func TestConsoleExporter(t *testing.T) {
	t.Run("NewConsoleExporter создает корректный экземпляр", func(t *testing.T) {
		exporter := NewConsoleExporter()
		if exporter == nil {
			t.Error("Ожидался экземпляр ConsoleExporter, получен nil")
		}
	})

	t.Run("Export корректно выводит сообщения", func(t *testing.T) {
		// Перехватываем stdout
		old := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		exporter := &ConsoleExporter{}
		messages := []domain.ConvertedMessage{
			{
				SlackTs:          "1538226155.000100",
				Content:          "Hi @**John Doe**",
				MentionedUserIDs: []int64{540},
			},
			{
				SlackTs: "1538226156.000200",
				Content: "See [docs](https://example.com/docs)",
				HasLink: true,
			},
			{
				SlackTs: "1538226157.000300",
				Error:   "failed to render block: invalid block: type",
			},
		}

		err := exporter.Export(messages)
		if err != nil {
			t.Errorf("Неожиданная ошибка: %v", err)
		}

		w.Close()
		os.Stdout = old

		var buf bytes.Buffer
		buf.ReadFrom(r)
		output := buf.String()

		if !strings.Contains(output, "--- Converted Messages ---") {
			t.Error("Ожидался заголовок в выводе")
		}

		if !strings.Contains(output, "Hi @**John Doe**") {
			t.Error("Ожидалось 'Hi @**John Doe**' в выводе")
		}

		if !strings.Contains(output, "Mentions: [540]") {
			t.Error("Ожидалось 'Mentions: [540]' в выводе")
		}

		if !strings.Contains(output, "HasLink: true") {
			t.Error("Ожидалось 'HasLink: true' в выводе")
		}

		if !strings.Contains(output, "Error: failed to render block") {
			t.Error("Ожидалась строка ошибки в выводе")
		}
	})

	t.Run("Export выводит сообщение при отсутствии данных", func(t *testing.T) {
		// Перехватываем stdout
		old := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		exporter := &ConsoleExporter{}
		messages := []domain.ConvertedMessage{}

		err := exporter.Export(messages)
		if err != nil {
			t.Errorf("Неожиданная ошибка: %v", err)
		}

		w.Close()
		os.Stdout = old

		var buf bytes.Buffer
		buf.ReadFrom(r)
		output := buf.String()

		if !strings.Contains(output, "--- Converted Messages ---") {
			t.Error("Ожидался заголовок в выводе")
		}

		if !strings.Contains(output, "No messages found.") {
			t.Error("Ожидалось 'No messages found.' в выводе")
		}
	})

	t.Run("Export возвращает nil в качестве ошибки", func(t *testing.T) {
		exporter := &ConsoleExporter{}
		messages := []domain.ConvertedMessage{
			{SlackTs: "1.0", Content: "test"},
		}

		err := exporter.Export(messages)
		if err != nil {
			t.Errorf("Ожидалась ошибка nil, получено %v", err)
		}
	})
}
