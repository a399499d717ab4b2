package exporter

import (
	"fmt"
	"slack-chat-converter/internal/domain"
	"slack-chat-converter/internal/ports"
)

// ConsoleExporter реализует интерфейс Exporter для вывода данных в консоль.
type ConsoleExporter struct{}

// NewConsoleExporter создает новый экземпляр ConsoleExporter.
func NewConsoleExporter() ports.Exporter {
	return &ConsoleExporter{}
}

// Export выводит финальный список сконвертированных сообщений в консоль.
func (e *ConsoleExporter) Export(messages []domain.ConvertedMessage) error {
	fmt.Println("--- Converted Messages ---")
	if len(messages) == 0 {
		fmt.Println("No messages found.")
		return nil
	}

	for i, msg := range messages {
		if msg.Error != "" {
			fmt.Printf("%d. Ts: %s, Error: %s\n", i+1, msg.SlackTs, msg.Error)
			continue
		}
		if len(msg.MentionedUserIDs) > 0 {
			fmt.Printf("%d. Ts: %s, Mentions: %v, HasLink: %t\n%s\n", i+1, msg.SlackTs, msg.MentionedUserIDs, msg.HasLink, msg.Content)
		} else {
			fmt.Printf("%d. Ts: %s, HasLink: %t\n%s\n", i+1, msg.SlackTs, msg.HasLink, msg.Content)
		}
	}
	return nil
}
