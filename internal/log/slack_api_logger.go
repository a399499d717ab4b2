package log

import (
	"log/slog"
	"strings"
)

// SlackAPIAdapter адаптирует slog.Logger под интерфейс логгера,
// который ожидает библиотека slack-go/slack.
type SlackAPIAdapter struct {
	Logger *slog.Logger
}

// Output реализует метод интерфейса логгера slack-go.
func (a *SlackAPIAdapter) Output(calldepth int, s string) error {
	// Сообщения от библиотеки считаем информационными.
	// Они будут проходить через основной маскировщик.
	a.Logger.Info(strings.TrimSpace(s))
	return nil
}
