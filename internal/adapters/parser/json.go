package parser

import (
	"encoding/json"
	"fmt"
	"slack-chat-converter/internal/domain"
	"slack-chat-converter/internal/ports"
)

// JsonParser реализует интерфейс Parser для разбора JSON данных.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

// Parse преобразует срез байт с JSON в структуру SlackExport.
func (p *JsonParser) Parse(data []byte) (*domain.SlackExport, error) {
	var export domain.SlackExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}
	return &export, nil
}
