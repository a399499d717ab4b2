package exporter

import (
	"fmt"
	"strings"

	"slack-chat-converter/internal/domain"
	"slack-chat-converter/internal/ports"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Сообщения"

// XlsxExporter реализует интерфейс Exporter для записи результата в XLSX файл.
type XlsxExporter struct {
	filePath string
}

// NewXlsxExporter создает новый экземпляр XlsxExporter.
func NewXlsxExporter(filePath string) ports.Exporter {
	return &XlsxExporter{filePath: filePath}
}

// Export записывает сконвертированные сообщения в XLSX файл, по строке на сообщение.
func (e *XlsxExporter) Export(messages []domain.ConvertedMessage) error {
	if e.filePath == "" {
		return fmt.Errorf("file path not specified")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Заголовки
	headers := []string{"Slack Ts", "Content", "Mentioned User IDs", "Has Link", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Данные
	for i, msg := range messages {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), msg.SlackTs)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), msg.Content)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), formatUserIDs(msg.MentionedUserIDs))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), msg.HasLink)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), msg.Error)
	}

	if err := f.SaveAs(e.filePath); err != nil {
		return fmt.Errorf("failed to save xlsx file %s: %w", e.filePath, err)
	}

	return nil
}

func formatUserIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ", ")
}
