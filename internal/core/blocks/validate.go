// Package blocks рендерит Block-Kit блоки и legacy-вложения Slack в Markdown.
//
// Входные данные - сырые JSON-деревья (map[string]any после декодирования).
// Имена полей и значения дискриминатора type сверяются побайтово со схемой
// Slack: это внешний wire-формат, за которым пакет обязан следовать.
package blocks

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError - ошибка формы поля во входном дереве. Она означает, что
// исходные данные нарушают предполагаемую схему, и рендеринг этого
// блока/вложения должен быть прерван, а не молча выдать неверный результат.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func checkString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: "is not a string"}
	}
	return s, nil
}

// checkStringIn строит проверку принадлежности строки закрытому перечислению.
func checkStringIn(allowed []string) func(field string, value any) (string, error) {
	return func(field string, value any) (string, error) {
		s, err := checkString(field, value)
		if err != nil {
			return "", err
		}
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not one of %v", s, allowed)}
	}
}

func checkURL(field string, value any) (string, error) {
	s, err := checkString(field, value)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" {
		return "", &ValidationError{Field: field, Reason: "is not a URL"}
	}
	return s, nil
}

// checkInt принимает и целые Go-типы, и float64: encoding/json декодирует
// любые числа из map[string]any во float64.
func checkInt(field string, value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, &ValidationError{Field: field, Reason: "is not an integer"}
		}
		return int64(v), nil
	default:
		return 0, &ValidationError{Field: field, Reason: "is not an integer"}
	}
}

// textBlock - типизированная запись текстового объекта Block-Kit.
type textBlock struct {
	Type string
	Text string
}

// checkTextBlock строит парсер текстового объекта. В режиме plainTextOnly
// допускается только type="plain_text"; иначе еще и "mrkdwn".
func checkTextBlock(plainTextOnly bool) func(field string, value any) (textBlock, error) {
	allowed := []string{"plain_text", "mrkdwn"}
	if plainTextOnly {
		allowed = []string{"plain_text"}
	}
	typeValidator := checkStringIn(allowed)

	return func(field string, value any) (textBlock, error) {
		m, ok := value.(map[string]any)
		if !ok {
			return textBlock{}, &ValidationError{Field: field, Reason: "is not a mapping"}
		}
		blockType, err := typeValidator(field+".type", m["type"])
		if err != nil {
			return textBlock{}, err
		}
		text, err := checkString(field+".text", m["text"])
		if err != nil {
			return textBlock{}, err
		}
		return textBlock{Type: blockType, Text: text}, nil
	}
}

// joinPieces обрезает пробелы у каждой части, отбрасывает пустые и
// склеивает оставшиеся через пустую строку.
func joinPieces(pieces []string) string {
	kept := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n\n")
}
