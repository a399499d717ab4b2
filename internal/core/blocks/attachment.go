package blocks

import (
	"fmt"
	"strings"
)

// getString возвращает строковое значение ключа, если оно присутствует и
// непусто: legacy-поля вложений опциональны и могут содержать null.
func getString(attachment map[string]any, key string) (string, bool, error) {
	value, ok := attachment[key]
	if !ok || value == nil {
		return "", false, nil
	}
	s, err := checkString(key, value)
	if err != nil {
		return "", false, err
	}
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// RenderAttachment рендерит legacy-вложение Slack в Markdown.
//
// Slack рекомендует blocks даже внутри вложений; остальные поля здесь -
// устаревший формат, поддерживаемый параллельно.
// https://api.slack.com/reference/messaging/attachments
func RenderAttachment(attachment map[string]any) (string, error) {
	var pieces []string

	title, hasTitle, err := getString(attachment, "title")
	if err != nil {
		return "", err
	}
	if hasTitle {
		titleLink, hasTitleLink, err := getString(attachment, "title_link")
		if err != nil {
			return "", err
		}
		if hasTitleLink {
			if _, err := checkURL("title_link", titleLink); err != nil {
				return "", err
			}
			pieces = append(pieces, fmt.Sprintf("## [%s](%s)", title, titleLink))
		} else {
			pieces = append(pieces, "## "+title)
		}
	}

	pretext, hasPretext, err := getString(attachment, "pretext")
	if err != nil {
		return "", err
	}
	if hasPretext {
		pieces = append(pieces, pretext)
	}

	text, hasText, err := getString(attachment, "text")
	if err != nil {
		return "", err
	}
	if hasText {
		pieces = append(pieces, text)
	}

	if raw, ok := attachment["fields"]; ok {
		fieldsRaw, ok := raw.([]any)
		if !ok {
			return "", &ValidationError{Field: "fields", Reason: "is not a list"}
		}
		fields := make([]string, 0, len(fieldsRaw))
		for i, f := range fieldsRaw {
			field, ok := f.(map[string]any)
			if !ok {
				return "", &ValidationError{Field: fmt.Sprintf("fields[%d]", i), Reason: "is not a mapping"}
			}
			fieldTitle, hasFieldTitle, err := getString(field, "title")
			if err != nil {
				return "", err
			}
			fieldValue, hasFieldValue, err := getString(field, "value")
			if err != nil {
				return "", err
			}
			switch {
			case hasFieldTitle && hasFieldValue:
				fields = append(fields, fmt.Sprintf("*%s*: %s", fieldTitle, fieldValue))
			case hasFieldTitle:
				fields = append(fields, "*"+fieldTitle+"*")
			case hasFieldValue:
				fields = append(fields, fieldValue)
			}
		}
		// Поля склеиваются одиночными переводами строки в одну общую часть,
		// в отличие от остальных частей вложения.
		pieces = append(pieces, strings.Join(fields, "\n"))
	}

	if raw, ok := attachment["blocks"]; ok && raw != nil {
		blocksRaw, ok := raw.([]any)
		if !ok {
			return "", &ValidationError{Field: "blocks", Reason: "is not a list"}
		}
		for i, b := range blocksRaw {
			block, ok := b.(map[string]any)
			if !ok {
				return "", &ValidationError{Field: fmt.Sprintf("blocks[%d]", i), Reason: "is not a mapping"}
			}
			rendered, err := RenderBlock(block)
			if err != nil {
				return "", err
			}
			pieces = append(pieces, rendered)
		}
	}

	imageURL, hasImageURL, err := getString(attachment, "image_url")
	if err != nil {
		return "", err
	}
	if hasImageURL {
		if _, err := checkURL("image_url", imageURL); err != nil {
			return "", err
		}
		pieces = append(pieces, fmt.Sprintf("[](%s)", imageURL))
	}

	footer, hasFooter, err := getString(attachment, "footer")
	if err != nil {
		return "", err
	}
	if hasFooter {
		pieces = append(pieces, footer)
	}

	if ts, ok := attachment["ts"]; ok && ts != nil {
		// Unix-время рендерится inline-токеном для локализованного
		// отображения на клиенте.
		seconds, err := checkInt("ts", ts)
		if err != nil {
			return "", err
		}
		pieces = append(pieces, fmt.Sprintf("<time:%d>", seconds))
	}

	return joinPieces(pieces), nil
}
