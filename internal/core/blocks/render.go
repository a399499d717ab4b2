package blocks

import (
	"fmt"
	"strings"
)

// blockTypes - закрытое перечисление поддерживаемых значений дискриминатора.
// https://api.slack.com/reference/block-kit/blocks
var blockTypes = []string{"actions", "context", "divider", "header", "image", "input", "section"}

// RenderBlock рендерит один Block-Kit блок в Markdown.
//
// Интерактивные типы (actions, input) не имеют эквивалента на принимающей
// стороне и рендерятся в пустую строку. Нарушение схемы поля возвращается
// как *ValidationError.
func RenderBlock(block map[string]any) (string, error) {
	blockType, err := checkStringIn(blockTypes)("type", block["type"])
	if err != nil {
		return "", err
	}

	switch blockType {
	case "actions":
		// Не поддерживается.
		return "", nil
	case "context":
		elements, ok := block["elements"].([]any)
		if !ok || len(elements) == 0 {
			return "", nil
		}
		// Slack рисует эти части слева направо одной строкой мелкого текста.
		pieces := make([]string, 0, len(elements))
		for i, element := range elements {
			el, ok := element.(map[string]any)
			if !ok {
				return "", &ValidationError{Field: fmt.Sprintf("elements[%d]", i), Reason: "is not a mapping"}
			}
			elementType, err := checkStringIn([]string{"image", "mrkdwn", "plain_text"})(fmt.Sprintf("elements[%d].type", i), el["type"])
			if err != nil {
				return "", err
			}
			if elementType == "image" {
				piece, err := RenderBlockElement(el)
				if err != nil {
					return "", err
				}
				pieces = append(pieces, piece)
			} else {
				text, err := checkString(fmt.Sprintf("elements[%d].text", i), el["text"])
				if err != nil {
					return "", err
				}
				pieces = append(pieces, text)
			}
		}
		return joinPieces(pieces), nil
	case "divider":
		return "----", nil
	case "header":
		// Заголовки допускают только plain_text; mrkdwn внутри заголовка -
		// ошибка вызывающей стороны.
		header, err := checkTextBlock(true)("text", block["text"])
		if err != nil {
			return "", err
		}
		return "## " + header.Text, nil
	case "image":
		imageURL, err := checkURL("image_url", block["image_url"])
		if err != nil {
			return "", err
		}
		altText, err := checkString("alt_text", block["alt_text"])
		if err != nil {
			return "", err
		}
		if _, ok := block["title"]; ok {
			title, err := checkTextBlock(false)("title", block["title"])
			if err != nil {
				return "", err
			}
			altText = title.Text
		}
		return fmt.Sprintf("[%s](%s)", altText, imageURL), nil
	case "input":
		// Не поддерживается.
		return "", nil
	case "section":
		return renderSection(block)
	default:
		// Недостижимо: type уже сверен с перечислением.
		return "", nil
	}
}

func renderSection(block map[string]any) (string, error) {
	var pieces []string

	if _, ok := block["text"]; ok {
		text, err := checkTextBlock(false)("text", block["text"])
		if err != nil {
			return "", err
		}
		pieces = append(pieces, text.Text)
	}

	if accessory, ok := block["accessory"].(map[string]any); ok {
		piece, err := RenderBlockElement(accessory)
		if err != nil {
			return "", err
		}
		pieces = append(pieces, piece)
	}

	if _, ok := block["fields"]; ok {
		fieldsRaw, ok := block["fields"].([]any)
		if !ok {
			return "", &ValidationError{Field: "fields", Reason: "is not a list"}
		}
		fields := make([]textBlock, 0, len(fieldsRaw))
		for i, f := range fieldsRaw {
			field, err := checkTextBlock(false)(fmt.Sprintf("fields[%d]", i), f)
			if err != nil {
				return "", err
			}
			fields = append(fields, field)
		}
		if len(fields) == 1 {
			// Единственное поле выводится чуть аккуратнее, без таблицы.
			pieces = append(pieces, fields[0].Text)
		} else if len(fields) > 1 {
			pieces = append(pieces, renderFieldsTable(fields))
		}
	}

	return joinPieces(pieces), nil
}

// renderFieldsTable выводит поля секции двухколоночной таблицей без
// заголовка: Slack рисует их двумя колонками, но не таблицей с жирной
// шапкой, поэтому шапка вырожденная.
func renderFieldsTable(fields []textBlock) string {
	fieldText := make([]string, len(fields))
	for i, f := range fields {
		// Внутри ячейки таблицы невозможны переводы строки и
		// экранирование вертикальной черты; заменяем их пробелами.
		text := strings.ReplaceAll(f.Text, "\n", " ")
		text = strings.ReplaceAll(text, "|", " ")
		fieldText[i] = text
	}

	table := "| | |\n| - | - |\n"
	for i := 0; i < len(fieldText); i += 2 {
		if i+1 < len(fieldText) {
			table += fmt.Sprintf("| %s | %s |\n", fieldText[i], fieldText[i+1])
		} else {
			table += fmt.Sprintf("| %s | |\n", fieldText[i])
		}
	}
	return table
}

// RenderBlockElement рендерит элемент блока. Принимающая сторона не
// поддерживает интерактивные элементы, поэтому рендерятся только картинки;
// все остальные типы дают пустую строку.
// https://api.slack.com/reference/block-kit/block-elements
func RenderBlockElement(element map[string]any) (string, error) {
	elementType, err := checkString("type", element["type"])
	if err != nil {
		return "", err
	}
	if elementType != "image" {
		// Не поддерживается.
		return "", nil
	}
	imageURL, err := checkURL("image_url", element["image_url"])
	if err != nil {
		return "", err
	}
	altText, err := checkString("alt_text", element["alt_text"])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s](%s)", altText, imageURL), nil
}
