package mrkdwn

import (
	"fmt"
	"regexp"
	"strings"
)

// Роли групп захвата:
//
//	(1)  '<';
//	(2)  протокол с www, если есть;
//	(3)  имя домена, (4) - его внутреннее повторение через точку или дефис;
//	(5)  точка перед зоной;
//	(6)  зона и необязательный порт, (7) - сам порт;
//	(8)  путь, если есть;
//	(9)  одиночная вертикальная черта;
//	(10) текст псевдонима после черты;
//	(11) '>'.
//
// Переписывание работает по полному совпадению (группа 0), поэтому группы
// черты и псевдонима здесь только фиксируют грамматику.
var slackLinkRegex = regexp.MustCompile(
	`(<)` +
		`(http:\/\/www\.|https:\/\/www\.|http:\/\/|https:\/\/|ftp:\/\/)?` +
		`([a-z0-9]+([\-\.][a-z0-9]+)*)` +
		`(\.)([a-z]{2,63}(:[0-9]{1,5})?)` +
		`(\/[^>]*)?` +
		`(\|)?(?:\|([^>]+))?` +
		`(>)`)

// Роли групп захвата:
//
//	(1) адрес вместе с префиксом 'mailto:', если он был;
//	(2) сам префикс 'mailto:';
//	(3) адрес, (4) - его доменная часть;
//	(5) вертикальная черта;
//	(6) повторение адреса после черты, (7) - его доменная часть.
var slackMailtoRegex = regexp.MustCompile(
	`<((mailto:)?` +
		`([\w\.-]+@[\w\.-]+(\.[\w]+)+))` +
		`(\|)?` +
		`([\w\.-]+@[\w\.-]+(\.[\w]+)+)?` +
		`>`)

// ConvertLinkFormat переписывает гиперссылки Slack в формат Zulip:
//
//  1. '<https://foo.com>' -> 'https://foo.com';
//  2. '<https://foo.com|foo>' -> '[foo](https://foo.com)'.
//
// Внутренность скобок делится по первой вертикальной черте. Вторым
// значением возвращается признак того, что хотя бы одна ссылка найдена.
func ConvertLinkFormat(text string) (string, bool) {
	hasLink := false
	for _, match := range slackLinkRegex.FindAllString(text, -1) {
		convertedText := strings.ReplaceAll(strings.ReplaceAll(match, ">", ""), "<", "")
		hasLink = true
		splitText := strings.SplitN(convertedText, "|", 2)
		rewrittenText := convertedText
		if len(splitText) == 2 {
			rewrittenText = fmt.Sprintf("[%s](%s)", splitText[1], splitText[0])
		}
		text = strings.ReplaceAll(text, match, rewrittenText)
	}
	return text, hasLink
}

// ConvertMailtoFormat переписывает '<mailto:foo@foo.com>' в 'mailto:foo@foo.com'.
// Псевдоним после вертикальной черты, в отличие от обычных ссылок,
// отбрасывается: всегда остается только канонический адрес из группы (1).
func ConvertMailtoFormat(text string) (string, bool) {
	hasMailto := false
	for _, match := range slackMailtoRegex.FindAllStringSubmatch(text, -1) {
		hasMailto = true
		text = strings.ReplaceAll(text, match[0], match[1])
	}
	return text, hasMailto
}
