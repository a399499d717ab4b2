// Package mrkdwn конвертирует inline-разметку Slack (mrkdwn) в разметку Zulip.
//
// Все функции пакета чистые: без состояния, без I/O, безопасны для
// одновременного вызова из любого числа горутин.
package mrkdwn

import (
	"regexp"
	"strings"

	"slack-chat-converter/internal/domain"
)

// В Slack маркеры форматирования не срабатывают внутри слова (~stri~ke не
// зачеркивает), а в Zulip срабатывают. Поэтому каждое регулярное выражение
// требует границу слова с обеих сторон от маркера.
//
// Роли групп захвата (одинаковы для всех трех видов форматирования):
//
//	(1) граница перед маркером: начало текста или символ из фиксированного
//	    класса пробелов/пунктуации;
//	(2) открывающий маркер;
//	(3) тело: печатаемые ASCII без самого маркера, плюс длинное тире;
//	(4) хвост тела: как (3), но без длинного тире и минимум один символ,
//	    что исключает пустое тело;
//	(5) закрывающий маркер;
//	(6) граница после маркера, симметричная группе (1).
var (
	slackBoldRegex = regexp.MustCompile(
		`(^|[ -(]|[+-/]|[:-?]|\{|\[|\||\^|~)` +
			`(\*)` +
			`([ -)+-~—]*)([ -)+-~]+)` +
			`(\*)` +
			`($|[ -']|[+-/]|[:-?]|\}|\]|\||\^|~)`)

	slackStrikethroughRegex = regexp.MustCompile(
		`(^|[ -(]|[+-/]|[:-?]|\*|_|\{|\[|\||\^)` +
			`(~)` +
			`([ -)+-}—]*)([ -)+-}]+)` +
			`(~)` +
			`($|[ -']|[+-/]|[:-?]|\*|_|\}|\]|\||\^)`)

	slackItalicRegex = regexp.MustCompile(
		`(^|[ -*]|[+-/]|[:-?]|\{|\[|\||\^|~)` +
			`(_)` +
			"([ -^`-~—]*)([ -^`-~]+)" +
			`(_)` +
			`($|[ -']|[+-/]|[:-?]|\}|\]|\||\^|~)`)
)

// convertMarkdownSyntax переписывает один вид inline-форматирования:
//
//  1. зачеркивание: '~strike~' Slack -> '~~strike~~' Zulip;
//  2. жирный:       '*bold*'   Slack -> '**bold**'   Zulip;
//  3. курсив:       '_italic_' Slack -> '*italic*'   Zulip.
//
// Замена выполняется по точной подстроке совпадения, а не по индексам.
// Если та же подстрока встречается в тексте еще раз, она тоже будет
// переписана. Это известное ограничение, сохраняемое намеренно.
func convertMarkdownSyntax(text string, markupRegex *regexp.Regexp, zulipKeyword string) string {
	for _, match := range markupRegex.FindAllStringSubmatch(text, -1) {
		convertedToken := match[1] + zulipKeyword + match[3] + match[4] + zulipKeyword + match[6]
		text = strings.ReplaceAll(text, match[0], convertedToken)
	}
	return text
}

// ConvertWorkspaceMentions сводит все три варианта упоминания всего
// workspace к одной wildcard-форме Zulip. Повторный вызов на уже
// сконвертированном тексте ничего не меняет.
func ConvertWorkspaceMentions(text string) string {
	text = strings.ReplaceAll(text, "<!everyone>", "@**all**")
	text = strings.ReplaceAll(text, "<!channel>", "@**all**")
	text = strings.ReplaceAll(text, "<!here>", "@**all**")
	return text
}

// ConvertChannelMentions переписывает упоминания каналов вида
// '<#C5Z73A7RA|general>' в '#**general**'. Заменяются только точные
// вхождения: токен с другим регистром или искаженный остается как есть.
func ConvertChannelMentions(text string, channels domain.ChannelMap) string {
	for name, ids := range channels {
		text = strings.ReplaceAll(text, "<#"+ids.SlackID+"|"+name+">", "#**"+name+"**")
	}
	return text
}
