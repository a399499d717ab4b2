package mrkdwn

import (
	"testing"

	"slack-chat-converter/internal/domain"
)

func TestConvertMarkdownSyntax(t *testing.T) {
	t.Run("Жирный текст", func(t *testing.T) {
		got := convertMarkdownSyntax("*foo*", slackBoldRegex, "**")
		if got != "**foo**" {
			t.Errorf("Ожидалось '**foo**', получено '%s'", got)
		}
	})

	t.Run("Жирный текст внутри предложения", func(t *testing.T) {
		got := convertMarkdownSyntax("this is a *bold* word", slackBoldRegex, "**")
		if got != "this is a **bold** word" {
			t.Errorf("Ожидалось 'this is a **bold** word', получено '%s'", got)
		}
	})

	t.Run("Маркер внутри слова не срабатывает", func(t *testing.T) {
		got := convertMarkdownSyntax("*foo*bar", slackBoldRegex, "**")
		if got != "*foo*bar" {
			t.Errorf("Текст без границы слова должен остаться без изменений, получено '%s'", got)
		}
	})

	t.Run("Зачеркивание", func(t *testing.T) {
		got := convertMarkdownSyntax("~strike~", slackStrikethroughRegex, "~~")
		if got != "~~strike~~" {
			t.Errorf("Ожидалось '~~strike~~', получено '%s'", got)
		}
	})

	t.Run("Курсив переходит в одиночную звездочку", func(t *testing.T) {
		got := convertMarkdownSyntax("_italic_", slackItalicRegex, "*")
		if got != "*italic*" {
			t.Errorf("Ожидалось '*italic*', получено '%s'", got)
		}
	})

	t.Run("Несколько участков в одном сообщении", func(t *testing.T) {
		got := convertMarkdownSyntax("*a* and *b*", slackBoldRegex, "**")
		if got != "**a** and **b**" {
			t.Errorf("Ожидалось '**a** and **b**', получено '%s'", got)
		}
	})

	t.Run("Текст без маркеров не меняется", func(t *testing.T) {
		input := "plain text with no markers at all"
		if got := convertMarkdownSyntax(input, slackBoldRegex, "**"); got != input {
			t.Errorf("Жирный: ожидался исходный текст, получено '%s'", got)
		}
		if got := convertMarkdownSyntax(input, slackStrikethroughRegex, "~~"); got != input {
			t.Errorf("Зачеркивание: ожидался исходный текст, получено '%s'", got)
		}
		if got := convertMarkdownSyntax(input, slackItalicRegex, "*"); got != input {
			t.Errorf("Курсив: ожидался исходный текст, получено '%s'", got)
		}
	})
}

func TestConvertWorkspaceMentions(t *testing.T) {
	t.Run("Все три варианта сводятся к @**all**", func(t *testing.T) {
		for _, input := range []string{"<!everyone>", "<!channel>", "<!here>"} {
			if got := ConvertWorkspaceMentions(input); got != "@**all**" {
				t.Errorf("Для '%s' ожидалось '@**all**', получено '%s'", input, got)
			}
		}
	})

	t.Run("Идемпотентность", func(t *testing.T) {
		once := ConvertWorkspaceMentions("ping <!channel> now")
		twice := ConvertWorkspaceMentions(once)
		if once != twice {
			t.Errorf("Повторный вызов изменил текст: '%s' != '%s'", once, twice)
		}
	})
}

func TestConvertChannelMentions(t *testing.T) {
	channels := domain.ChannelMap{
		"general": {SlackID: "C5Z73A7RA", ZulipID: 137},
		"random":  {SlackID: "C6A91BXQW", ZulipID: 138},
	}

	t.Run("Точное вхождение заменяется", func(t *testing.T) {
		got := ConvertChannelMentions("see <#C5Z73A7RA|general> and <#C6A91BXQW|random>", channels)
		if got != "see #**general** and #**random**" {
			t.Errorf("Ожидалось 'see #**general** and #**random**', получено '%s'", got)
		}
	})

	t.Run("Искаженный токен не трогается", func(t *testing.T) {
		input := "see <#C5Z73A7RA|General> or <#WRONG|general>"
		if got := ConvertChannelMentions(input, channels); got != input {
			t.Errorf("Частичное совпадение не должно переписываться, получено '%s'", got)
		}
	})
}
