package mrkdwn

import "testing"

func TestConvertLinkFormat(t *testing.T) {
	t.Run("Голая ссылка разворачивается из скобок", func(t *testing.T) {
		got, hasLink := ConvertLinkFormat("<http://journals.plos.org/plosone/article>")
		if got != "http://journals.plos.org/plosone/article" {
			t.Errorf("Ожидался голый URL, получено '%s'", got)
		}
		if !hasLink {
			t.Error("Ожидался hasLink=true")
		}
	})

	t.Run("Ссылка с псевдонимом становится markdown-ссылкой", func(t *testing.T) {
		got, hasLink := ConvertLinkFormat("<http://chat.zulip.org/help/logging-in|Help logging in to CZO>")
		if got != "[Help logging in to CZO](http://chat.zulip.org/help/logging-in)" {
			t.Errorf("Ожидалась markdown-ссылка, получено '%s'", got)
		}
		if !hasLink {
			t.Error("Ожидался hasLink=true")
		}
	})

	t.Run("Ссылка без протокола", func(t *testing.T) {
		got, hasLink := ConvertLinkFormat("go to <foo.com|foo>")
		if got != "go to [foo](foo.com)" {
			t.Errorf("Ожидалось 'go to [foo](foo.com)', получено '%s'", got)
		}
		if !hasLink {
			t.Error("Ожидался hasLink=true")
		}
	})

	t.Run("Текст без ссылок не меняется", func(t *testing.T) {
		input := "nothing to see here"
		got, hasLink := ConvertLinkFormat(input)
		if got != input {
			t.Errorf("Ожидался исходный текст, получено '%s'", got)
		}
		if hasLink {
			t.Error("Ожидался hasLink=false")
		}
	})

	t.Run("Несколько ссылок в одном сообщении", func(t *testing.T) {
		got, hasLink := ConvertLinkFormat("<https://foo.com> and <https://bar.org|bar>")
		if got != "https://foo.com and [bar](https://bar.org)" {
			t.Errorf("Ожидались обе переписанные ссылки, получено '%s'", got)
		}
		if !hasLink {
			t.Error("Ожидался hasLink=true")
		}
	})
}

func TestConvertMailtoFormat(t *testing.T) {
	t.Run("mailto разворачивается из скобок", func(t *testing.T) {
		got, hasMailto := ConvertMailtoFormat("<mailto:foo@foo.com>")
		if got != "mailto:foo@foo.com" {
			t.Errorf("Ожидалось 'mailto:foo@foo.com', получено '%s'", got)
		}
		if !hasMailto {
			t.Error("Ожидался hasMailto=true")
		}
	})

	t.Run("Адрес без префикса mailto", func(t *testing.T) {
		got, hasMailto := ConvertMailtoFormat("<foo@foo.com>")
		if got != "foo@foo.com" {
			t.Errorf("Ожидалось 'foo@foo.com', получено '%s'", got)
		}
		if !hasMailto {
			t.Error("Ожидался hasMailto=true")
		}
	})

	t.Run("Псевдоним после черты отбрасывается", func(t *testing.T) {
		// Асимметрия с обычными ссылками сохраняется: остается
		// только канонический адрес.
		got, _ := ConvertMailtoFormat("<mailto:foo@foo.com|foo@foo.com>")
		if got != "mailto:foo@foo.com" {
			t.Errorf("Ожидалось 'mailto:foo@foo.com', получено '%s'", got)
		}
	})

	t.Run("Текст без адресов не меняется", func(t *testing.T) {
		input := "no emails in this text"
		got, hasMailto := ConvertMailtoFormat(input)
		if got != input || hasMailto {
			t.Errorf("Ожидался исходный текст и hasMailto=false, получено ('%s', %v)", got, hasMailto)
		}
	})
}
