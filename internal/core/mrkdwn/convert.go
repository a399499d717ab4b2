package mrkdwn

import (
	"strings"

	"slack-chat-converter/internal/domain"
)

// Convert прогоняет текст одного сообщения через весь конвейер переписывания,
// строго в этом порядке:
//
//  1. жирный, зачеркивание, курсив;
//  2. упоминания всего workspace;
//  3. упоминания каналов;
//  4. упоминания пользователей (по токенам, см. ниже);
//  5. гиперссылки;
//  6. mailto.
//
// Для шага 4 текст делится по одиночному пробелу. Упоминание, приклеенное
// к пунктуации без пробела, не выделится в отдельный токен и не будет
// разрешено, а серии пробельных символов схлопнутся в один пробел при
// обратной склейке. Оба эффекта с потерями, но сохраняются ради
// бит-совместимости конвертации.
func Convert(text string, users []domain.SlackUser, channels domain.ChannelMap, userIDMap domain.UserIDMap) (domain.ConversionResult, error) {
	var mentionedUserIDs []int64

	text = convertMarkdownSyntax(text, slackBoldRegex, "**")
	text = convertMarkdownSyntax(text, slackStrikethroughRegex, "~~")
	text = convertMarkdownSyntax(text, slackItalicRegex, "*")

	text = ConvertWorkspaceMentions(text)
	text = ConvertChannelMentions(text, channels)

	tokens := strings.Split(text, " ")
	for i, token := range tokens {
		if !slackUserMentionRegex.MatchString(token) {
			continue
		}
		rewritten, userID, resolved, err := ResolveMention(token, users, userIDMap)
		if err != nil {
			return domain.ConversionResult{}, err
		}
		tokens[i] = rewritten
		if resolved {
			mentionedUserIDs = append(mentionedUserIDs, userID)
		}
	}
	text = strings.Join(tokens, " ")

	text, hasLink := ConvertLinkFormat(text)
	text, hasMailto := ConvertMailtoFormat(text)

	return domain.ConversionResult{
		Text:             text,
		MentionedUserIDs: mentionedUserIDs,
		HasLink:          hasLink || hasMailto,
	}, nil
}
