package mrkdwn

import (
	"errors"
	"fmt"
	"regexp"

	"slack-chat-converter/internal/domain"
)

// ErrUserIDMappingMissing - терминальная ошибка: пользователь найден в списке,
// но для его Slack ID нет числового ID принимающей стороны. Это означает, что
// проход миграции пользователей не согласован с проходом конвертации
// сообщений, и такую рассинхронизацию нельзя молча маскировать.
var ErrUserIDMappingMissing = errors.New("user id mapping missing")

// Роли групп захвата:
//
//	(1) '<@' - начало токена;
//	(2) Slack ID пользователя;
//	(3) вертикальная черта, присутствует не всегда;
//	(4) короткое имя, если черта присутствует;
//	(5) '>' - конец токена.
var slackUserMentionRegex = regexp.MustCompile(
	`(<@)` +
		`([a-zA-Z0-9]+)` +
		`(\|)?` +
		`([a-zA-Z0-9]+)?` +
		`(>)`)

// UserFullName возвращает отображаемое имя пользователя.
//
// Порядок разрешения (выигрывает первое подошедшее правило):
//
//  1. ключ deleted присутствует и явно равен false -> real_name, иначе name;
//  2. is_mirror_dummy -> profile.real_name, иначе name;
//  3. во всех остальных случаях -> name, даже если real_name заполнено.
//
// Третье правило выглядит неожиданно, но это осознанный приоритет,
// сохраняемый ради бит-совместимости конвертации.
func UserFullName(user domain.SlackUser) string {
	switch {
	case user.Deleted != nil && !*user.Deleted:
		if user.RealName != "" {
			return user.RealName
		}
		return user.Name
	case user.IsMirrorDummy:
		if user.Profile != nil && user.Profile.RealName != "" {
			return user.Profile.RealName
		}
		return user.Name
	default:
		return user.Name
	}
}

// ResolveMention разрешает один токен упоминания '<@slack_id|short_name>'
// по списку пользователей и переписывает его в '@**Full Name**'.
//
// Кандидат подходит, если его ID совпадает с ID из токена и либо короткое
// имя в токене отсутствует, либо совпадает с name кандидата. Список
// просматривается в порядке вызывающей стороны, выигрывает первый
// подошедший.
//
// Возвращает переписанный токен, числовой ID пользователя и признак того,
// что упоминание разрешено. Если пользователь не найден, токен возвращается
// без изменений. Если пользователь найден, но его нет в userIDMap,
// возвращается ErrUserIDMappingMissing.
func ResolveMention(token string, users []domain.SlackUser, userIDMap domain.UserIDMap) (string, int64, bool, error) {
	match := slackUserMentionRegex.FindStringSubmatch(token)
	if match == nil {
		// Токен прошел внешнюю проверку тем же регулярным выражением,
		// поэтому сюда можно попасть только при нарушении контракта вызова.
		return "", 0, false, fmt.Errorf("token %q does not match the user mention grammar", token)
	}

	slackID := match[2]
	shortName := match[4]

	for _, user := range users {
		if (user.ID == slackID && user.Name == shortName && shortName != "") ||
			(user.ID == slackID && shortName == "") {
			fullName := UserFullName(user)
			userID, ok := userIDMap[slackID]
			if !ok {
				return "", 0, false, fmt.Errorf("slack user %q: %w", slackID, ErrUserIDMappingMissing)
			}
			mention := "@**" + fullName + "**"
			return slackUserMentionRegex.ReplaceAllLiteralString(token, mention), userID, true, nil
		}
	}

	return token, 0, false, nil
}
