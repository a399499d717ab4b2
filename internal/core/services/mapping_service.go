package services

import (
	"slack-chat-converter/internal/domain"
	"slack-chat-converter/internal/ports"
)

// MappingServiceImpl реализует интерфейс MappingService.
//
// Числовые идентификаторы выделяются плотно, в порядке следования записей
// в экспорте, начиная с настроенных базовых значений. Это повторяет то,
// как проходы миграции пользователей и каналов нумеруют сущности на
// принимающей стороне.
type MappingServiceImpl struct {
	userIDBase    int64
	channelIDBase int64
}

// NewMappingService создает новый экземпляр MappingServiceImpl.
func NewMappingService(userIDBase, channelIDBase int64) ports.MappingService {
	return &MappingServiceImpl{userIDBase: userIDBase, channelIDBase: channelIDBase}
}

// BuildUserIDMap строит соответствие Slack ID пользователя числовому ID.
// Повторные записи с тем же ID пропускаются: выигрывает первая.
func (s *MappingServiceImpl) BuildUserIDMap(users []domain.SlackUser) domain.UserIDMap {
	userIDMap := make(domain.UserIDMap, len(users))
	next := s.userIDBase
	for _, user := range users {
		if user.ID == "" {
			continue
		}
		if _, exists := userIDMap[user.ID]; exists {
			continue
		}
		userIDMap[user.ID] = next
		next++
	}
	return userIDMap
}

// BuildChannelMap строит соответствие имени канала паре его идентификаторов.
// Имена каналов в пределах экспорта уникальны; повторная запись с тем же
// именем пропускается.
func (s *MappingServiceImpl) BuildChannelMap(channels []domain.SlackChannel) domain.ChannelMap {
	channelMap := make(domain.ChannelMap, len(channels))
	next := s.channelIDBase
	for _, channel := range channels {
		if channel.ID == "" || channel.Name == "" {
			continue
		}
		if _, exists := channelMap[channel.Name]; exists {
			continue
		}
		channelMap[channel.Name] = domain.ChannelIDs{SlackID: channel.ID, ZulipID: next}
		next++
	}
	return channelMap
}
