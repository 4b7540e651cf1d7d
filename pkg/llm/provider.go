// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого AI-сервиса.
type Provider interface {
	// Generate отправляет историю сообщений и возвращает ответ модели.
	Generate(ctx context.Context, messages []Message) (Message, error)
}
