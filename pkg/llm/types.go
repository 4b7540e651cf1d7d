// Базовые типы - универсальный язык общения с vision моделями.
package llm

// Role — роль участника диалога.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message — одно сообщение.
//
// Images — base64 data-uri или http ссылки; непустой срез превращает
// запрос в Vision запрос (MultiContent у OpenAI-совместимых API).
type Message struct {
	Role    Role
	Content string
	Images  []string
}
