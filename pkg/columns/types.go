// Package columns выводит роли колонок вендорской таблицы.
//
// Вендоры называют колонки как попало ("Image File 1", "Lifestyle Shot",
// "Spec PDF"), поэтому роли определяются в два прохода: по имени колонки
// (взвешенные лексиконы) и по содержимому (расширения файлов в семплах).
// Контентные улики важнее именных.
package columns

// Role — выведенный семантический тип колонки.
type Role string

const (
	RoleSKU   Role = "sku"
	RoleImage Role = "image"
	RolePDF   Role = "pdf"
	RoleVideo Role = "video"
	RoleURL   Role = "url"
	RoleNone  Role = "none"
)

// Profile — результат классификации одной колонки.
//
// Набор профилей вычисляется один раз на выбор листа/заголовка,
// правится оператором (keep/remove/retype) и замораживается
// перед генерацией. Порядок подтверждённых профилей определяет,
// какая картинка строки станет main_product_image.
type Profile struct {
	Name       string   // Имя колонки как в файле
	Samples    []string // До 30 непустых значений
	Role       Role
	MediaType  string // Категория для media записей: lifestyle, angle, ...
	Confidence int    // 0-100
	Evidence   string // Человекочитаемое объяснение решения
}

// Rejected — колонка с именным совпадением, но без подтверждающего
// содержимого. Не отбрасывается молча: оператор может вернуть её руками.
type Rejected struct {
	Name   string
	Reason string
}
