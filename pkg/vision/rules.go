package vision

// Порог уверенности: всё ниже уходит на Stage 2.
const ConfidenceThreshold = 65

// heuristicRule — одно правило решающего списка.
type heuristicRule struct {
	label      Label
	confidence int
	match      func(Signals) bool
}

// decisionList — упорядоченный решающий список Stage 1.
// Первое сработавшее правило выигрывает, порядок значим:
// dimension проверяется ДО informational, потому что размерные
// чертежи тоже набирают текстовые блоки.
var decisionList = []heuristicRule{
	// 1. Свотч: почти нет деталей, <=4 цветов, фон не белый
	{LabelSwatch, 90, func(s Signals) bool {
		return s.UniqueColors <= 4 && s.GrayStd < 20 && s.WhitePct < 75
	}},
	// 2. Товар на белом: светлое окружение, тёмный центр (объект), мало текста
	{LabelMain, 88, func(s Signals) bool {
		return s.LightPct > 55 && s.CenterLight < 45 && s.TextBlocks < 25
	}},
	// 3. Размерный чертёж: почти белый фон, бедная палитра, геометрия границ
	{LabelDimension, 75, func(s Signals) bool {
		return s.LightPct > 75 && s.UniqueColors < 18 && s.EdgePct > 6 && s.TextBlocks > 10
	}},
	// 4. Инфографика: много текстовых блоков на светлом фоне
	{LabelInformational, 82, func(s Signals) bool {
		return s.TextBlocks > 35 && s.LightPct > 40
	}},
	// 5. Lifestyle: тёмная цветастая сцена со сложностью живого фото
	{LabelLifestyle, 78, func(s Signals) bool {
		return s.LightPct < 30 && s.UniqueColors > 15 && s.GrayStd > 30
	}},
}

// ClassifySignals прогоняет сигналы через решающий список.
//
// Если ни одно правило не сработало — возвращает (detail, 55):
// уверенность ниже порога, случай уйдёт на Stage 2.
func ClassifySignals(s Signals) (Label, int) {
	for _, r := range decisionList {
		if r.match(s) {
			return r.label, r.confidence
		}
	}
	return LabelDetail, 55
}
