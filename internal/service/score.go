package service

import "fmt"

// scoreCategories holds one message per tenth of the correct-answer share,
// from the lowest band (0, 0.1] up to (0.9, 1.0].
var scoreCategories = [10]string{
	"Салли сжимает кулаки. Вы ему не нравитесь. Ваши знания оставляют желать лучшего.",
	"Себастьян Ашер потирает руки. С такими знаниями вы станете легкой добычей в 'Биохроме'!",
	"Я уверен, ты можешь лучше! Соберись! (С)Салли Браун",
	"Неплохо. Во Внешних землях вы протянули бы... пару недель.",
	"Весьма неплохо! С таким багажом знаний вы одолеете любого мутанта!",
	"Впечатляет! Знаний достаточно, чтобы выжить в 'Биохроме'.",
	"Волчья стая даже пробовать не станет. Вы серьезный противник, в пустыне вас не догнать!",
	"Питер молча хлопает вам. С такими знаниями вы станете важной частью команды!",
	"Гениально! Вы точно не обладаете ученой степень по постапокалипсису?",
	"Вы - ходячая энциклопедия. Даже Маркус знает меньше!",
}

// EvaluateScore maps a final score to its category message.
// Bands have inclusive upper bounds; a score of zero falls into the lowest band.
func EvaluateScore(score, total int) (string, error) {
	if total <= 0 {
		return "", fmt.Errorf("%w: total questions must be positive, got %d", ErrInvalidInput, total)
	}
	if score < 0 || score > total {
		return "", fmt.Errorf("%w: score %d out of range [0, %d]", ErrInvalidInput, score, total)
	}

	return scoreCategories[scoreBand(score, total)], nil
}

// scoreBand returns the zero-based band of score/total: the smallest k in 1..10
// with score/total <= k/10, minus one. Integer math keeps the boundaries exact.
func scoreBand(score, total int) int {
	k := (10*score + total - 1) / total
	if k < 1 {
		k = 1
	}
	if k > len(scoreCategories) {
		k = len(scoreCategories)
	}
	return k - 1
}
