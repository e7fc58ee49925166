package value

import (
	"fmt"
	"regexp"
	"strconv"
)

// Границы групп счастливого числа NN-NN-NNNN (включительно).
const (
	LuckyFirstMin  = 10
	LuckyFirstMax  = 99
	LuckySecondMin = 10
	LuckySecondMax = 99
	LuckyThirdMin  = 1000
	LuckyThirdMax  = 9999
)

var luckyNumberPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`) //nolint:gochecknoglobals

// IntNer — источник случайности; *rand.Rand из math/rand/v2 подходит.
type IntNer interface {
	IntN(n int) int
}

// LuckyNumber не хранится и ни к какой фразе не привязан.
type LuckyNumber struct {
	First  int
	Second int
	Third  int
}

func NewLuckyNumber(rnd IntNer) LuckyNumber {
	return LuckyNumber{
		First:  between(rnd, LuckyFirstMin, LuckyFirstMax),
		Second: between(rnd, LuckySecondMin, LuckySecondMax),
		Third:  between(rnd, LuckyThirdMin, LuckyThirdMax),
	}
}

func ParseLuckyNumber(s string) (LuckyNumber, error) {
	m := luckyNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return LuckyNumber{}, fmt.Errorf("lucky number %q: invalid format", s)
	}

	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	third, _ := strconv.Atoi(m[3])

	n := LuckyNumber{First: first, Second: second, Third: third}
	if !n.Valid() {
		return LuckyNumber{}, fmt.Errorf("lucky number %q: group out of range", s)
	}

	return n, nil
}

func (n LuckyNumber) Valid() bool {
	return n.First >= LuckyFirstMin && n.First <= LuckyFirstMax &&
		n.Second >= LuckySecondMin && n.Second <= LuckySecondMax &&
		n.Third >= LuckyThirdMin && n.Third <= LuckyThirdMax
}

func (n LuckyNumber) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", n.First, n.Second, n.Third)
}

func between(rnd IntNer, lo, hi int) int {
	return rnd.IntN(hi-lo+1) + lo
}
