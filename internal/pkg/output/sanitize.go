package output

import (
	"regexp"
	"strings"
	"unicode"
)

// ansiPattern покрывает CSI последовательности и одиночные ESC-коды.
var ansiPattern = regexp.MustCompile(`\x1b(\[[0-9;?]*[a-zA-Z]|\][^\x07]*\x07|[a-zA-Z])`)

// TerminalSafe очищает значение для вывода в терминал:
// удаляет ANSI escape последовательности и управляющие символы.
// Значения приходят с сервера и могут содержать враждебные
// последовательности, переключающие режимы терминала.
func TerminalSafe(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CSVSafe экранирует значение от формульных инъекций в табличных
// процессорах: ячейка, начинающаяся с =, +, - или @, получает
// префикс одинарной кавычки и перестаёт исполняться как формула.
func CSVSafe(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}
