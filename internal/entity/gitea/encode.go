package gitea

// EncodeSegment кодирует один сегмент пути URL.
//
// Percent-кодируется каждый символ вне unreserved-набора RFC 3986
// (ALPHA / DIGIT / "-" / "." / "_" / "~"), включая "/", "?" и "#".
// Это не даёт враждебному значению owner/repo/name выйти за пределы
// своего слота в пути запроса.
//
// url.PathEscape из stdlib здесь не подходит: он оставляет sub-delims
// ("$&+,;=" и т.п.) и двоеточие как есть, а ровно эти символы
// и составляют обходной класс.
//
// Вход, равный ровно "." или "..", отклоняется с ошибкой валидации
// (dot-segment traversal). Строки, лишь содержащие точки
// (".gitignore", "a.b.c", "test..file"), — допустимые сегменты.
func EncodeSegment(s string) (string, error) {
	if s == "." || s == ".." {
		return "", NewValidationError("segment", "dot-segment недопустим в пути")
	}

	const upperhex = "0123456789ABCDEF"
	var buf []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&0x0f])
	}
	return string(buf), nil
}

// isUnreserved сообщает, входит ли байт в unreserved-набор RFC 3986.
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
