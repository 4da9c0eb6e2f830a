package gitea

// pageFetcher получает одну страницу элементов.
// page нумеруется с 1, limit — размер страницы.
type pageFetcher[T any] func(page, limit int) ([]T, error)

// fetchAll накапливает элементы со всех страниц до естественного конца
// или до потолка maxPages.
//
// Нормальное завершение: страница вернула 0 элементов, либо вернула меньше
// limit (последняя страница; её элементы включаются в результат).
//
// Аварийное завершение: достигнут maxPages без естественного терминатора.
// Возвращается truncated=true; вызывающий обязан выдать нефатальное
// предупреждение с потолком страниц и количеством собранных элементов.
// Потолок ограничивает работу против сервера, который никогда
// не завершает пагинацию.
func fetchAll[T any](fetch pageFetcher[T], limit, maxPages int) ([]T, bool, error) {
	var items []T
	for page := 1; page <= maxPages; page++ {
		batch, err := fetch(page, limit)
		if err != nil {
			return nil, false, err
		}
		if len(batch) == 0 {
			return items, false, nil
		}
		items = append(items, batch...)
		if len(batch) < limit {
			return items, false, nil
		}
	}
	return items, true, nil
}
