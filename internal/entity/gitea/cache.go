package gitea

import "sync"

// nameCache — кэш разрешения человекочитаемых имён в числовые ID
// для одного семейства ресурсов (метки, вехи).
// Партиционирован по repoKey ("owner/repo").
//
// Для каждого repoKey хранится фильтр, под которым кэш был заполнен:
// запись доверяется для разрешения вех по title только если заполнена
// под фильтром "all"; записи, заполненные под более узким фильтром,
// считаются устаревшими для этой цели.
//
// Кэш локален для одной сессии и живёт не дольше неё. Для одной CLI
// сессии конкурентных мутаций нет; мьютекс сохраняет корректность,
// если вызывающий код выполняет команды конкурентно.
type nameCache struct {
	mu      sync.Mutex
	byRepo  map[string]map[string]int64
	filters map[string]string
}

// newNameCache создаёт пустой nameCache.
func newNameCache() *nameCache {
	return &nameCache{
		byRepo:  make(map[string]map[string]int64),
		filters: make(map[string]string),
	}
}

// refetchFunc загружает полный набор пар имя→ID для репозитория.
type refetchFunc func() (map[string]int64, error)

// ensure гарантирует, что кэш repoKey заполнен под фильтром wantFilter.
// Перезагружает полностью, если кэш отсутствует или заполнен под другим фильтром.
func (c *nameCache) ensure(repoKey, wantFilter string, refetch refetchFunc) error {
	c.mu.Lock()
	_, ok := c.byRepo[repoKey]
	filter := c.filters[repoKey]
	c.mu.Unlock()

	if ok && filter == wantFilter {
		return nil
	}
	return c.refresh(repoKey, wantFilter, refetch)
}

// refresh безусловно перезагружает кэш repoKey.
// Это единственная операция "полного обновления": политика
// "ровно одно обновление на промах" реализуется вызывающим кодом
// одним вызовом refresh после первой неудачной проверки.
func (c *nameCache) refresh(repoKey, wantFilter string, refetch refetchFunc) error {
	entries, err := refetch()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.byRepo[repoKey] = entries
	c.filters[repoKey] = wantFilter
	c.mu.Unlock()
	return nil
}

// lookup возвращает ID по имени, если запись есть в кэше.
func (c *nameCache) lookup(repoKey, name string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.byRepo[repoKey]
	if !ok {
		return 0, false
	}
	id, ok := bucket[name]
	return id, ok
}

// populated сообщает, заполнен ли кэш repoKey, и под каким фильтром.
func (c *nameCache) populated(repoKey string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.byRepo[repoKey]
	return c.filters[repoKey], ok
}

// add добавляет пару имя→ID без инвалидации остального кэша.
// Хук мутации: создание метки/вехи сразу делает её разрешимой.
func (c *nameCache) add(repoKey, name string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.byRepo[repoKey]
	if !ok {
		bucket = make(map[string]int64)
		c.byRepo[repoKey] = bucket
	}
	bucket[name] = id
}

// rename переименовывает ключ: старое имя удаляется, новое вставляется.
// Хук мутации: изменение title вехи. Изменение только state
// отображение имён не трогает.
func (c *nameCache) rename(repoKey, oldName, newName string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.byRepo[repoKey]
	if !ok {
		return
	}
	delete(bucket, oldName)
	bucket[newName] = id
}

// remove удаляет пару имя→ID (хук мутации: удаление ресурса).
func (c *nameCache) remove(repoKey, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if bucket, ok := c.byRepo[repoKey]; ok {
		delete(bucket, name)
	}
}

// clear очищает кэш целиком. Вызывается при закрытии сессии;
// частичного состояния не остаётся.
func (c *nameCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byRepo = make(map[string]map[string]int64)
	c.filters = make(map[string]string)
}
