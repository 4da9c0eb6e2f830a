package gitea

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListPackages возвращает пакеты владельца (пользователя или организации).
// pkgType — фильтр по типу реестра (pypi, container, npm, generic, ...),
// query — фильтр по подстроке имени; пустые значения означают отсутствие фильтра.
func (c *Client) ListPackages(ctx context.Context, owner, pkgType, query string) ([]Package, error) {
	o, err := EncodeSegment(owner)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if pkgType != "" {
		q.Set("type", pkgType)
	}
	if query != "" {
		q.Set("q", query)
	}
	return listAll[Package](ctx, c, c.apiURL("packages/"+o), q, "", "получение пакетов")
}

// GetPackageVersion возвращает детали версии пакета вместе со списком файлов.
func (c *Client) GetPackageVersion(ctx context.Context, owner, pkgType, name, version string) (*PackageVersion, error) {
	path, err := packagePath(owner, pkgType, name, version)
	if err != nil {
		return nil, err
	}

	body, status, err := c.send(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(status, body, "получение версии пакета"); err != nil {
		return nil, err
	}
	var pv PackageVersion
	if err := decodeInto(body, &pv, "получение версии пакета"); err != nil {
		return nil, err
	}

	files, err := listAll[PackageFile](ctx, c, c.apiURL(path+"/files"), nil, "", "получение файлов пакета")
	if err != nil {
		return nil, err
	}
	pv.Files = files
	return &pv, nil
}

// DeletePackageVersion удаляет версию пакета.
//
// Версии pypi пакетов отклоняются до любого запроса: реестр PyPI
// строит simple-индекс по всем версиям, и удаление отдельной версии
// оставляет у клиентов pip битые ссылки. Тип сравнивается без учёта регистра.
func (c *Client) DeletePackageVersion(ctx context.Context, owner, pkgType, name, version string) error {
	if strings.EqualFold(pkgType, "pypi") {
		return NewValidationError("type",
			"удаление отдельной версии pypi пакета не поддерживается: simple-индекс реестра останется с битыми ссылками")
	}

	path, err := packagePath(owner, pkgType, name, version)
	if err != nil {
		return err
	}
	body, status, err := c.send(ctx, http.MethodDelete, c.apiURL(path), nil)
	if err != nil {
		return err
	}
	return c.checkStatus(status, body, "удаление версии пакета")
}

// RegistryURL возвращает URL реестра пакетов данного типа для владельца:
// {instance}/api/packages/{owner}/{type}. Это базовый URL, который
// настраивается в клиентах реестров (pip, npm, docker).
func (c *Client) RegistryURL(owner, pkgType string) (string, error) {
	o, err := EncodeSegment(owner)
	if err != nil {
		return "", err
	}
	t, err := EncodeSegment(pkgType)
	if err != nil {
		return "", err
	}
	return c.packagesURLFor(o + "/" + t), nil
}

// packagePath строит путь packages/{owner}/{type}/{name}/{version}
// с кодированием каждого сегмента.
func packagePath(owner, pkgType, name, version string) (string, error) {
	segments := []struct {
		field, value string
	}{
		{"owner", owner},
		{"type", pkgType},
		{"name", name},
		{"version", version},
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, "packages")
	for _, seg := range segments {
		if seg.value == "" {
			return "", NewValidationError(seg.field, "значение не может быть пустым")
		}
		enc, err := EncodeSegment(seg.value)
		if err != nil {
			return "", err
		}
		parts = append(parts, enc)
	}
	return strings.Join(parts, "/"), nil
}
