package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/teax/internal/pkg/apperrors"
)

// Login представляет один логин из config.yml клиента tea.
type Login struct {
	// Name — имя логина для выбора через TEAX_LOGIN
	Name string `yaml:"name"`
	// URL — адрес инстанса Gitea (нормализуется при создании клиента)
	URL string `yaml:"url"`
	// Token — токен доступа. Никогда не попадает в логи и сообщения ошибок.
	Token string `yaml:"token"`
	// Default — признак логина по умолчанию
	Default bool `yaml:"default"`
	// User — имя пользователя токена; нужно для операций с basic auth
	User string `yaml:"user"`
	// Insecure — отключение проверки сертификатов для этого логина
	Insecure bool `yaml:"insecure"`
}

// TeaConfig представляет содержимое config.yml клиента tea.
// Файл разделяется с tea, поэтому незнакомые ключи игнорируются.
type TeaConfig struct {
	Logins []Login `yaml:"logins"`
}

// teaConfigSchema — JSON Schema структуры config.yml.
// Валидация идёт до декодирования в типы: сообщения схемы указывают
// на расположение проблемы в документе и не содержат значений полей,
// поэтому token не утекает в текст ошибки.
const teaConfigSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["logins"],
  "properties": {
    "logins": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "url", "token"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "url": {"type": "string", "minLength": 1},
          "token": {"type": "string", "minLength": 1},
          "default": {"type": "boolean"},
          "user": {"type": "string"},
          "insecure": {"type": "boolean"}
        }
      }
    }
  }
}`

// DefaultConfigPath возвращает стандартный путь к config.yml tea:
// {user config dir}/tea/config.yml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось определить каталог конфигурации пользователя", err)
	}
	return filepath.Join(dir, "tea", "config.yml"), nil
}

// LoadTeaConfig читает и валидирует config.yml tea по заданному пути.
//
// Ошибки парсинга и валидации не включают содержимое файла:
// исходный текст ошибки парсера может содержать значение token.
func LoadTeaConfig(path string) (*TeaConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- путь задаёт пользователь
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось прочитать файл конфигурации tea: %s", path), err)
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("файл %s не является корректным YAML", path), nil)
	}

	if err := validateTeaConfig(tree); err != nil {
		return nil, err
	}

	cfg := &TeaConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("не удалось декодировать файл %s", path), nil)
	}
	return cfg, nil
}

// validateTeaConfig проверяет дерево документа по teaConfigSchema.
func validateTeaConfig(tree any) error {
	compiler := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(teaConfigSchema))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"внутренняя ошибка: схема config.yml не разобрана", err)
	}
	if err := compiler.AddResource("tea-config.schema.json", doc); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"внутренняя ошибка: схема config.yml не зарегистрирована", err)
	}
	schema, err := compiler.Compile("tea-config.schema.json")
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"внутренняя ошибка: схема config.yml не скомпилирована", err)
	}

	if err := schema.Validate(normalizeYAML(tree)); err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"config.yml не соответствует ожидаемой структуре", err)
	}
	return nil
}

// normalizeYAML приводит дерево yaml.v3 к формам, ожидаемым валидатором
// JSON Schema: map[string]any ключи и числовые значения как есть.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return v
	}
}

// SelectLogin выбирает логин из конфигурации.
//
// Непустое name выбирает логин по имени; отсутствие — ошибка с перечнем
// доступных имён (имена не секретны, токены в сообщение не попадают).
// Пустое name выбирает логин с default: true, а при его отсутствии —
// единственный логин файла.
func SelectLogin(cfg *TeaConfig, name string) (*Login, error) {
	if len(cfg.Logins) == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrLoginNotFound,
			"в config.yml tea не настроено ни одного логина", nil)
	}

	if name != "" {
		for i := range cfg.Logins {
			if cfg.Logins[i].Name == name {
				return &cfg.Logins[i], nil
			}
		}
		return nil, apperrors.NewAppError(apperrors.ErrLoginNotFound,
			fmt.Sprintf("логин %q не найден; доступны: %s", name, loginNames(cfg)), nil)
	}

	for i := range cfg.Logins {
		if cfg.Logins[i].Default {
			return &cfg.Logins[i], nil
		}
	}
	if len(cfg.Logins) == 1 {
		return &cfg.Logins[0], nil
	}
	return nil, apperrors.NewAppError(apperrors.ErrLoginNotFound,
		fmt.Sprintf("логин по умолчанию не настроен; укажите один из: %s", loginNames(cfg)), nil)
}

// loginNames возвращает отсортированный перечень имён логинов.
func loginNames(cfg *TeaConfig) string {
	names := make([]string, 0, len(cfg.Logins))
	for _, l := range cfg.Logins {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
