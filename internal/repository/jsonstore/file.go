package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// load читает весь файл хранилища в v.
// Отсутствующий или битый файл приводит к пустому значению по умолчанию,
// но порча файла обязательно попадает в лог — молча её не глотаем.
func load(path string, v any, log logger.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("store %s is unreadable, falling back to empty: %v", path, err)
		}
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warnf("store %s is corrupt, falling back to empty: %v", path, err)
	}
}

// save атомарно заменяет файл хранилища: запись во временный файл, затем rename.
// Читатель никогда не увидит наполовину записанный файл.
func save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
