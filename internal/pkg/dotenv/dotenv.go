package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultFile = ".env"

// Load подгружает переменные из найденных файлов (по умолчанию .env).
// Отсутствующие файлы пропускаются, уже заданные переменные окружения
// не перезаписываются. Возвращает список прочитанных файлов.
func Load(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{defaultFile}
	}

	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("stat %s: %w", file, err)
		}

		if err := godotenv.Load(file); err != nil {
			return loaded, fmt.Errorf("load %s: %w", file, err)
		}
		loaded = append(loaded, file)
	}
	return loaded, nil
}
