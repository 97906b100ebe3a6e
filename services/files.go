package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"linkup-backend/config"
)

// fileExtension возвращает расширение файла в нижнем регистре и
// признак, что оно входит в список допустимых.
func fileExtension(filename string) (string, bool) {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return "", false
	}
	extension := strings.ToLower(parts[len(parts)-1])
	return extension, config.AllowedExtensions[extension]
}

// saveUpload сохраняет загруженный файл в каталог статики, создавая
// его при необходимости.
func saveUpload(folder, filename string, file multipart.File) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, file)
	return err
}
