package services

import "errors"

// Сервисные ошибки. Контроллеры переводят их в HTTP-статусы:
// ErrPermissionDenied — 403, ошибки уникальности и валидации — 422.
var (
	ErrPermissionDenied = errors.New("у вас нет прав доступа")
	ErrUserExists       = errors.New("пользователь с таким именем или email уже существует")
	ErrUsernameTaken    = errors.New("пользователь с таким именем уже существует")
	ErrEmailTaken       = errors.New("пользователь с таким email уже существует")
	ErrSelfAction       = errors.New("невозможно отправить заявку самому себе")
	ErrNotFriends       = errors.New("действие доступно только друзьям")
	ErrWrongPassword    = errors.New("проверьте пароль")
	ErrFileType         = errors.New("недопустимый тип файла")
)
