package models

import (
	"time"
)

// ValidationState отслеживает факт первой попытки отправить форму.
// Флаг взводится ровно один раз и не сбрасывается до конца сессии.
type ValidationState struct {
	hasSubmittedOnce bool
}

// MarkSubmitted взводит флаг и сообщает, произошёл ли переход именно сейчас.
func (s *ValidationState) MarkSubmitted() bool {
	if s.hasSubmittedOnce {
		return false
	}
	s.hasSubmittedOnce = true
	return true
}

func (s ValidationState) HasSubmittedOnce() bool {
	return s.hasSubmittedOnce
}

// FormSession - состояние одной формы: поля, фаза валидации и флаг
// незавершённой сборки документа. Мутации идут только через менеджер сессий.
type FormSession struct {
	ID        string
	DeviceID  string
	Fields    RawFieldInputs
	State     ValidationState
	Building  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}
