package models

// DefaultImagePath подставляется, когда форма не передала путь к логотипу.
const DefaultImagePath = "imgs/unitn.jpg"

// RawFieldInputs - сырые значения полей формы до валидации.
// Все поля опциональны, значения могут быть пустыми или из одних пробелов.
type RawFieldInputs struct {
	ActivityType string `json:"activity_type"`
	Language     string `json:"language"`
	Name         string `json:"name"`
	ID           string `json:"id"`
	Degree       string `json:"degree"`
	Course       string `json:"course"`
	Professor    string `json:"professor"`
	Date         string `json:"date"`
	City         string `json:"city"`
	ImagePath    string `json:"image_path"`
}

// FieldRecord - запись формы после валидации: значения обрезаны,
// вид занятия проверен, пустой image_path заменён значением по умолчанию.
type FieldRecord struct {
	ActivityType ActivityType `json:"activity_type"`
	Language     string       `json:"language"`
	Name         string       `json:"name"`
	ID           string       `json:"id"`
	Degree       string       `json:"degree"`
	Course       string       `json:"course"`
	Professor    string       `json:"professor"`
	Date         string       `json:"date"`
	City         string       `json:"city"`
	ImagePath    string       `json:"image_path"`
}

// SavedAnswers - личные поля, сохраняемые между сессиями для автозаполнения.
// Поля, зависящие от вида занятия, сюда не попадают никогда.
type SavedAnswers struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Degree   string `json:"degree"`
	City     string `json:"city"`
	Language string `json:"language"`
}
