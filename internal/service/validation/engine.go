package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

// Имена полей в ошибках валидации.
const (
	FieldActivityType = "activity_type"
	FieldLanguage     = "language"
	FieldName         = "name"
	FieldID           = "id"
	FieldDegree       = "degree"
	FieldCourse       = "course"
	FieldProfessor    = "professor"
	FieldDate         = "date"
	FieldCity         = "city"
)

const dateLayout = "2006-01-02"

// fieldOrder задаёт порядок ошибок в ответе.
var fieldOrder = []string{
	FieldActivityType,
	FieldLanguage,
	FieldName,
	FieldID,
	FieldDegree,
	FieldCourse,
	FieldProfessor,
	FieldDate,
	FieldCity,
}

var fieldLabels = map[string]string{
	FieldActivityType: "activity type",
	FieldLanguage:     "language",
	FieldName:         "name",
	FieldID:           "id",
	FieldDegree:       "degree",
	FieldCourse:       "course",
	FieldProfessor:    "professor",
	FieldDate:         "date",
	FieldCity:         "city",
}

// Result - итог одного прохода валидации. При Valid == true Record содержит
// нормализованную запись, готовую к сборке документа.
type Result struct {
	Valid  bool
	Strict bool
	Errors []models.FieldError
	Record models.FieldRecord
}

// Engine проверяет поля формы. Безусловные правила действуют всегда,
// условные (course/professor по виду занятия) - только в строгой фазе.
// Движок не хранит состояния и безопасен для конкурентного использования.
type Engine struct {
	conditional map[models.ActivityType][]string
}

func NewEngine() *Engine {
	// дополнительные обязательные поля по виду занятия
	conditional := make(map[models.ActivityType][]string)
	for _, activity := range models.AllActivityTypes() {
		var fields []string
		if activity.RequiresCourse() {
			fields = append(fields, FieldCourse)
		}
		if activity.RequiresProfessor() {
			fields = append(fields, FieldProfessor)
		}
		conditional[activity] = fields
	}

	return &Engine{conditional: conditional}
}

// Validate - чистая функция от входа и флага строгости. Нарушения собираются
// по всем полям сразу, не больше одной ошибки на поле, порядок фиксированный.
func (e *Engine) Validate(in models.RawFieldInputs, strict bool) Result {
	rec := trimInputs(in)
	byField := make(map[string]models.FieldError)

	// безусловные правила: поле не пусто после обрезки
	unconditional := []struct {
		name  string
		value string
	}{
		{FieldActivityType, rec.ActivityType},
		{FieldLanguage, rec.Language},
		{FieldName, rec.Name},
		{FieldID, rec.ID},
		{FieldDegree, rec.Degree},
		{FieldDate, rec.Date},
		{FieldCity, rec.City},
	}
	for _, f := range unconditional {
		if f.value == "" {
			byField[f.name] = requiredError(f.name)
		}
	}

	// неизвестный тег вида занятия приравнивается к отсутствию выбора:
	// ни одна ветвь не активна, условные правила не применяются
	if rec.ActivityType != "" && !models.IsValidActivityType(rec.ActivityType) {
		byField[FieldActivityType] = models.FieldError{
			Field:   FieldActivityType,
			Code:    models.ErrCodeFieldRequired,
			Message: "activity type must be one of: lectures, oral-exam, written-exam, office-hours",
		}
	}

	// структурная проверка даты не зависит от фазы
	if rec.Date != "" {
		if _, err := time.Parse(dateLayout, rec.Date); err != nil {
			byField[FieldDate] = models.FieldError{
				Field:   FieldDate,
				Code:    models.ErrCodeMalformedDate,
				Message: "date must be a valid calendar date in YYYY-MM-DD format",
			}
		}
	}

	// условные правила действуют только в строгой фазе и только при
	// выбранном виде занятия
	if strict && models.IsValidActivityType(rec.ActivityType) {
		activity := models.ActivityType(rec.ActivityType)
		for _, field := range e.conditional[activity] {
			if fieldValue(rec, field) == "" {
				byField[field] = models.FieldError{
					Field:   field,
					Code:    models.ErrCodeActivityFieldRequired,
					Message: fmt.Sprintf("%s is required for %s", fieldLabels[field], activity.DisplayName()),
				}
			}
		}
	}

	result := Result{Strict: strict}
	for _, name := range fieldOrder {
		if fieldErr, ok := byField[name]; ok {
			result.Errors = append(result.Errors, fieldErr)
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Valid = true
	result.Record = models.FieldRecord{
		ActivityType: models.ActivityType(rec.ActivityType),
		Language:     rec.Language,
		Name:         rec.Name,
		ID:           rec.ID,
		Degree:       rec.Degree,
		Course:       rec.Course,
		Professor:    rec.Professor,
		Date:         rec.Date,
		City:         rec.City,
		ImagePath:    rec.ImagePath,
	}
	if result.Record.ImagePath == "" {
		result.Record.ImagePath = models.DefaultImagePath
	}
	return result
}

func requiredError(field string) models.FieldError {
	return models.FieldError{
		Field:   field,
		Code:    models.ErrCodeFieldRequired,
		Message: fmt.Sprintf("%s is required", fieldLabels[field]),
	}
}

func fieldValue(in models.RawFieldInputs, field string) string {
	switch field {
	case FieldCourse:
		return in.Course
	case FieldProfessor:
		return in.Professor
	default:
		return ""
	}
}

func trimInputs(in models.RawFieldInputs) models.RawFieldInputs {
	return models.RawFieldInputs{
		ActivityType: strings.TrimSpace(in.ActivityType),
		Language:     strings.TrimSpace(in.Language),
		Name:         strings.TrimSpace(in.Name),
		ID:           strings.TrimSpace(in.ID),
		Degree:       strings.TrimSpace(in.Degree),
		Course:       strings.TrimSpace(in.Course),
		Professor:    strings.TrimSpace(in.Professor),
		Date:         strings.TrimSpace(in.Date),
		City:         strings.TrimSpace(in.City),
		ImagePath:    strings.TrimSpace(in.ImagePath),
	}
}
