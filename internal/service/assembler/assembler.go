package assembler

import (
	"fmt"
	"strings"
	"time"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

const dateLayout = "2006-01-02"

// DefaultBlankWidth - ширина прочерка для пустых опциональных полей.
const DefaultBlankWidth = 24

// Assembler превращает проверенную запись формы в модель документа:
// выбирает активную ветвь чек-листа, разрешает язык и подставляет
// прочерки вместо пустых опциональных полей.
type Assembler struct {
	bundles    map[string]Bundle
	fallback   string
	blankWidth int
}

func New(blankWidth int) *Assembler {
	if blankWidth <= 0 {
		blankWidth = DefaultBlankWidth
	}
	return &Assembler{
		bundles:    defaultBundles(),
		fallback:   DefaultLocale,
		blankWidth: blankWidth,
	}
}

// Assemble - тотальная функция: запись уже прошла валидацию, сборка
// не завершается ошибкой. Модель собирается один раз и не меняется.
func (a *Assembler) Assemble(rec models.FieldRecord) models.DocumentModel {
	date := parseDate(rec.Date)
	bundle := a.bundle(rec.Language)

	labels := make(map[string]string, len(bundle.Texts))
	for key, text := range bundle.Texts {
		labels[key] = text
	}

	return models.DocumentModel{
		Branch:    rec.ActivityType,
		Language:  bundle.Code,
		Name:      rec.Name,
		ID:        rec.ID,
		Degree:    rec.Degree,
		Course:    a.orBlank(rec.Course),
		Professor: a.orBlank(rec.Professor),
		Date:      date,
		City:      rec.City,
		Header:    fmt.Sprintf("%s, %02d/%02d/%04d", rec.City, date.Day, date.Month, date.Year),
		ImagePath: rec.ImagePath,
		Checklist: checklist(rec.ActivityType),
		Labels:    labels,
	}
}

// checklist выбирает ровно одну активную ветвь из четырёх.
// Родительский флаг Exams поднимается для любого из двух экзаменов.
func checklist(activity models.ActivityType) models.ActivityChecklist {
	var c models.ActivityChecklist
	switch activity {
	case models.ActivityLectures:
		c.Lectures = true
	case models.ActivityWrittenExam:
		c.WrittenExam = true
	case models.ActivityOralExam:
		c.OralExam = true
	case models.ActivityOfficeHours:
		c.OfficeHours = true
	}
	c.Exams = c.WrittenExam || c.OralExam
	return c
}

func (a *Assembler) orBlank(value string) string {
	if value == "" {
		return strings.Repeat("_", a.blankWidth)
	}
	return value
}

// bundle разрешает код языка в набор строк; учитывается только первичный
// подтег ("en-US" -> "en"), незнакомый код откатывается к языку по умолчанию.
func (a *Assembler) bundle(code string) Bundle {
	norm := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(norm, "-_"); i > 0 {
		norm = norm[:i]
	}
	if b, ok := a.bundles[norm]; ok {
		return b
	}
	return a.bundles[a.fallback]
}

func parseDate(iso string) models.DocumentDate {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return models.DocumentDate{ISO: iso}
	}
	return models.DocumentDate{
		ISO:   iso,
		Day:   t.Day(),
		Month: int(t.Month()),
		Year:  t.Year(),
	}
}
