package assembler

// DefaultLocale используется, когда код языка не распознан.
const DefaultLocale = "it"

// Ключи строк, которые потребляет шаблон документа.
const (
	LabelTitle       = "title"
	LabelDeclaration = "declaration"
	LabelName        = "name"
	LabelID          = "id"
	LabelDegree      = "degree"
	LabelCourse      = "course"
	LabelProfessor   = "professor"
	LabelActivity    = "activity"
	LabelLectures    = "lectures"
	LabelExams       = "exams"
	LabelWrittenExam = "written_exam"
	LabelOralExam    = "oral_exam"
	LabelOfficeHours = "office_hours"
	LabelRequest     = "request"
	LabelSignature   = "signature"
)

// Bundle хранит строки шаблона для одного языка.
type Bundle struct {
	Code  string
	Texts map[string]string
}

func defaultBundles() map[string]Bundle {
	return map[string]Bundle{
		"it": {
			Code: "it",
			Texts: map[string]string{
				LabelTitle:       "Richiesta di permesso di studio",
				LabelDeclaration: "Il/La sottoscritto/a",
				LabelName:        "Nome e cognome",
				LabelID:          "Matricola",
				LabelDegree:      "Corso di laurea",
				LabelCourse:      "Insegnamento",
				LabelProfessor:   "Docente",
				LabelActivity:    "Attività",
				LabelLectures:    "Lezioni",
				LabelExams:       "Esami",
				LabelWrittenExam: "Esame scritto",
				LabelOralExam:    "Esame orale",
				LabelOfficeHours: "Ricevimento docente",
				LabelRequest:     "Si richiede la conferma della presenza alla suddetta attività.",
				LabelSignature:   "Firma",
			},
		},
		"en": {
			Code: "en",
			Texts: map[string]string{
				LabelTitle:       "Study Leave Request",
				LabelDeclaration: "The undersigned",
				LabelName:        "Full name",
				LabelID:          "Student ID",
				LabelDegree:      "Degree programme",
				LabelCourse:      "Course",
				LabelProfessor:   "Professor",
				LabelActivity:    "Activity",
				LabelLectures:    "Lectures",
				LabelExams:       "Exams",
				LabelWrittenExam: "Written exam",
				LabelOralExam:    "Oral exam",
				LabelOfficeHours: "Office hours",
				LabelRequest:     "Confirmation of attendance at the above activity is requested.",
				LabelSignature:   "Signature",
			},
		},
	}
}
