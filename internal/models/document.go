package models

// DocumentDate - дата запроса, разобранная для шаблона.
type DocumentDate struct {
	ISO   string `json:"iso"`
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

// ActivityChecklist - флажки чек-листа шаблона. Ровно один из четырёх
// видов занятий отмечен; Exams поднят, когда отмечен любой из экзаменов.
type ActivityChecklist struct {
	Lectures    bool `json:"lectures"`
	WrittenExam bool `json:"written_exam"`
	OralExam    bool `json:"oral_exam"`
	OfficeHours bool `json:"office_hours"`
	Exams       bool `json:"exams"`
}

// DocumentModel - полностью разрешённая модель документа для рендера.
// Собирается один раз из проверенной записи и дальше не меняется.
type DocumentModel struct {
	Branch    ActivityType      `json:"activity_type"`
	Language  string            `json:"language"`
	Name      string            `json:"name"`
	ID        string            `json:"id"`
	Degree    string            `json:"degree"`
	Course    string            `json:"course"`
	Professor string            `json:"professor"`
	Date      DocumentDate      `json:"date"`
	City      string            `json:"city"`
	Header    string            `json:"header"`
	ImagePath string            `json:"image_path"`
	Checklist ActivityChecklist `json:"checklist"`
	Labels    map[string]string `json:"labels"`
}
