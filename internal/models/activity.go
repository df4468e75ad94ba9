package models

import (
	"strings"
)

type ActivityType string

const (
	ActivityLectures    ActivityType = "lectures"
	ActivityOralExam    ActivityType = "oral-exam"
	ActivityWrittenExam ActivityType = "written-exam"
	ActivityOfficeHours ActivityType = "office-hours"
)

func (a ActivityType) String() string {
	return string(a)
}

func IsValidActivityType(value string) bool {
	switch value {
	case "lectures", "oral-exam", "written-exam", "office-hours":
		return true
	default:
		return false
	}
}

// AllActivityTypes возвращает канонический порядок видов занятий.
func AllActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityLectures,
		ActivityOralExam,
		ActivityWrittenExam,
		ActivityOfficeHours,
	}
}

// RequiresCourse - для этого вида занятия обязательно поле course.
func (a ActivityType) RequiresCourse() bool {
	switch a {
	case ActivityLectures, ActivityOralExam, ActivityWrittenExam:
		return true
	default:
		return false
	}
}

// RequiresProfessor - для этого вида занятия обязательно поле professor.
func (a ActivityType) RequiresProfessor() bool {
	return a == ActivityOfficeHours
}

// DisplayName строит человекочитаемое имя из тега: "oral-exam" -> "Oral Exam".
func (a ActivityType) DisplayName() string {
	parts := strings.Split(string(a), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
