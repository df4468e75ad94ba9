package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/validation"
)

func validInputs() models.RawFieldInputs {
	return models.RawFieldInputs{
		ActivityType: "lectures",
		Language:     "it",
		Name:         "Elena Rossi",
		ID:           "12345678",
		Degree:       "Computer Science",
		Course:       "Advanced Programming",
		Date:         "2024-01-01",
		City:         "Trento",
	}
}

func errorFields(result validation.Result) []string {
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidate_LenientPhase(t *testing.T) {
	engine := validation.NewEngine()

	t.Run("conditional fields exempt before first submission", func(t *testing.T) {
		in := validInputs()
		in.Course = ""

		result := engine.Validate(in, false)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("professor exempt for office hours before first submission", func(t *testing.T) {
		in := validInputs()
		in.ActivityType = "office-hours"
		in.Course = ""
		in.Professor = ""

		result := engine.Validate(in, false)

		assert.True(t, result.Valid)
	})

	t.Run("unconditional rules still enforced", func(t *testing.T) {
		in := validInputs()
		in.Name = ""
		in.City = "   "

		result := engine.Validate(in, false)

		require.False(t, result.Valid)
		assert.ElementsMatch(t, []string{"name", "city"}, errorFields(result))
		for _, e := range result.Errors {
			assert.Equal(t, models.ErrCodeFieldRequired, e.Code)
		}
	})

	t.Run("malformed date rejected before first submission", func(t *testing.T) {
		in := validInputs()
		in.Date = "01/01/2024"

		result := engine.Validate(in, false)

		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "date", result.Errors[0].Field)
		assert.Equal(t, models.ErrCodeMalformedDate, result.Errors[0].Code)
	})
}

func TestValidate_StrictPhase(t *testing.T) {
	engine := validation.NewEngine()

	t.Run("course required for lectures", func(t *testing.T) {
		in := validInputs()
		in.Course = ""

		result := engine.Validate(in, true)

		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "course", result.Errors[0].Field)
		assert.Equal(t, models.ErrCodeActivityFieldRequired, result.Errors[0].Code)
	})

	t.Run("course required for both exam types", func(t *testing.T) {
		for _, activity := range []string{"oral-exam", "written-exam"} {
			in := validInputs()
			in.ActivityType = activity
			in.Course = ""

			result := engine.Validate(in, true)

			require.False(t, result.Valid, activity)
			require.Len(t, result.Errors, 1, activity)
			assert.Equal(t, "course", result.Errors[0].Field, activity)
		}
	})

	t.Run("professor required for office hours", func(t *testing.T) {
		in := validInputs()
		in.ActivityType = "office-hours"
		in.Course = ""
		in.Professor = ""

		result := engine.Validate(in, true)

		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "professor", result.Errors[0].Field)
		assert.Equal(t, models.ErrCodeActivityFieldRequired, result.Errors[0].Code)
	})

	t.Run("course not required for office hours", func(t *testing.T) {
		in := validInputs()
		in.ActivityType = "office-hours"
		in.Course = ""
		in.Professor = "Prof. Bianchi"

		result := engine.Validate(in, true)

		assert.True(t, result.Valid)
		for _, e := range result.Errors {
			assert.NotEqual(t, "course", e.Field)
		}
	})

	t.Run("professor not required for lectures", func(t *testing.T) {
		in := validInputs()
		in.Professor = ""

		result := engine.Validate(in, true)

		assert.True(t, result.Valid)
	})
}

func TestValidate_UnselectedActivity(t *testing.T) {
	engine := validation.NewEngine()

	t.Run("only activity type error fires", func(t *testing.T) {
		in := validInputs()
		in.ActivityType = ""
		in.Course = ""
		in.Professor = ""

		result := engine.Validate(in, true)

		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "activity_type", result.Errors[0].Field)
		assert.Equal(t, models.ErrCodeFieldRequired, result.Errors[0].Code)
	})

	t.Run("unknown activity tag disables conditional rules", func(t *testing.T) {
		in := validInputs()
		in.ActivityType = "seminar"
		in.Course = ""

		result := engine.Validate(in, true)

		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "activity_type", result.Errors[0].Field)
	})
}

func TestValidate_DateRules(t *testing.T) {
	engine := validation.NewEngine()

	t.Run("empty date reports required only", func(t *testing.T) {
		in := validInputs()
		in.Date = ""

		result := engine.Validate(in, true)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, models.ErrCodeFieldRequired, result.Errors[0].Code)
	})

	t.Run("rejects impossible calendar dates", func(t *testing.T) {
		for _, date := range []string{"2024-02-30", "2024-13-01", "2024-1-1", "not-a-date"} {
			in := validInputs()
			in.Date = date

			result := engine.Validate(in, true)

			require.False(t, result.Valid, date)
			require.Len(t, result.Errors, 1, date)
			assert.Equal(t, models.ErrCodeMalformedDate, result.Errors[0].Code, date)
		}
	})

	t.Run("accepts leap day", func(t *testing.T) {
		in := validInputs()
		in.Date = "2024-02-29"

		result := engine.Validate(in, true)

		assert.True(t, result.Valid)
	})
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	engine := validation.NewEngine()

	in := models.RawFieldInputs{
		ActivityType: "lectures",
		Date:         "2024/01/01",
	}

	result := engine.Validate(in, true)

	require.False(t, result.Valid)
	assert.Equal(t,
		[]string{"language", "name", "id", "degree", "course", "date", "city"},
		errorFields(result),
	)
}

func TestValidate_Idempotent(t *testing.T) {
	engine := validation.NewEngine()

	in := validInputs()
	in.Course = ""
	in.Name = ""

	first := engine.Validate(in, true)
	second := engine.Validate(in, true)

	assert.Equal(t, first, second)
}

func TestValidate_NormalizesRecord(t *testing.T) {
	engine := validation.NewEngine()

	t.Run("trims whitespace", func(t *testing.T) {
		in := validInputs()
		in.Name = "  Elena Rossi  "
		in.City = "\tTrento\n"

		result := engine.Validate(in, true)

		require.True(t, result.Valid)
		assert.Equal(t, "Elena Rossi", result.Record.Name)
		assert.Equal(t, "Trento", result.Record.City)
	})

	t.Run("defaults image path", func(t *testing.T) {
		result := engine.Validate(validInputs(), true)

		require.True(t, result.Valid)
		assert.Equal(t, models.DefaultImagePath, result.Record.ImagePath)
	})

	t.Run("keeps provided image path", func(t *testing.T) {
		in := validInputs()
		in.ImagePath = "imgs/custom.png"

		result := engine.Validate(in, true)

		require.True(t, result.Valid)
		assert.Equal(t, "imgs/custom.png", result.Record.ImagePath)
	})

	t.Run("typed activity in record", func(t *testing.T) {
		result := engine.Validate(validInputs(), true)

		require.True(t, result.Valid)
		assert.Equal(t, models.ActivityLectures, result.Record.ActivityType)
	})
}

func TestValidate_FirstSubmissionScenario(t *testing.T) {
	engine := validation.NewEngine()

	in := models.RawFieldInputs{
		ActivityType: "lectures",
		Language:     "it",
		Name:         "Elena Rossi",
		ID:           "12345678",
		Degree:       "Computer Science",
		Course:       "",
		Date:         "2024-01-01",
		City:         "Trento",
	}

	// первая отправка: запись уже строгая
	result := engine.Validate(in, true)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "course", result.Errors[0].Field)
	assert.Equal(t, models.ErrCodeActivityFieldRequired, result.Errors[0].Code)

	in.Course = "Advanced Programming"
	result = engine.Validate(in, true)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}
