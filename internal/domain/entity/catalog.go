package entity

// Question is a multiple-choice question with exactly four options.
// Answer is the 1-based index of the correct option.
type Question struct {
	QuestionID string
	Question   string
	Options    []string
	Answer     int
	Solution   string // optional worked solution
}

// Lesson groups questions by id. QuestionIDs keeps insertion order;
// uniqueness is enforced by the edge mutations, not the schema.
type Lesson struct {
	LessonID    string
	Name        string
	Keywords    []string
	QuestionIDs []string
}

// Course groups lessons by id, same ordering and uniqueness rules as Lesson.
type Course struct {
	CourseID        string
	Name            string
	Description     string
	Category        string
	EnrollmentCount int
	LessonIDs       []string
}

// ContainsID reports whether id is present in ids.
func ContainsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID removes id from ids by value, preserving order of the rest.
func RemoveID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
