package entity

import "time"

type Region struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Class struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Grade             int     `json:"grade"`
	RegionID          int     `json:"region_id"`
	RegionName        string  `json:"region_name,omitempty"`
	HomeroomTeacherID *int    `json:"homeroom_teacher_id,omitempty"`
	HomeroomTeacher   *string `json:"homeroom_teacher,omitempty"`
	StudentCount      int     `json:"student_count,omitempty"`
}

type Subject struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ClassID     int     `json:"class_id"`
	ClassName   string  `json:"class_name,omitempty"`
	TeacherID   *int    `json:"teacher_id,omitempty"`
	TeacherName *string `json:"teacher_name,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ClassSession is one numbered meeting of a subject.
type ClassSession struct {
	ID          int    `json:"id"`
	SubjectID   int    `json:"subject_id"`
	SessionNo   int    `json:"session_no"`
	Title       string `json:"title"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
}

type AttachmentType string

const (
	AttachmentMaterial   AttachmentType = "material"
	AttachmentAssignment AttachmentType = "assignment"
	AttachmentOther      AttachmentType = "other"
)

func (t AttachmentType) Valid() bool {
	switch t {
	case AttachmentMaterial, AttachmentAssignment, AttachmentOther:
		return true
	}
	return false
}

type Attachment struct {
	ID        int            `json:"id"`
	SessionID int            `json:"session_id"`
	Name      string         `json:"name"`
	Type      AttachmentType `json:"type"`
	File      string         `json:"file"`
	FileSize  int64          `json:"file_size"`
}

type Submission struct {
	ID          int        `json:"id"`
	SessionID   int        `json:"session_id"`
	StudentID   int        `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	Filename    string     `json:"filename"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Grade       *float64   `json:"grade"`
	Feedback    *string    `json:"feedback"`
}

type Enrollment struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
}

type TeacherSubject struct {
	ID          int    `json:"id"`
	TeacherID   int    `json:"teacher_id"`
	TeacherName string `json:"teacher_name,omitempty"`
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
}
