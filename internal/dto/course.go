package dto

// CreateCourseRequest creates a course for the authenticated user.
// @Description Request body for creating a course
type CreateCourseRequest struct {
	CourseName string `json:"courseName"`
	CourseCode string `json:"courseCode,omitempty"`
}
