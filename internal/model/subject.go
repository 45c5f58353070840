package model

// Department groups students, subjects and tests.
type Department struct {
	Name string `json:"department_name"`
}

// Subject is taught within a department.
type Subject struct {
	Name       string `json:"subject_name"`
	Department string `json:"dept_name"`
}
