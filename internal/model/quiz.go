package model

// Test is an assessment published for a department.
type Test struct {
	ID         int64  `json:"id"`
	Department string `json:"dept_name"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Marks      int    `json:"marks"`
	Difficulty string `json:"difficulty"`
	Teacher    string `json:"teacher"`
}

// TestsQuery selects the tests of one department.
type TestsQuery struct {
	Department string `form:"department" binding:"required"`
}
