package model

// Question is a multiple-choice question.
type Question struct {
	ID            int64  `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectOption string `json:"correct_option"`
	Subject       string `json:"subject"`
	Difficulty    string `json:"difficulty"`
}

// QuestionsQuery selects up to Limit questions of a subject and difficulty.
type QuestionsQuery struct {
	Subject    string `form:"subject" binding:"required"`
	Difficulty string `form:"difficulty" binding:"required"`
	Limit      int    `form:"limit" binding:"required,gt=0"`
}
