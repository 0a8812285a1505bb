package explain

type ExplanationRequest struct {
	Question      string `json:"question"`
	CorrectAnswer bool   `json:"correct_answer"`
}

type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}

type ConnectionResponse struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

type ConnectionRequest struct {
	APIKey string `json:"api_key"`
}
