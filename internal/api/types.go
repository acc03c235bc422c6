package api

// CalcRequest is the inbound request shared by both calculation endpoints.
type CalcRequest struct {
	ResearchRequestID int    `json:"research_request_id"`
	AuthToken         string `json:"auth_token"`
	TextForAnalysis   string `json:"text_for_analysis"`
	Purpose           string `json:"purpose,omitempty"`
}

// CalcResponse is the synchronous calculation result payload.
type CalcResponse struct {
	Status        string `json:"status"`
	Year          int    `json:"year,omitempty"`
	MatchedLayers int    `json:"matched_layers,omitempty"`
	Error         string `json:"error,omitempty"`
}

// AcceptedResponse is the 202 payload of the asynchronous endpoint.
type AcceptedResponse struct {
	Status            string `json:"status"`
	ResearchRequestID int    `json:"research_request_id"`
	TaskID            string `json:"task_id"`
}

// HealthResponse is the payload for GET /health. Token carries only the
// first four characters of the configured secret.
type HealthResponse struct {
	Status      string `json:"status"`
	MainService string `json:"main_service"`
	Token       string `json:"token"`
}

// RecordResponse is one calculation record in the records endpoints.
type RecordResponse struct {
	ResearchRequestID int    `json:"research_request_id"`
	Purpose           string `json:"purpose,omitempty"`
	FromYear          int    `json:"result_from_year"`
	ToYear            int    `json:"result_to_year"`
	MatchedLayers     int    `json:"matched_layers"`
	Status            string `json:"status"`
	Error             string `json:"error,omitempty"`
	UpdatedAt         string `json:"updated_at"` // RFC3339
}

// RootResponse is the GET / service banner.
type RootResponse struct {
	Message string `json:"message"`
	Port    int    `json:"port"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
