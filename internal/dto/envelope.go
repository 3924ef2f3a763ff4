package dto

// Envelope wraps every API response.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Code       string      `json:"code,omitempty"`
}
