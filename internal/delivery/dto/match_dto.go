package dto

// Request DTOs

type MatchDoctorsRequest struct {
	Symptoms string `json:"symptoms" validate:"required,min=3,max=2000"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// Response DTOs

type MatchedDoctorResponse struct {
	Doctor  DoctorResponse `json:"doctor"`
	Score   int            `json:"score"`
	Reasons []string       `json:"reasons"`
}

type MatchListResponse struct {
	Category string                  `json:"category"`
	Matches  []MatchedDoctorResponse `json:"matches"`
	Total    int                     `json:"total"`
}
