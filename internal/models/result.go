package models

import "time"

// RankedCandidate is one row of a ranking response.
type RankedCandidate struct {
	CandidateFile string  `json:"CandidateFile"`
	Name          string  `json:"Name"`
	Email         string  `json:"Email"`
	Phone         string  `json:"Phone"`
	Score         float64 `json:"Score"`
	BonusPoints   int     `json:"BonusPoints"`
	BonusReasons  string  `json:"BonusReasons"`
	MatchedSkills string  `json:"MatchedSkills"`
	MissingSkills string  `json:"MissingSkills"`
	JDSkills      string  `json:"JDSkills"`
}

type Ranking struct {
	Candidates []RankedCandidate
	Total      int
}

type RankResponse struct {
	Status          string            `json:"status"`
	TotalCandidates int               `json:"totalCandidates"`
	Message         string            `json:"message"`
	Results         []RankedCandidate `json:"results"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CVUploadResponse struct {
	Status   string     `json:"status"`
	Message  string     `json:"message"`
	Uploaded int        `json:"uploaded"`
	Skipped  []string   `json:"skipped,omitempty"`
	Files    []CVRecord `json:"files"`
}

type CVListItem struct {
	ID           string    `json:"_id"`
	OriginalName string    `json:"originalName"`
	Link         string    `json:"link"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CVListResponse struct {
	Status string       `json:"status"`
	Total  int          `json:"total"`
	Files  []CVListItem `json:"files"`
}

type CreateJobDescriptionRequest struct {
	Description string `json:"description" form:"description"`
}

type JobDescriptionResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	JobDes  *JobDescription `json:"jobDes"`
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

type JobDescriptionListResponse struct {
	Status          string           `json:"status"`
	Total           int64            `json:"total"`
	Result          int              `json:"result"`
	Pagination      Pagination       `json:"pagination"`
	Message         string           `json:"message"`
	JobDescriptions []JobDescription `json:"jobDescriptions"`
}
