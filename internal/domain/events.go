package domain

import "time"

// ReportRequestMessage is published to the report queue.
type ReportRequestMessage struct {
	ReportDate  string    `json:"report_date"`
	RequestedBy string    `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}
