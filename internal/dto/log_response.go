package dto

import "logcollector/internal/service"

type StatusResponse struct {
	Status string `json:"status" example:"queued"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"ingestion queue is full"`
}

type HealthResponse struct {
	Status   string                `json:"status" example:"ok"`
	Pipeline service.PipelineStats `json:"pipeline"`
}
