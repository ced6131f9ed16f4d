package runtime

import (
	"strings"

	"quantumtie/internal/domain"
)

type backendsResponse struct {
	Devices []string `json:"devices"`
}

type statusResponse struct {
	State          bool   `json:"state"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	LengthQueue    int    `json:"length_queue"`
	BackendVersion string `json:"backend_version"`
}

type jobRequest struct {
	ProgramID string        `json:"program_id"`
	Backend   string        `json:"backend"`
	Params    samplerParams `json:"params"`
}

type samplerParams struct {
	Pubs    [][]any `json:"pubs"`
	Shots   int     `json:"shots,omitempty"`
	Version int     `json:"version"`
}

type jobCreated struct {
	ID      string `json:"id"`
	Backend string `json:"backend"`
}

type jobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	State  struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"state"`
}

type resultsResponse struct {
	Results []struct {
		Data map[string]register `json:"data"`
	} `json:"results"`
}

type register struct {
	Samples []string `json:"samples"`
	NumBits int      `json:"num_bits"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// jobStatus maps the API status strings onto domain statuses.
func jobStatus(s string) domain.JobStatus {
	switch strings.ToLower(s) {
	case "queued":
		return domain.JobQueued
	case "running":
		return domain.JobRunning
	case "completed", "done":
		return domain.JobDone
	case "cancelled", "canceled", "cancelled - ran too long":
		return domain.JobCancelled
	case "failed", "error":
		return domain.JobError
	case "validating":
		return domain.JobValidating
	}
	return domain.JobInitializing
}
