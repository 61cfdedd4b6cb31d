package server

import (
	"net/http"

	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/types"
)

// JobsResponse is the body of GET /api/v1/jobs.
type JobsResponse struct {
	Jobs  []types.JobListing `json:"jobs"`
	Count int                `json:"count"`
}

// VideosResponse is the body of GET /api/v1/resources/video.
type VideosResponse struct {
	Videos []types.VideoResource `json:"videos"`
	Count  int                   `json:"count"`
}

// handleJobs handles GET /api/v1/jobs
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	params, err := bindJobsParams(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	req := params.Request(s.limits)
	s.requestLogger(r).Debug("Job search",
		logger.String("query", req.Query),
		logger.Int("limit", req.Limit),
	)

	jobs := s.jobs.Search(r.Context(), req)
	if jobs == nil {
		jobs = []types.JobListing{}
	}
	s.jsonResponse(w, http.StatusOK, JobsResponse{Jobs: jobs, Count: len(jobs)})
}

// handleVideos handles GET /api/v1/resources/video
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	params, err := bindVideoParams(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	req := params.Request(s.limits)
	s.requestLogger(r).Debug("Video search",
		logger.String("query", req.Query),
		logger.Int("limit", req.Limit),
	)

	videos := s.videos.Search(r.Context(), req)
	if videos == nil {
		videos = []types.VideoResource{}
	}
	s.jsonResponse(w, http.StatusOK, VideosResponse{Videos: videos, Count: len(videos)})
}
