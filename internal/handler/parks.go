package handler

import (
	"encoding/json"
	"net/http"
)

// GetNationalParks handles GET /national-parks.
// It relays the upstream parks endpoint verbatim. The limit query parameter
// is required so a missing value never silently falls back to the
// upstream's tiny default page size.
func (s *Server) GetNationalParks(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "parks")
}

// GetCampgrounds handles GET /campgrounds, relaying the upstream
// campgrounds endpoint verbatim.
func (s *Server) GetCampgrounds(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "campgrounds")
}

// GetThingsToDo handles GET /things-to-do, relaying the upstream thingstodo
// endpoint verbatim.
func (s *Server) GetThingsToDo(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "thingstodo")
}

// GetMultimediaAudio handles GET /multimedia/audio.
func (s *Server) GetMultimediaAudio(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "multimedia/audio")
}

// GetMultimediaGalleries handles GET /multimedia/galleries.
func (s *Server) GetMultimediaGalleries(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "multimedia/galleries")
}

// GetMultimediaGalleryAssets handles GET /multimedia/galleries/assets.
func (s *Server) GetMultimediaGalleryAssets(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "multimedia/galleries/assets")
}

// GetMultimediaVideos handles GET /multimedia/videos.
func (s *Server) GetMultimediaVideos(w http.ResponseWriter, r *http.Request) {
	s.proxyUpstream(w, r, "multimedia/videos")
}

func (s *Server) proxyUpstream(w http.ResponseWriter, r *http.Request, endpoint string) {
	query := r.URL.Query()
	if query.Get("limit") == "" {
		badRequest(w, "limit query parameter is required")
		return
	}

	result, err := s.parks.Get(r.Context(), endpoint, query)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Upstream 4xx means the caller's query was bad; the upstream body
	// explains why, so relay it under our own 400.
	status := result.StatusCode
	if status >= 400 {
		status = http.StatusBadRequest
	}

	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	w.WriteHeader(status)
	_, _ = w.Write(result.Body)
}

// parkSummary is the trimmed park shape returned by the summary endpoint.
// Field names match the upstream JSON so the summary is a strict subset.
type parkSummary struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
	ParkCode    string `json:"parkCode"`
	States      string `json:"states"`
}

type parkListPayload struct {
	Total string        `json:"total"`
	Limit string        `json:"limit"`
	Start string        `json:"start"`
	Data  []parkSummary `json:"data"`
}

// GetNationalParkSummaries handles GET /national-parks/summary.
// It queries the upstream parks endpoint and strips each park down to the
// handful of fields the trip-planning UI needs, cutting the multi-megabyte
// upstream payload (images, hours, fees) to a fraction of its size.
func (s *Server) GetNationalParkSummaries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("limit") == "" {
		badRequest(w, "limit query parameter is required")
		return
	}

	result, err := s.parks.Get(r.Context(), "parks", query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if result.StatusCode >= 400 {
		if result.ContentType != "" {
			w.Header().Set("Content-Type", result.ContentType)
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(result.Body)
		return
	}

	var payload parkListPayload
	if err := json.Unmarshal(result.Body, &payload); err != nil {
		respondError(w, r, err)
		return
	}
	if payload.Data == nil {
		payload.Data = []parkSummary{}
	}

	respondJSON(w, http.StatusOK, payload)
}
