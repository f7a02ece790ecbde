package api

import (
	"errors"
	"net/http"

	"jobverse/internal/chat"
	apierrs "jobverse/internal/errors"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (c chatRequest) Validate() error {
	if c.Message == "" {
		return apierrs.E(http.StatusBadRequest, "invalid message", apierrs.Detail{Field: "message", Error: "is required"})
	}
	return nil
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) postChat(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeValid[chatRequest](r.Body)
	if err != nil {
		return err
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	if errors.Is(err, chat.ErrNoAPIKey) {
		return apierrs.E(http.StatusInternalServerError, "gemini api key not configured")
	}
	var upErr *chat.UpstreamError
	if errors.As(err, &upErr) {
		s.logger.Warn("chat upstream failed", "status", upErr.StatusCode)
		return apierrs.E(http.StatusBadGateway, "gemini api error", apierrs.Detail{Field: "upstream", Error: upErr.Body})
	}
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
