package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/sharelink"
	"github.com/mark3labs/mcp-go/mcp"
)

// workoutView is the workout as returned to clients.
type workoutView struct {
	Title     string               `json:"title"`
	Items     []models.WorkoutItem `json:"items"`
	ShareLink string               `json:"share_link,omitempty"`
}

func (h *handlers) workoutView() workoutView {
	st := h.sess.Workout().State()
	v := workoutView{Title: st.Title, Items: st.Items}
	if v.Items == nil {
		v.Items = []models.WorkoutItem{}
	}
	link, err := sharelink.ShareURL(h.shareBase, st)
	if err != nil {
		h.log.Warn("building share link failed", "error", err)
	} else {
		v.ShareLink = link
	}
	return v
}

func (h *handlers) workout(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.workoutView())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
