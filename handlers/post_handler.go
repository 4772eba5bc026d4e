package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	idtypes "trendmindAPI/internal/types/identity"
	"trendmindAPI/internal/types/post"
	"trendmindAPI/services"
)

// dashboardUpcoming is how many posts the dashboard previews.
const dashboardUpcoming = 3

type PostHandler struct {
	postService *services.PostService
	userService *services.UserService
	logger      *zap.Logger
}

func NewPostHandler(postService *services.PostService, userService *services.UserService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		logger:      logger.Named("post_handler"),
	}
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.ListPosts(ctx, userID)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, post.PostsResponse{Posts: posts, Count: len(posts)})
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req post.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	saved, err := h.postService.SavePost(ctx, userID, &req)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, saved)
}

type DashboardResponse struct {
	DisplayName string                `json:"display_name"`
	TotalPosts  int                   `json:"total_posts"`
	Upcoming    []*post.ScheduledPost `json:"upcoming"`
}

// Dashboard greets the user and previews their next posts. A provider
// outage degrades to the generic display name instead of failing.
func (h *PostHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	upcoming, total, err := h.postService.Upcoming(ctx, userID, dashboardUpcoming)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err)
		return
	}

	resp := DashboardResponse{
		DisplayName: idtypes.DefaultDisplayName,
		TotalPosts:  total,
		Upcoming:    upcoming,
	}
	if u, err := h.userService.GetCurrentUser(ctx, userID); err == nil {
		resp.DisplayName = u.DisplayName
		if u.FirstName != "" {
			resp.DisplayName = u.FirstName
		}
	} else {
		h.logger.Warn("dashboard without profile", zap.String("user_id", userID), zap.Error(err))
	}

	respondWithJSON(w, http.StatusOK, resp)
}
