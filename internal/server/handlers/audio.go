package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/StreamMUSE/streammuse/internal/server/cache"
	"github.com/StreamMUSE/streammuse/internal/server/filter"
	"github.com/StreamMUSE/streammuse/internal/server/middleware"
	"github.com/StreamMUSE/streammuse/internal/server/response"
	"github.com/StreamMUSE/streammuse/internal/votes"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

// HandleListAudio handles GET /api/audio.
// @Summary List card groups
// @Description Filter, search and paginate the catalog
// @Tags audio
// @Produce json
// @Param model_architecture query string false "Model architecture or all"
// @Param model_parameters query string false "Formatted parameter count (e.g. 0.25b) or all"
// @Param training_dataset query string false "Training dataset or all"
// @Param inference_mode query string false "Inference mode or all"
// @Param search query string false "Case-insensitive substring of group id or filename"
// @Param limit query integer false "Page size (default: 48)"
// @Param offset query integer false "Page offset (default: 0)"
// @Success 200 {object} response.Response{data=[]catalogs.CardGroup}
// @Failure 500 {object} response.Response
// @Router /api/audio [get].
func (h *Handlers) HandleListAudio(w http.ResponseWriter, r *http.Request) {
	key := cache.Key("audio", r.URL.RawQuery)
	if cached, found := h.cache.Get(key); found {
		if resp, ok := cached.(response.Response); ok {
			response.JSON(w, http.StatusOK, resp)
			return
		}
	}

	cat := h.app.Catalog()
	page := catalogs.Apply(cat.Load(r.Context()), filter.ParseAudioQuery(r))

	resp := response.Paged(page.Groups, response.Pagination{
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	})

	// A failed load serves an empty catalog that must not outlive a retry.
	if cat.Loaded() {
		h.cache.Set(key, resp)
	}

	response.JSON(w, http.StatusOK, resp)
}

// HandleGetGroup handles GET /api/audio/{groupId}.
// @Summary Get card group
// @Tags audio
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {object} response.Response{data=catalogs.CardGroup}
// @Failure 404 {object} response.Response
// @Router /api/audio/{groupId} [get].
func (h *Handlers) HandleGetGroup(w http.ResponseWriter, r *http.Request, groupID string) {
	for _, g := range h.app.Catalog().Load(r.Context()) {
		if g.GroupID == groupID {
			logging.FromContext(logging.WithGroup(r.Context(), groupID)).Debug().Int("instances", len(g.Instances)).Msg("Serving group")
			response.OK(w, g)
			return
		}
	}
	response.ErrorFromType(w, errors.NewNotFoundError("group", groupID))
}

// HandleRecordVote handles POST /api/audio.
// @Summary Record a blind-test vote
// @Tags audio
// @Accept json
// @Produce json
// @Param vote body votes.Request true "Comparison result"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/audio [post].
func (h *Handlers) HandleRecordVote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)

	var req votes.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Rejected vote with unreadable body")
		response.BadRequest(w, response.MsgVoteFailed)
		return
	}

	ctx := votes.WithRequestID(r.Context(), middleware.RequestID(r.Context()))
	h.app.Votes().Record(ctx, req)
	response.JSON(w, http.StatusOK, response.Acknowledged(response.MsgVoteRecorded))
}
