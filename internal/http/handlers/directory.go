package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/survey-backend/internal/http/response"
	"github.com/yungbote/survey-backend/internal/services"
)

type DirectoryHandler struct {
	directory services.DirectoryService
}

func NewDirectoryHandler(directory services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// GET /api/teams
func (h *DirectoryHandler) ListTeams(c *gin.Context) {
	teams, err := h.directory.ListTeams(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_teams_failed")
		return
	}
	response.RespondOK(c, newTeamViews(teams))
}

// POST /api/teams
func (h *DirectoryHandler) CreateTeam(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	team, err := h.directory.CreateTeam(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondAPIError(c, err, "create_team_failed")
		return
	}
	response.RespondCreated(c, teamView{ID: team.ID, Name: team.Name})
}

// GET /api/users?teamId=
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	var raw *string
	if v, ok := c.GetQuery("teamId"); ok {
		raw = &v
	}
	teamID, err := parseOptionalID(raw, "teamId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	users, err := h.directory.ListUsers(c.Request.Context(), teamID)
	if err != nil {
		response.RespondAPIError(c, err, "list_users_failed")
		return
	}
	response.RespondOK(c, newUserViews(users))
}

// POST /api/users
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email  string  `json:"email"`
		Name   string  `json:"name"`
		TeamID *string `json:"teamId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	teamID, err := parseOptionalID(req.TeamID, "teamId")
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	u, err := h.directory.CreateUser(c.Request.Context(), services.CreateUserInput{
		Email:  req.Email,
		Name:   req.Name,
		TeamID: teamID,
	})
	if err != nil {
		response.RespondAPIError(c, err, "create_user_failed")
		return
	}
	response.RespondCreated(c, newUserView(u))
}
