package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-registry/internal/core"
)

// RegistryHandlers exposes read-only snapshots of the registry.
type RegistryHandlers struct {
	reg *core.Registry
	log *zerolog.Logger
}

// NewRegistryHandlers creates a new registry handlers instance.
func NewRegistryHandlers(reg *core.Registry, logger *zerolog.Logger) *RegistryHandlers {
	return &RegistryHandlers{
		reg: reg,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UsersResponse lists registered nicknames.
type UsersResponse struct {
	Users []string `json:"users"`
}

// ChannelResponse represents a channel in API responses.
type ChannelResponse struct {
	Title      string   `json:"title"`
	Owner      string   `json:"owner,omitempty"`
	InviteOnly bool     `json:"invite_only"`
	Members    []string `json:"members"`
}

// ChannelsResponse lists every channel.
type ChannelsResponse struct {
	Channels []ChannelResponse `json:"channels"`
}

func channelResponse(info core.ChannelInfo) ChannelResponse {
	return ChannelResponse{
		Title:      info.Title,
		Owner:      info.Owner,
		InviteOnly: info.InviteOnly,
		Members:    info.Members,
	}
}

// ListUsers handles listing registered users.
// GET /api/users
func (h *RegistryHandlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, UsersResponse{Users: h.reg.RegisteredUsers()})
}

// ListChannels handles listing channels in title order.
// GET /api/channels
func (h *RegistryHandlers) ListChannels(c *gin.Context) {
	titles := h.reg.Channels()
	resp := ChannelsResponse{Channels: make([]ChannelResponse, 0, len(titles))}
	for _, title := range titles {
		// The channel may vanish between the two calls.
		if info, ok := h.reg.Describe(title); ok {
			resp.Channels = append(resp.Channels, channelResponse(info))
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetChannel handles fetching one channel.
// GET /api/channels/:title
func (h *RegistryHandlers) GetChannel(c *gin.Context) {
	title := c.Param("title")
	info, ok := h.reg.Describe(title)
	if !ok {
		h.log.Debug().Str("channel", title).Msg("channel not found")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "channel not found"})
		return
	}
	c.JSON(http.StatusOK, channelResponse(info))
}
