package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"profiles-feed-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

type QRCodeController struct {
	feedService service.FeedService
	baseURL     string
}

func NewQRCodeController(feedService service.FeedService, baseURL string) *QRCodeController {
	return &QRCodeController{
		feedService: feedService,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// GenerateQRCode handles GET /feed/items/:id/qrcode - PNG linking to one of the caller's items
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := feedItemID(c)
	if !ok {
		return
	}

	item, err := qc.feedService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	link := fmt.Sprintf("%s/feed/items/%d", qc.baseURL, item.ID)
	pngData, err := qrcode.Encode(link, qrcode.Medium, qrCodeSize)
	if err != nil {
		respondError(c, fmt.Errorf("failed to generate QR code: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=feed-item-%d.png", item.ID))
	c.Data(http.StatusOK, "image/png", pngData)
}
