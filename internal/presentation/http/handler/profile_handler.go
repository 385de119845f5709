package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgbilling/gst-billing/internal/application/service"
	"github.com/rgbilling/gst-billing/internal/presentation/http/dto/request"
	"github.com/rgbilling/gst-billing/internal/presentation/http/dto/response"
	"github.com/rgbilling/gst-billing/pkg/apperror"
)

// ProfileHandler handles issuer profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
	maxUpload      int64
}

// NewProfileHandler creates a new profile handler. maxUpload caps the
// signature image size in bytes.
func NewProfileHandler(profileService *service.ProfileService, maxUpload int64) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, maxUpload: maxUpload}
}

// Get retrieves the issuer profile
// @Summary Get Profile
// @Tags profile
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile := h.profileService.Current()
	response.OK(c, "Profile retrieved successfully", response.NewProfileResponse(&profile))
}

// Update updates the issuer profile
// @Summary Update Profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body request.UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.APIResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), &service.UpdateProfileInput{
		Name:               req.Name,
		GSTIN:              req.GSTIN,
		Contact:            req.Contact,
		DealsIn:            req.DealsIn,
		Address:            req.Address,
		SignatoryName:      req.SignatoryName,
		Disclaimer:         req.Disclaimer,
		DefaultNote1:       req.DefaultNote1,
		DefaultNote2:       req.DefaultNote2,
		DefaultBankDetails: req.DefaultBankDetails,
		DefaultCGSTRate:    req.DefaultCGSTRate,
		DefaultSGSTRate:    req.DefaultSGSTRate,
		DefaultIGSTRate:    req.DefaultIGSTRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", response.NewProfileResponse(profile))
}

// SetSignature uploads a signature image
// @Summary Upload Signature
// @Description Multipart field "signature", or JSON {"data_url": "..."}
// @Tags profile
// @Accept multipart/form-data,json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile/signature [put]
func (h *ProfileHandler) SetSignature(c *gin.Context) {
	data, err := h.readSignature(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileService.SetSignature(c.Request.Context(), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signature updated successfully", response.NewProfileResponse(profile))
}

// ClearSignature removes the signature image
// @Summary Remove Signature
// @Tags profile
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile/signature [delete]
func (h *ProfileHandler) ClearSignature(c *gin.Context) {
	profile, err := h.profileService.ClearSignature(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signature removed successfully", response.NewProfileResponse(profile))
}

func (h *ProfileHandler) readSignature(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("signature")
		if err != nil {
			return nil, apperror.NewBadRequestError("Missing signature file")
		}
		if h.maxUpload > 0 && header.Size > h.maxUpload {
			return nil, apperror.ErrPayloadTooLarge
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	var req request.SignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperror.NewBadRequestError("Invalid request body")
	}
	// base64 grows the payload by a third
	if h.maxUpload > 0 && int64(len(req.DataURL)) > h.maxUpload*4/3+128 {
		return nil, apperror.ErrPayloadTooLarge
	}
	return []byte(req.DataURL), nil
}
