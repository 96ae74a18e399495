package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	Bio    *string   `json:"bio"`
	Skills *[]string `json:"skills" validate:"omitempty,max=50,dive,max=64"`
	Image  *string   `json:"image"`
}

type updateProfileResponse struct {
	UpdatedUser any `json:"updatedUser"`
}

type usersResponse struct {
	Users any `json:"users"`
}

// Me returns the caller's own profile.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Router       /auth/profile [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	fresh, err := h.profiles.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fresh)
}

// ByID returns any user's public profile.
//
// @Summary      Profile by id
// @Tags         profile
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  messageResponse
// @Router       /auth/profile/{id} [get]
func (h *ProfileHandler) ByID(c echo.Context) error {
	user, err := h.profiles.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to the caller's profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/update-profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.profiles.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID: user.ID,
		Bio:    req.Bio,
		Skills: req.Skills,
		Image:  req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateProfileResponse{UpdatedUser: updated})
}

// Others lists every user except the caller.
//
// @Summary      List other users
// @Tags         messages
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  messageResponse
// @Router       /messages [get]
func (h *ProfileHandler) Others(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	users, err := h.profiles.ListOthers(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}
