package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// UserHandler exposes account administration.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=superadmin admin1 admin2 user"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=superadmin admin1 admin2 user"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// List returns user accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skip       query     int     false  "Offset"  default(0)
// @Param        limit      query     int     false  "Page size (1-1000)"  default(100)
// @Param        role       query     string  false  "Stored role"  Enums(superadmin, admin1, admin2, user)
// @Param        is_active  query     bool    false  "Active flag"
// @Success      200        {object}  listResponse[domain.User]
// @Failure      400        {object}  errorBody
// @Failure      401        {object}  errorBody
// @Failure      403        {object}  errorBody
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	active, err := boolParam(c, "is_active")
	if err != nil {
		return err
	}

	users, total, err := h.users.List(c.Request().Context(), domain.UserFilter{
		Role:     c.QueryParam("role"),
		IsActive: active,
		Page:     page,
	})
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}

	return c.JSON(http.StatusOK, listResponse[*domain.User]{
		Items: users,
		Total: total,
		Skip:  page.Skip,
		Limit: page.Limit,
	})
}

// Create provisions an account with an explicit role.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), ports.UserAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ChangeRole assigns a new role.
//
// @Summary      Change role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string             true  "Username"
// @Param        body      body      changeRoleRequest  true  "Role"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  errorBody
// @Failure      403       {object}  errorBody
// @Failure      404       {object}  errorBody
// @Router       /v1/users/{username}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), c.Param("username"), req.Role, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetActive activates or deactivates an account.
//
// @Summary      Set active flag
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string            true  "Username"
// @Param        body      body      setActiveRequest  true  "Active flag"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  errorBody
// @Failure      403       {object}  errorBody
// @Failure      404       {object}  errorBody
// @Router       /v1/users/{username}/active [patch]
func (h *UserHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.SetActive(c.Request().Context(), c.Param("username"), *req.IsActive, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
