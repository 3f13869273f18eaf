package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
)

const (
	contextTokenKey = "userToken"
	contextUserKey  = "user"

	guestName = "Khách"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

type tokenSigner struct {
	conf    *core.Config
	jwtConf middleware.JWTConfig
}

func newTokenSigner(conf *core.Config, jwtConf middleware.JWTConfig) tokenSigner {
	return tokenSigner{conf: conf, jwtConf: jwtConf}
}

func (ts tokenSigner) claims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ts.conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(ts.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  usr.Username,
		Email:     usr.Email,
		Role:      usr.Role,
		IsStudent: usr.IsStudent(),
		IsTeacher: usr.IsTeacher(),
		IsAdmin:   usr.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func (ts tokenSigner) GenerateToken(usr user.User) (string, error) {
	method := jwt.GetSigningMethod(ts.jwtConf.SigningMethod)
	token := jwt.NewWithClaims(method, ts.claims(usr))

	ss, err := token.SignedString(ts.jwtConf.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextUser loads the user the request token was issued to.
// A token whose user was deleted since is unauthorized.
func getContextUser(ctx echo.Context, svc user.Service) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if core.IsNotFound(err) {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}

type authApi struct {
	svc    user.Service
	signer tokenSigner
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service, signer tokenSigner) {
	api := authApi{svc: svc, signer: signer}

	g.POST("/login", api.login)

	mg := g.Group("/me", jwt)
	mg.GET("", api.me)
	mg.GET("/assistant-context", api.assistantContext)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := bind(ctx, &data, "LoginRequest"); err != nil {
		return err
	}

	// missing credentials fail like wrong ones
	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := api.signer.GenerateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{User: usr, Token: token})
}

func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) assistantContext(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, NewAssistantContext(usr))
}

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// LoginResponse is the logged in user with a token for the authed endpoints.
	LoginResponse struct {
		user.User
		Token string `json:"token"`
	}

	// AssistantContext is the prompt preamble the frontend sends along with chat questions.
	AssistantContext struct {
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
		Context     string `json:"context"`
	}
)

func NewAssistantContext(usr user.User) AssistantContext {
	name, role := usr.FullName, usr.Role
	if name == "" {
		name = guestName
	}
	if role == "" {
		role = guestName
	}
	return AssistantContext{
		DisplayName: name,
		Role:        role,
		Context: "Bạn là EduBot, trợ lý ảo của hệ thống quản lý sinh viên EduChain. " +
			"Người dùng: " + name + " (" + role + "). Trả lời ngắn gọn bằng tiếng Việt.",
	}
}
