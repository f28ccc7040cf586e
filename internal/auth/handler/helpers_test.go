package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/blog-service/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app         *fiber.App
	users       *mocks.MockUserRepository
	posts       *mocks.MockPostRepository
	tokens      *mocks.MockTokenGenerator
	revocations *mocks.MockTokenRevocationStore
}

type appOptions struct {
	revocation bool
	checks     map[string]handler.HealthCheck
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	ctrl := gomock.NewController(t)
	ta := &testApp{
		users:  mocks.NewMockUserRepository(ctrl),
		posts:  mocks.NewMockPostRepository(ctrl),
		tokens: mocks.NewMockTokenGenerator(ctrl),
	}

	logger := zap.NewNop()
	serviceOpts := []service.Option{service.WithClock(func() time.Time { return fixedNow }), service.WithLogger(logger)}
	if opts.revocation {
		ta.revocations = mocks.NewMockTokenRevocationStore(ctrl)
		serviceOpts = append(serviceOpts, service.WithRevocationStore(ta.revocations))
	}

	hasher := service.NewPasswordHasher(bcrypt.MinCost, 2)
	userService := service.NewUserService(ta.users, ta.tokens, hasher, serviceOpts...)
	postService := service.NewPostService(ta.posts, serviceOpts...)

	ta.app = fiber.New()
	handler.RegisterRoutes(ta.app,
		handler.NewAuthHandler(userService, logger),
		handler.NewPostHandler(postService, logger),
		handler.NewHealthHandler(opts.checks, logger))

	return ta
}

func (ta *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// expectToken makes the mocked token service accept token for subject.
func (ta *testApp) expectToken(token, subject string) *gomock.Call {
	return ta.tokens.EXPECT().Validate(token).Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        "jti-" + subject,
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(15 * time.Minute)),
		},
	}, nil)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}
