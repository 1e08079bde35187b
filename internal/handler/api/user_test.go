//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/handler/api"
	resdto "slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/tests/common/httptest"
	"slot-swapper/tests/common/testutil"
	commandsmock "slot-swapper/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)

	s.router.Use(fakeAuth(uuid.New(), user.RoleAdmin))
	s.router.POST("/admin/users", api.NewUserHandler(s.mockCommands).Provision)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestProvision() {
	url := "/admin/users"
	id := uuid.New()
	reqBody := map[string]any{"id": id.String(), "name": "Alice", "email": "alice@example.com", "role": "operator"}

	s.Run("success: 201 with the mirrored account", func() {
		created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		s.mockCommands.EXPECT().Provision(gomock.Any(), commands.ProvisionUserInput{
			ID:    id,
			Name:  "Alice",
			Email: "alice@example.com",
			Role:  "operator",
		}).Return(&commands.UserResult{
			ID: id, Name: "Alice", Email: "alice@example.com", Role: "operator", CreatedAt: created,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(resdto.UserResponse{ID: id, Name: "Alice", Email: "alice@example.com", Role: "operator", CreatedAt: created}, body)
	})

	s.Run("binding failures are 400", func() {
		for name, mutate := range map[string]func(map[string]any){
			"missing id":   testutil.Field("id", nil),
			"missing name": testutil.Field("name", nil),
			"bad email":    testutil.Field("email", "alice"),
			"unknown role": testutil.Field("role", "root"),
		} {
			s.Run(name, func() {
				body := testutil.DtoMap(s.T(), reqBody, mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("already provisioned is 409", func() {
		s.mockCommands.EXPECT().Provision(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("duplicate key"), errs.ErrUserExists)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already provisioned")
	})
}
