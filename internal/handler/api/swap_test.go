//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/handler/api"
	resdto "slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/pkg/errs"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"
	"slot-swapper/tests/common/builder"
	"slot-swapper/tests/common/httptest"
	"slot-swapper/tests/common/testutil"
	commandsmock "slot-swapper/tests/mock/commands"
	queriesmock "slot-swapper/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SwapHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSwapCommands
	mockQueries  *queriesmock.MockSwapQueries
	handler      *api.SwapHandler
	userID       uuid.UUID
}

func (s *SwapHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSwapCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSwapQueries(s.mockCtrl)
	s.handler = api.NewSwapHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	s.router.Use(fakeAuth(s.userID, user.RoleAdmin))
	s.router.POST("/swap-request", s.handler.Propose)
	s.router.POST("/swap-response/:requestId", s.handler.Respond)
	s.router.GET("/swap-requests", s.handler.ListMine)
	s.router.POST("/admin/swap-requests/:requestId/reject", s.handler.ForceReject)
}

func (s *SwapHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSwapHandlerSuite(t *testing.T) {
	suite.Run(t, new(SwapHandlerTestSuite))
}

// ================================================================================
// TestPropose
// ================================================================================

func (s *SwapHandlerTestSuite) TestPropose() {
	url := "/swap-request"
	mySlot, theirSlot := uuid.New(), uuid.New()
	reqBody := map[string]any{"my_slot_id": mySlot.String(), "their_slot_id": theirSlot.String()}
	result := builder.NewProposalBuilder().With(func(b *builder.ProposalBuilder) {
		b.ProposerID = s.userID
		b.ProposerSlotID = mySlot
		b.CounterpartSlotID = theirSlot
	}).BuildResult()

	s.Run("success: 201 with a pending proposal", func() {
		s.mockCommands.EXPECT().Propose(gomock.Any(), commands.ProposeInput{
			ActorID:     s.userID,
			MySlotID:    mySlot,
			TheirSlotID: theirSlot,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ProposalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.ID, body.ID)
		s.Equal("PENDING", body.Status)
		s.Equal(mySlot, body.ProposerSlotID)
	})

	s.Run("binding failures are 400", func() {
		for name, mutate := range map[string]func(map[string]any){
			"missing my_slot_id":    testutil.Field("my_slot_id", nil),
			"missing their_slot_id": testutil.Field("their_slot_id", nil),
			"malformed uuid":        testutil.Field("their_slot_id", "42"),
			"nil uuid":              testutil.Field("my_slot_id", uuid.Nil.String()),
		} {
			s.Run(name, func() {
				body := testutil.DtoMap(s.T(), reqBody, mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			})
		}
	})

	failures := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"same slot twice", errs.Wrap(errs.ErrInvalidInput, "slots must differ"), http.StatusBadRequest, "Invalid request"},
		{"slot missing", errs.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
		{"not offered", errs.ErrNotEligible, http.StatusUnprocessableEntity, "not available for swapping"},
		{"own slot", errs.ErrSelfSwapRejected, http.StatusUnprocessableEntity, "own slot"},
		{"locked", errs.ErrSlotLocked, http.StatusConflict, "locked"},
		{"lost race", errs.Mark(errs.New("cas mismatch"), errs.ErrConflict), http.StatusConflict, "retry"},
		{"store down", errs.Mark(errs.New("timeout"), errs.ErrUnavailable), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range failures {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Propose(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestRespond
// ================================================================================

func (s *SwapHandlerTestSuite) TestRespond() {
	proposalID := uuid.New()
	url := "/swap-response/" + proposalID.String()

	s.Run("accept", func() {
		result := builder.NewProposalBuilder().WithStatus("ACCEPTED").BuildResult()
		s.mockCommands.EXPECT().Respond(gomock.Any(), commands.RespondInput{
			ActorID:    s.userID,
			ProposalID: proposalID,
			Accept:     true,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"accepted": true}, "bearer-token")

		var body resdto.ProposalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ACCEPTED", body.Status)
	})

	s.Run("explicit false is a reject", func() {
		result := builder.NewProposalBuilder().WithStatus("REJECTED").BuildResult()
		s.mockCommands.EXPECT().Respond(gomock.Any(), commands.RespondInput{
			ActorID:    s.userID,
			ProposalID: proposalID,
			Accept:     false,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"accepted": false}, "bearer-token")

		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("missing accepted is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed request id is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/swap-response/abc", map[string]any{"accepted": true}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request id")
	})

	failures := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"unknown proposal", errs.ErrProposalNotFound, http.StatusNotFound, "not found"},
		{"not the counterpart", errs.ErrUnauthorized, http.StatusForbidden, "Not allowed"},
		{"second response", errs.ErrAlreadyResolved, http.StatusUnprocessableEntity, "already been resolved"},
		{"slot deleted underneath", errs.ErrSlotVanished, http.StatusConflict, "administrator"},
	}
	for _, tc := range failures {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Respond(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"accepted": true}, "bearer-token")

			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestListMine / TestForceReject
// ================================================================================

func (s *SwapHandlerTestSuite) TestListMine() {
	incoming := builder.NewProposalBuilder().BuildView()
	s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID).
		Return(&queries.ProposalLists{Incoming: []*queries.ProposalView{incoming}, Outgoing: []*queries.ProposalView{}}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/swap-requests", nil, "bearer-token")

	var body resdto.ProposalListsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body.Incoming, 1)
	s.Empty(body.Outgoing)
	s.Equal(incoming.ID, body.Incoming[0].ID)
	s.Equal("Proposer", body.Incoming[0].Proposer.Name)
	s.Equal(incoming.ProposerSlot.ID, body.Incoming[0].ProposerSlot.ID)
}

func (s *SwapHandlerTestSuite) TestForceReject() {
	proposalID := uuid.New()

	s.Run("success", func() {
		result := builder.NewProposalBuilder().WithStatus("REJECTED").BuildResult()
		s.mockCommands.EXPECT().ForceReject(gomock.Any(), commands.ForceRejectInput{
			ActorID:    s.userID,
			ProposalID: proposalID,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/swap-requests/"+proposalID.String()+"/reject", nil, "bearer-token")

		var body resdto.ProposalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("REJECTED", body.Status)
	})

	s.Run("already resolved is 422", func() {
		s.mockCommands.EXPECT().ForceReject(gomock.Any(), gomock.Any()).Return(nil, errs.ErrAlreadyResolved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/swap-requests/"+proposalID.String()+"/reject", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "already been resolved")
	})
}
