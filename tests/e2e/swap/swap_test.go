//go:build e2e

package swap_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/handler/dto/request"
	"slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/tests/common/builder"
	"slot-swapper/tests/common/dbtest"
	"slot-swapper/tests/common/httptest"
	"slot-swapper/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	eventsURL           = "/api/events"
	eventURL            = "/api/events/%s"
	swappableURL        = "/api/swappable-slots"
	swapRequestURL      = "/api/swap-request"
	swapResponseURL     = "/api/swap-response/%s"
	swapRequestsURL     = "/api/swap-requests"
	adminForceRejectURL = "/api/admin/swap-requests/%s/reject"
	adminUsersURL       = "/api/admin/users"
)

type SwapSuite struct {
	e2e.SharedSuite
}

func (s *SwapSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSwapSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SwapSuite))
}

type party struct {
	id    uuid.UUID
	token string
}

func (s *SwapSuite) newParty(t *testing.T, name string, role user.Role) party {
	t.Helper()
	id := dbtest.CreateTestUser(t, s.DB, name, name+"@example.com", role)
	return party{id: id, token: s.Tokens.GenerateToken(t, id, role)}
}

func (s *SwapSuite) createSlot(t *testing.T, p party, title string, start time.Time, status string) response.SlotResponse {
	t.Helper()
	body := builder.NewSlotBuilder().
		WithTitle(title).
		WithStatus(status).
		StartingAt(start, time.Hour).
		BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, eventsURL, body, p.token)
	var created response.SlotResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return created
}

func (s *SwapSuite) getSlot(t *testing.T, p party, id uuid.UUID) response.SlotResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(eventURL, id), nil, p.token)
	var got response.SlotResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

func (s *SwapSuite) listSlots(t *testing.T, p party) []response.SlotResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, eventsURL, nil, p.token)
	var got []response.SlotResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

func (s *SwapSuite) propose(t *testing.T, p party, mine, theirs uuid.UUID) response.ProposalResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
		request.ProposeSwapRequest{MySlotID: mine, TheirSlotID: theirs}, p.token)
	var created response.ProposalResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return created
}

func (s *SwapSuite) respond(t *testing.T, p party, proposalID uuid.UUID, accepted bool) *http.Response {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(swapResponseURL, proposalID),
		request.RespondSwapRequest{Accepted: &accepted}, p.token)
	return w.Result()
}

var start = time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

// =============================================================================
// TestSlotLifecycle - calendar operations owned by a single user
// =============================================================================

func (s *SwapSuite) TestSlotLifecycle() {
	s.Run("Normal case: create, update and delete an own slot", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)

		created := s.createSlot(t, alice, "Standup", start, "")
		require.Equal(t, "BUSY", created.Status)
		require.Equal(t, alice.id, created.OwnerID)

		title := "Standup (moved)"
		status := "OFFERED"
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(eventURL, created.ID),
			request.UpdateSlotRequest{Title: &title, Status: &status}, alice.token)
		var updated response.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)

		want := created
		want.Title = title
		want.Status = status
		if diff := cmp.Diff(want, updated,
			cmpopts.IgnoreFields(response.SlotResponse{}, "UpdatedAt"),
			cmpopts.EquateApproxTime(time.Millisecond),
		); diff != "" {
			t.Errorf("updated slot mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(eventURL, created.ID), nil, alice.token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(eventURL, created.ID), nil, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
	})

	s.Run("Error case: end before start is rejected", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)

		body := builder.NewSlotBuilder().StartingAt(start, time.Hour).BuildCreateRequestDTO()
		body.EndTime = body.StartTime.Add(-time.Minute)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, eventsURL, body, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "End time must be after start time")
	})

	s.Run("Error case: another user's slot reads as not found", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		created := s.createSlot(t, alice, "Private", start, "BUSY")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(eventURL, created.ID), nil, bob.token,
			httptest.WithHeader("X-Request-ID", "e2e-foreign-slot"))
		body := httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
		require.Equal(t, "e2e-foreign-slot", body.Error.RequestID)
		require.Equal(t, "e2e-foreign-slot", w.Header().Get("X-Request-ID"))
	})

	s.Run("Auth test - cookie token is accepted and missing token is not", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, eventsURL, nil, "",
			httptest.WithCookies(&http.Cookie{Name: middleware.AccessTokenCookie, Value: alice.token}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, eventsURL, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")

		expired := s.Tokens.CreateExpiredToken(t, alice.id, user.RoleViewer)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, eventsURL, nil, expired)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

// =============================================================================
// TestSwappableSlots - marketplace projection
// =============================================================================

func (s *SwapSuite) TestSwappableSlots() {
	s.Run("Normal case: only other users' offered slots are listed, with owner details", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)

		s.createSlot(t, alice, "Alice offered", start, "OFFERED")
		bobOffered := s.createSlot(t, bob, "Bob offered", start.Add(2*time.Hour), "OFFERED")
		s.createSlot(t, bob, "Bob busy", start.Add(4*time.Hour), "BUSY")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, swappableURL, nil, alice.token)
		var got []response.OfferedSlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		require.Len(t, got, 1)
		require.Equal(t, bobOffered.ID, got[0].ID)
		require.Equal(t, "bob", got[0].OwnerName)
		require.Equal(t, "bob@example.com", got[0].OwnerEmail)
	})
}

// =============================================================================
// TestSwapNegotiation - propose, respond and the resulting slot states
// =============================================================================

func (s *SwapSuite) TestSwapNegotiation() {
	s.Run("Normal case: accepted swap exchanges owners and marks both slots busy", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		aliceSlot := s.createSlot(t, alice, "Alice Monday", start, "OFFERED")
		bobSlot := s.createSlot(t, bob, "Bob Tuesday", start.Add(24*time.Hour), "OFFERED")

		proposal := s.propose(t, alice, aliceSlot.ID, bobSlot.ID)
		require.Equal(t, "PENDING", proposal.Status)
		require.Equal(t, alice.id, proposal.ProposerID)
		require.Equal(t, bob.id, proposal.CounterpartID)

		require.Equal(t, "LOCKED", s.getSlot(t, alice, aliceSlot.ID).Status)
		require.Equal(t, "LOCKED", s.getSlot(t, bob, bobSlot.ID).Status)

		// locked slots leave the marketplace
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, swappableURL, nil, alice.token)
		var market []response.OfferedSlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &market)
		require.Empty(t, market)

		res := s.respond(t, bob, proposal.ID, true)
		require.Equal(t, http.StatusOK, res.StatusCode)

		aliceNow := s.getSlot(t, alice, bobSlot.ID)
		require.Equal(t, alice.id, aliceNow.OwnerID)
		require.Equal(t, "BUSY", aliceNow.Status)
		bobNow := s.getSlot(t, bob, aliceSlot.ID)
		require.Equal(t, bob.id, bobNow.OwnerID)
		require.Equal(t, "BUSY", bobNow.Status)

		ids := func(slots []response.SlotResponse) []uuid.UUID {
			out := make([]uuid.UUID, 0, len(slots))
			for _, sl := range slots {
				out = append(out, sl.ID)
			}
			return out
		}
		require.Equal(t, []uuid.UUID{bobSlot.ID}, ids(s.listSlots(t, alice)))
		require.Equal(t, []uuid.UUID{aliceSlot.ID}, ids(s.listSlots(t, bob)))

		res = s.respond(t, bob, proposal.ID, true)
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	s.Run("Normal case: rejected swap puts both slots back on offer", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		aliceSlot := s.createSlot(t, alice, "Alice Monday", start, "OFFERED")
		bobSlot := s.createSlot(t, bob, "Bob Tuesday", start.Add(24*time.Hour), "OFFERED")

		proposal := s.propose(t, alice, aliceSlot.ID, bobSlot.ID)

		res := s.respond(t, bob, proposal.ID, false)
		require.Equal(t, http.StatusOK, res.StatusCode)

		got := s.getSlot(t, alice, aliceSlot.ID)
		require.Equal(t, "OFFERED", got.Status)
		require.Equal(t, alice.id, got.OwnerID)
		got = s.getSlot(t, bob, bobSlot.ID)
		require.Equal(t, "OFFERED", got.Status)
		require.Equal(t, bob.id, got.OwnerID)

		// both slots can be proposed again
		s.propose(t, bob, bobSlot.ID, aliceSlot.ID)
	})

	s.Run("Normal case: both parties see the proposal with enriched details", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		aliceSlot := s.createSlot(t, alice, "Alice Monday", start, "OFFERED")
		bobSlot := s.createSlot(t, bob, "Bob Tuesday", start.Add(24*time.Hour), "OFFERED")
		proposal := s.propose(t, alice, aliceSlot.ID, bobSlot.ID)

		var aliceLists response.ProposalListsResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, swapRequestsURL, nil, alice.token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &aliceLists)
		require.Empty(t, aliceLists.Incoming)
		require.Len(t, aliceLists.Outgoing, 1)

		var bobLists response.ProposalListsResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, swapRequestsURL, nil, bob.token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &bobLists)
		require.Empty(t, bobLists.Outgoing)
		require.Len(t, bobLists.Incoming, 1)

		incoming := bobLists.Incoming[0]
		require.Equal(t, proposal.ID, incoming.ID)
		require.Equal(t, "PENDING", incoming.Status)
		require.Equal(t, "alice", incoming.Proposer.Name)
		require.Equal(t, "bob@example.com", incoming.Counterpart.Email)
		require.Equal(t, "Alice Monday", incoming.ProposerSlot.Title)
		require.Equal(t, "LOCKED", incoming.CounterpartSlot.Status)
	})

	s.Run("Error case: proposals that break the swap rules", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		carol := s.newParty(t, "carol", user.RoleViewer)
		aliceOffered := s.createSlot(t, alice, "Alice offered", start, "OFFERED")
		aliceOther := s.createSlot(t, alice, "Alice other", start.Add(2*time.Hour), "OFFERED")
		bobBusy := s.createSlot(t, bob, "Bob busy", start.Add(24*time.Hour), "BUSY")
		bobOffered := s.createSlot(t, bob, "Bob offered", start.Add(26*time.Hour), "OFFERED")
		carolOffered := s.createSlot(t, carol, "Carol offered", start.Add(48*time.Hour), "OFFERED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
			request.ProposeSwapRequest{MySlotID: aliceOffered.ID, TheirSlotID: aliceOther.ID}, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "your own slot")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
			request.ProposeSwapRequest{MySlotID: aliceOffered.ID, TheirSlotID: bobBusy.ID}, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not available for swapping")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
			request.ProposeSwapRequest{MySlotID: aliceOffered.ID, TheirSlotID: uuid.New()}, alice.token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")

		s.propose(t, alice, aliceOffered.ID, bobOffered.ID)

		// the counterpart slot is now locked by the first proposal
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
			request.ProposeSwapRequest{MySlotID: carolOffered.ID, TheirSlotID: bobOffered.ID}, carol.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "locked")

		// and a locked slot cannot be edited or deleted by its owner
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(eventURL, bobOffered.ID), nil, bob.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "locked")
	})

	s.Run("Concurrency test - parallel proposals for one slot have exactly one winner", func() {
		t := s.T()
		const proposers = 8
		bob := s.newParty(t, "bob", user.RoleViewer)
		target := s.createSlot(t, bob, "Bob contested", start, "OFFERED")

		parties := make([]party, proposers)
		offers := make([]response.SlotResponse, proposers)
		for i := range parties {
			parties[i] = s.newParty(t, fmt.Sprintf("proposer%d", i), user.RoleViewer)
			offers[i] = s.createSlot(t, parties[i], "Offer", start.Add(time.Duration(i+1)*24*time.Hour), "OFFERED")
		}

		codes := make([]int, proposers)
		gate := make(chan struct{})
		var wg sync.WaitGroup
		for i := range parties {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-gate
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, swapRequestURL,
					request.ProposeSwapRequest{MySlotID: offers[i].ID, TheirSlotID: target.ID}, parties[i].token)
				codes[i] = w.Code
			}(i)
		}
		close(gate)
		wg.Wait()

		created, conflicted := 0, 0
		winner := -1
		for i, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
				winner = i
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "status codes: %v", codes)
		require.Equal(t, proposers-1, conflicted, "status codes: %v", codes)

		require.Equal(t, "LOCKED", s.getSlot(t, bob, target.ID).Status)
		for i := range parties {
			want := "OFFERED"
			if i == winner {
				want = "LOCKED"
			}
			require.Equal(t, want, s.getSlot(t, parties[i], offers[i].ID).Status, "proposer %d", i)
		}

		var pending int
		require.NoError(t, s.DB.QueryRow(context.Background(),
			`SELECT count(*) FROM swap_proposals WHERE status = 'PENDING' AND counterpart_slot_id = $1`,
			target.ID).Scan(&pending))
		require.Equal(t, 1, pending)
	})

	s.Run("Error case: only the counterpart may respond", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		aliceSlot := s.createSlot(t, alice, "Alice Monday", start, "OFFERED")
		bobSlot := s.createSlot(t, bob, "Bob Tuesday", start.Add(24*time.Hour), "OFFERED")
		proposal := s.propose(t, alice, aliceSlot.ID, bobSlot.ID)

		res := s.respond(t, alice, proposal.ID, true)
		require.Equal(t, http.StatusForbidden, res.StatusCode)

		res = s.respond(t, bob, uuid.New(), true)
		require.Equal(t, http.StatusNotFound, res.StatusCode)

		require.Equal(t, "LOCKED", s.getSlot(t, alice, aliceSlot.ID).Status)
	})
}

// =============================================================================
// TestAdminForceReject - clearing proposals that can no longer be resolved
// =============================================================================

func (s *SwapSuite) TestAdminForceReject() {
	s.Run("Normal case: a vanished slot blocks accept until an admin rejects", func() {
		t := s.T()
		alice := s.newParty(t, "alice", user.RoleViewer)
		bob := s.newParty(t, "bob", user.RoleViewer)
		admin := s.newParty(t, "root", user.RoleAdmin)
		aliceSlot := s.createSlot(t, alice, "Alice Monday", start, "OFFERED")
		bobSlot := s.createSlot(t, bob, "Bob Tuesday", start.Add(24*time.Hour), "OFFERED")
		proposal := s.propose(t, alice, aliceSlot.ID, bobSlot.ID)

		dbtest.DeleteSlotBehindAPI(t, s.DB, aliceSlot.ID)

		res := s.respond(t, bob, proposal.ID, true)
		require.Equal(t, http.StatusConflict, res.StatusCode)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adminForceRejectURL, proposal.ID), nil, admin.token)
		var rejected response.ProposalResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)
		require.Equal(t, "REJECTED", rejected.Status)

		// the surviving slot is back on offer
		require.Equal(t, "OFFERED", s.getSlot(t, bob, bobSlot.ID).Status)
	})

	s.Run("Auth test - non-admin roles are refused", func() {
		t := s.T()
		operator := s.newParty(t, "ops", user.RoleOperator)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adminForceRejectURL, uuid.New()), nil, operator.token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *SwapSuite) TestUserProvisioning() {
	s.Run("Normal case: a provisioned account can offer slots that others see by name", func() {
		t := s.T()
		admin := s.newParty(t, "root", user.RoleAdmin)
		alice := s.newParty(t, "alice", user.RoleViewer)
		danaID := uuid.New()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminUsersURL, map[string]any{
			"id": danaID, "name": "Dana", "email": "Dana@Example.com",
		}, admin.token)
		var created response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "dana@example.com", created.Email)
		require.Equal(t, "viewer", created.Role)

		dana := party{id: danaID, token: s.Tokens.GenerateToken(t, danaID, user.RoleViewer)}
		s.createSlot(t, dana, "Dana Friday", start, "OFFERED")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, swappableURL, nil, alice.token)
		var offered []response.OfferedSlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &offered)
		require.Len(t, offered, 1)
		require.Equal(t, "Dana", offered[0].OwnerName)
	})

	s.Run("Error case: provisioning the same account twice conflicts", func() {
		t := s.T()
		admin := s.newParty(t, "root", user.RoleAdmin)
		body := map[string]any{"id": uuid.New(), "name": "Erin", "email": "erin@example.com"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminUsersURL, body, admin.token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, adminUsersURL, body, admin.token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already provisioned")
	})

	s.Run("Auth test - viewers cannot provision accounts", func() {
		t := s.T()
		viewer := s.newParty(t, "vic", user.RoleViewer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminUsersURL, map[string]any{
			"id": uuid.New(), "name": "Mallory", "email": "mallory@example.com",
		}, viewer.token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}
