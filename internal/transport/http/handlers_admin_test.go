package httptransport

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type AdminEndpointsSuite struct {
	suite.Suite
	ts *testServer
}

func (s *AdminEndpointsSuite) SetupTest() {
	s.ts = newTestServer(s.T())
}

func (s *AdminEndpointsSuite) adminDo(req testRequest) *testRequest {
	if req.headers == nil {
		req.headers = map[string]string{}
	}
	req.headers[adminKeyHeader] = testAdminKey
	return &req
}

func (s *AdminEndpointsSuite) tripBlock(ip string) {
	for range 5 {
		rec := s.ts.do(s.T(), testRequest{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"` + testEmail + `","password":"wrong"}`,
			ip:     ip,
		})
		s.Require().Equal(http.StatusUnauthorized, rec.Code)
	}
}

func (s *AdminEndpointsSuite) TestAdmin_MissingKey() {
	rec := s.ts.do(s.T(), testRequest{
		method: http.MethodPost,
		path:   "/admin/unblock-ip",
		body:   `{"ip":"203.0.113.5"}`,
	})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AdminEndpointsSuite) TestAdmin_WrongKey() {
	rec := s.ts.do(s.T(), testRequest{
		method:  http.MethodPost,
		path:    "/admin/unblock-ip",
		body:    `{"ip":"203.0.113.5"}`,
		headers: map[string]string{adminKeyHeader: "wrong-key"},
	})
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AdminEndpointsSuite) TestUnblockIP_RestoresAccess() {
	s.tripBlock(testClientIP)

	blocked := s.ts.do(s.T(), testRequest{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   `{"email":"` + testEmail + `","password":"` + testPassword + `"}`,
	})
	s.Require().Equal(http.StatusForbidden, blocked.Code)

	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodPost,
		path:   "/admin/unblock-ip",
		body:   `{"ip":"` + testClientIP + `"}`,
		ip:     "198.51.100.7",
	}))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	// The unblocked IP can sign in again immediately; the failure counter was
	// reset along with the block.
	after := s.ts.do(s.T(), testRequest{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   `{"email":"` + testEmail + `","password":"` + testPassword + `"}`,
	})
	s.Equal(http.StatusOK, after.Code, after.Body.String())
}

func (s *AdminEndpointsSuite) TestUnblockIP_NotBlocked() {
	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodPost,
		path:   "/admin/unblock-ip",
		body:   `{"ip":"192.0.2.200"}`,
	}))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *AdminEndpointsSuite) TestForceLogout_KillsAllSessions() {
	pair := s.ts.login(s.T())

	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodPost,
		path:   "/admin/force-logout",
		body:   `{"account_id":"` + s.ts.accountID.String() + `"}`,
	}))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	me := s.ts.do(s.T(), testRequest{method: http.MethodGet, path: "/me", bearer: pair.AccessToken})
	s.Equal(http.StatusUnauthorized, me.Code)

	refresh := s.ts.do(s.T(), testRequest{
		method: http.MethodPost,
		path:   "/auth/refresh",
		body:   `{"refresh_token":"` + pair.RefreshToken + `"}`,
	})
	s.Equal(http.StatusUnauthorized, refresh.Code)
}

// Repeated bumps stay strictly monotonic: tokens minted before either bump
// stay dead, and only a token minted after the latest bump validates.
func (s *AdminEndpointsSuite) TestForceLogout_TwiceInvalidatesEachGeneration() {
	forceLogout := func() {
		rec := s.ts.do(s.T(), *s.adminDo(testRequest{
			method: http.MethodPost,
			path:   "/admin/force-logout",
			body:   `{"account_id":"` + s.ts.accountID.String() + `"}`,
		}))
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	first := s.ts.login(s.T())
	forceLogout()
	second := s.ts.login(s.T())
	forceLogout()

	for _, pair := range []*tokenPairResponse{first, second} {
		me := s.ts.do(s.T(), testRequest{method: http.MethodGet, path: "/me", bearer: pair.AccessToken})
		s.Equal(http.StatusUnauthorized, me.Code)
	}

	third := s.ts.login(s.T())
	me := s.ts.do(s.T(), testRequest{method: http.MethodGet, path: "/me", bearer: third.AccessToken})
	s.Equal(http.StatusOK, me.Code, me.Body.String())
}

func (s *AdminEndpointsSuite) TestForceLogout_InvalidAccountID() {
	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodPost,
		path:   "/admin/force-logout",
		body:   `{"account_id":"not-a-uuid"}`,
	}))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AdminEndpointsSuite) TestListSessions() {
	s.ts.login(s.T())

	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodGet,
		path:   "/admin/accounts/" + s.ts.accountID.String() + "/sessions",
	}))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccountID string            `json:"account_id"`
		Sessions  []json.RawMessage `json:"sessions"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(s.ts.accountID.String(), body.AccountID)
	// One access record plus one refresh chain.
	s.Len(body.Sessions, 2)
}

func (s *AdminEndpointsSuite) TestListBlocks() {
	s.tripBlock(testClientIP)

	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodGet,
		path:   "/admin/blocks",
		ip:     "198.51.100.7",
	}))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Blocks []struct {
			IP   string `json:"ip"`
			Kind string `json:"kind"`
		} `json:"blocks"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Blocks, 1)
	s.Equal(testClientIP, body.Blocks[0].IP)
	s.Equal("temporary", body.Blocks[0].Kind)
}

func (s *AdminEndpointsSuite) TestRecentAttempts() {
	s.tripBlock(testClientIP)

	rec := s.ts.do(s.T(), *s.adminDo(testRequest{
		method: http.MethodGet,
		path:   "/admin/ips/" + testClientIP + "/attempts",
		ip:     "198.51.100.7",
	}))
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		IP       string            `json:"ip"`
		Attempts []json.RawMessage `json:"attempts"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(testClientIP, body.IP)
	s.Len(body.Attempts, 5)
}

func TestAdminEndpointsSuite(t *testing.T) {
	suite.Run(t, new(AdminEndpointsSuite))
}
