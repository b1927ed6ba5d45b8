package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/radiogagalight/f1-together/internal/domain/user"
	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
	idgen "github.com/radiogagalight/f1-together/internal/platform/id"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if p, ok := v.principals[token]; ok {
		return p, nil
	}
	return user.Principal{}, fmt.Errorf("%w: token is not active", usecase.ErrUnauthorized)
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	profileRepo := memory.NewProfileRepository()
	commentRepo := memory.NewCommentRepository()
	notifRepo := memory.NewNotificationRepository()
	seasonPickRepo := memory.NewSeasonPickRepository()
	midseasonRepo := memory.NewMidseasonPickRepository()
	racePickRepo := memory.NewRacePickRepository()
	pushRepo := memory.NewPushSubscriptionRepository()
	seasonRepo := memory.NewSeasonRepository(memory.SeedRaces(), memory.SeedDrivers(), memory.SeedConstructors())

	commentService, err := usecase.NewCommentService(
		commentRepo, notifRepo, profileRepo, seasonRepo, pushRepo,
		nil, usecase.NewMentionService(), idgen.NewRandomGenerator(), logging.NewNop(), 2,
	)
	if err != nil {
		t.Fatalf("create comment service: %v", err)
	}
	t.Cleanup(commentService.Close)

	handler := NewHandler(
		usecase.NewProfileService(profileRepo, seasonRepo),
		usecase.NewSeasonService(seasonRepo),
		usecase.NewSeasonPickService(seasonPickRepo, midseasonRepo, seasonRepo),
		usecase.NewRacePickService(racePickRepo, seasonRepo),
		commentService,
		usecase.NewFeedService(seasonPickRepo, racePickRepo, commentRepo, profileRepo, seasonRepo, logging.NewNop()),
		usecase.NewNotificationService(notifRepo, profileRepo, seasonRepo),
		usecase.NewPushService(pushRepo),
		usecase.NewAccountService(profileRepo, commentRepo, notifRepo, seasonPickRepo, midseasonRepo, racePickRepo, pushRepo, logging.NewNop()),
		logging.NewNop(),
	)

	verifier := &stubVerifier{principals: map[string]user.Principal{
		"token-max":   {UserID: "id-max", Email: "max.verstappen@example.com"},
		"token-lando": {UserID: "id-lando", Email: "lando.norris@example.com"},
	}}

	return NewRouter(handler, verifier, logging.NewNop(), []string{"*"})
}

func doRequest(t *testing.T, server http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal %s %s response: %v", method, path, err)
		}
	}
	return rec, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	return data
}

func dataList(t *testing.T, envelope map[string]any) []any {
	t.Helper()
	data, ok := envelope["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %v", envelope)
	}
	return data
}

func TestRouter_Healthz(t *testing.T) {
	server := newTestServer(t)

	rec, envelope := doRequest(t, server, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := dataObject(t, envelope)["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", got)
	}
}

func TestRouter_SeasonCatalogIsPublic(t *testing.T) {
	server := newTestServer(t)

	rec, envelope := doRequest(t, server, http.MethodGet, "/v1/season/races", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	races := dataList(t, envelope)
	if len(races) != len(memory.SeedRaces()) {
		t.Fatalf("expected full calendar, got %d entries", len(races))
	}

	rec, _ = doRequest(t, server, http.MethodGet, "/v1/season/drivers", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for drivers, got %d", rec.Code)
	}
	rec, _ = doRequest(t, server, http.MethodGet, "/v1/season/constructors", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for constructors, got %d", rec.Code)
	}
}

func TestRouter_ProfileRequiresAuth(t *testing.T) {
	server := newTestServer(t)

	rec, _ := doRequest(t, server, http.MethodGet, "/v1/me/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec, _ = doRequest(t, server, http.MethodGet, "/v1/me/profile", "token-bogus", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	server := newTestServer(t)

	// First fetch creates a default profile from the email local part.
	rec, envelope := doRequest(t, server, http.MethodGet, "/v1/me/profile", "token-max", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	created := dataObject(t, envelope)
	if created["display_name"] != "max.verstappen" {
		t.Fatalf("unexpected default display name: %v", created["display_name"])
	}

	rec, envelope = doRequest(t, server, http.MethodPut, "/v1/me/profile", "token-max",
		`{"display_name":"Max Verstappen","fav_teams":["red-bull"],"fav_drivers":["max-verstappen"],"timezone_offset":60}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := dataObject(t, envelope)
	if updated["display_name"] != "Max Verstappen" {
		t.Fatalf("unexpected display name: %v", updated["display_name"])
	}
	if updated["handle"] != "max" {
		t.Fatalf("unexpected handle: %v", updated["handle"])
	}

	// Unknown fields are rejected.
	rec, _ = doRequest(t, server, http.MethodPut, "/v1/me/profile", "token-max",
		`{"display_name":"Max","nickname":"simply lovely"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/members", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := len(dataList(t, envelope)); got != 1 {
		t.Fatalf("expected 1 member, got %d", got)
	}
}

func TestRouter_CommentAndNotificationFlow(t *testing.T) {
	server := newTestServer(t)

	// Both users register a profile by fetching it.
	for _, token := range []string{"token-max", "token-lando"} {
		if rec, _ := doRequest(t, server, http.MethodGet, "/v1/me/profile", token, ""); rec.Code != http.StatusOK {
			t.Fatalf("create profile for %s: %d", token, rec.Code)
		}
	}
	// Handles derive from display names.
	if rec, _ := doRequest(t, server, http.MethodPut, "/v1/me/profile", "token-lando",
		`{"display_name":"Lando Norris","timezone_offset":0}`); rec.Code != http.StatusOK {
		t.Fatalf("update lando profile: %d", rec.Code)
	}

	rec, envelope := doRequest(t, server, http.MethodPost, "/v1/races/1/comments", "token-max",
		`{"content":"@lando bring it home this weekend"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	posted := dataObject(t, envelope)
	recipients, ok := posted["notified_user_ids"].([]any)
	if !ok || len(recipients) != 1 || recipients[0] != "id-lando" {
		t.Fatalf("unexpected recipients: %v", posted["notified_user_ids"])
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/races/1/comments", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	thread := dataList(t, envelope)
	if len(thread) != 1 {
		t.Fatalf("expected 1 comment in thread, got %d", len(thread))
	}
	entry := thread[0].(map[string]any)
	mentions, ok := entry["mentions"].([]any)
	if !ok || len(mentions) != 1 {
		t.Fatalf("expected resolved mention span, got %v", entry["mentions"])
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/me/notifications/unread-count", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := dataObject(t, envelope)["count"]; got != float64(1) {
		t.Fatalf("expected 1 unread, got %v", got)
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/me/notifications/unread", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	unread := dataList(t, envelope)
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(unread))
	}
	item := unread[0].(map[string]any)
	if item["from_user_id"] != "id-max" || item["race_name"] != "Australian Grand Prix" {
		t.Fatalf("unexpected notification: %v", item)
	}

	// The fetch marked everything read.
	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/me/notifications/unread-count", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := dataObject(t, envelope)["count"]; got != float64(0) {
		t.Fatalf("expected 0 unread after view, got %v", got)
	}
}

func TestRouter_PicksFlow(t *testing.T) {
	server := newTestServer(t)

	rec, envelope := doRequest(t, server, http.MethodPut, "/v1/me/season-picks/wdc_winner", "token-max",
		`{"value":"max-verstappen"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := dataObject(t, envelope)["wdc_winner"]; got != "max-verstappen" {
		t.Fatalf("unexpected wdc winner: %v", got)
	}

	rec, _ = doRequest(t, server, http.MethodPut, "/v1/me/season-picks/fastest_pitstop", "token-max",
		`{"value":"red-bull"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}

	// Sprint fields only on sprint rounds: round 1 is a standard weekend.
	rec, _ = doRequest(t, server, http.MethodPut, "/v1/me/race-picks/1", "token-max",
		`{"sprint_winner":"max-verstappen"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for sprint picks on round 1, got %d", rec.Code)
	}

	rec, envelope = doRequest(t, server, http.MethodPut, "/v1/me/race-picks/2", "token-max",
		`{"race_winner":"lando-norris","sprint_winner":"max-verstappen"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := dataObject(t, envelope)["sprint_winner"]; got != "max-verstappen" {
		t.Fatalf("unexpected sprint winner: %v", got)
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/me/race-picks/status", "token-max", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	statuses := dataList(t, envelope)
	if len(statuses) != len(memory.SeedRaces()) {
		t.Fatalf("expected one status per round, got %d", len(statuses))
	}
	round2 := statuses[1].(map[string]any)
	if round2["filled_count"] != float64(2) || round2["field_count"] != float64(14) {
		t.Fatalf("unexpected round 2 status: %v", round2)
	}
}

func TestRouter_PushSubscriptionFlow(t *testing.T) {
	server := newTestServer(t)

	rec, _ := doRequest(t, server, http.MethodPost, "/v1/me/push-subscription", "token-max",
		`{"endpoint":"https://push.example.com/abc","keys":{"p256dh":"k1","auth":"k2"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doRequest(t, server, http.MethodPost, "/v1/me/push-subscription", "token-max", `{"keys":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing endpoint, got %d", rec.Code)
	}

	rec, _ = doRequest(t, server, http.MethodDelete, "/v1/me/push-subscription", "token-max", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_AccountWipe(t *testing.T) {
	server := newTestServer(t)

	if rec, _ := doRequest(t, server, http.MethodGet, "/v1/me/profile", "token-max", ""); rec.Code != http.StatusOK {
		t.Fatalf("create profile: %d", rec.Code)
	}
	if rec, _ := doRequest(t, server, http.MethodPost, "/v1/races/1/comments", "token-max",
		`{"content":"see you all in Melbourne"}`); rec.Code != http.StatusCreated {
		t.Fatalf("post comment: %d", rec.Code)
	}

	rec, envelope := doRequest(t, server, http.MethodDelete, "/v1/me/account", "token-max", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := dataObject(t, envelope)["status"]; got != "deleted" {
		t.Fatalf("unexpected wipe payload: %v", got)
	}

	rec, envelope = doRequest(t, server, http.MethodGet, "/v1/races/1/comments", "token-lando", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := len(dataList(t, envelope)); got != 0 {
		t.Fatalf("expected wiped thread, got %d comments", got)
	}
}

func TestRouter_FeedFlow(t *testing.T) {
	server := newTestServer(t)

	if rec, _ := doRequest(t, server, http.MethodGet, "/v1/me/profile", "token-max", ""); rec.Code != http.StatusOK {
		t.Fatalf("create profile: %d", rec.Code)
	}
	if rec, _ := doRequest(t, server, http.MethodPut, "/v1/me/season-picks/wdc_winner", "token-max",
		`{"value":"max-verstappen"}`); rec.Code != http.StatusOK {
		t.Fatalf("set season pick: %d", rec.Code)
	}
	if rec, _ := doRequest(t, server, http.MethodPost, "/v1/races/1/comments", "token-max",
		`{"content":"lights out and away we go"}`); rec.Code != http.StatusCreated {
		t.Fatalf("post comment: %d", rec.Code)
	}

	rec, envelope := doRequest(t, server, http.MethodGet, "/v1/feed", "token-max", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := dataList(t, envelope)
	if len(items) != 2 {
		t.Fatalf("expected 2 activity items, got %d", len(items))
	}
	labels := make(map[string]bool, len(items))
	for _, raw := range items {
		item := raw.(map[string]any)
		labels[item["label"].(string)] = true
	}
	if !labels["updated their season predictions"] {
		t.Fatalf("expected season pick activity, got %v", labels)
	}
	if !labels["posted a comment about the Australian Grand Prix"] {
		t.Fatalf("expected comment activity, got %v", labels)
	}
}
