package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/season/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/season/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/season/constructors", handler.ListConstructors)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedPickRoutes(mux, handler, verifier)
	registerAuthorizedSocialRoutes(mux, handler, verifier)
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/members", RequireAuth(verifier, http.HandlerFunc(handler.ListMembers)))
	mux.Handle("GET /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyProfile)))
	mux.Handle("DELETE /v1/me/account", RequireAuth(verifier, http.HandlerFunc(handler.DeleteMyAccount)))
}

func registerAuthorizedPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me/season-picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMySeasonPicks)))
	mux.Handle("PUT /v1/me/season-picks/{category}", RequireAuth(verifier, http.HandlerFunc(handler.SetMySeasonPick)))
	mux.Handle("GET /v1/me/midseason-picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMyMidseasonPicks)))
	mux.Handle("PUT /v1/me/midseason-picks/{category}", RequireAuth(verifier, http.HandlerFunc(handler.SetMyMidseasonPick)))
	mux.Handle("GET /v1/me/race-picks/status", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRacePicksStatus)))
	mux.Handle("GET /v1/me/race-picks/{round}", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRacePicks)))
	mux.Handle("PUT /v1/me/race-picks/{round}", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyRacePicks)))
}

func registerAuthorizedSocialRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/races/{round}/comments", RequireAuth(verifier, http.HandlerFunc(handler.ListRaceComments)))
	mux.Handle("POST /v1/races/{round}/comments", RequireAuth(verifier, http.HandlerFunc(handler.PostRaceComment)))
	mux.Handle("GET /v1/feed", RequireAuth(verifier, http.HandlerFunc(handler.GetActivityFeed)))
	mux.Handle("GET /v1/me/notifications/unread", RequireAuth(verifier, http.HandlerFunc(handler.ListUnreadNotifications)))
	mux.Handle("GET /v1/me/notifications/unread-count", RequireAuth(verifier, http.HandlerFunc(handler.GetUnreadNotificationCount)))
	mux.Handle("POST /v1/me/push-subscription", RequireAuth(verifier, http.HandlerFunc(handler.SubscribePush)))
	mux.Handle("DELETE /v1/me/push-subscription", RequireAuth(verifier, http.HandlerFunc(handler.UnsubscribePush)))
}
