package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
		mustAdmin = func(next http.Handler) http.Handler {
			return mustSession(app.mustAdmin(next))
		}
	)

	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/register", session(http.HandlerFunc(app.registerPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("POST /api/suggestions", mustSession(http.HandlerFunc(app.suggestionPOST)))

	mux.Handle("POST /api/sessions", mustSession(http.HandlerFunc(app.sessionPOST)))
	mux.Handle("GET /api/sessions/{date}", mustSession(http.HandlerFunc(app.sessionGET)))
	mux.Handle("POST /api/sessions/{date}/checkin", mustSession(http.HandlerFunc(app.sessionCheckinPOST)))
	mux.Handle("POST /api/sessions/{date}/complete", mustSession(http.HandlerFunc(app.sessionCompletePOST)))

	mux.Handle("GET /api/exercises", session(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{exerciseID}", session(http.HandlerFunc(app.exerciseGET)))
	mux.Handle("GET /api/exercises/{exerciseID}/info", session(http.HandlerFunc(app.exerciseInfoGET)))
	mux.Handle("POST /api/exercises/{exerciseID}/preference", mustSession(http.HandlerFunc(app.exercisePreferencePOST)))
	mux.Handle("POST /api/exercises/generate", mustAdmin(http.HandlerFunc(app.exerciseGeneratePOST)))

	mux.Handle("GET /api/preferences", mustSession(http.HandlerFunc(app.preferencesGET)))
	mux.Handle("GET /api/profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("POST /api/profile", mustSession(http.HandlerFunc(app.profilePOST)))

	mux.Handle("GET /api/healthy", noAuth(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noAuth(http.HandlerFunc(app.testTimeout)))

	return mux
}
