package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodGet, "/api/users", app.getAllUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/:id", app.getUserHandler)
	router.HandlerFunc(http.MethodPut, "/api/users/:id", app.updateUserHandler)
	router.HandlerFunc(http.MethodDelete, "/api/users/:id", app.deleteUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/logout", app.requireAuthUser(app.logoutUserHandler))

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	// GET /api/blogs/stats is dispatched inside getBlogHandler: httprouter
	// refuses a static child next to the :id wildcard.
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodPost, "/api/blogs/:id/like", app.likeBlogHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs/:id/comments", app.addCommentHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(app.authenticate(router))))
}
