package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	handle := func(method, pattern string, h http.HandlerFunc) {
		router.HandlerFunc(method, pattern, tagRoute(pattern, h))
	}

	handle(http.MethodGet, "/healthcheck", app.healthCheckHandler)
	handle(http.MethodGet, "/metrics", promhttp.Handler().ServeHTTP)

	handle(http.MethodGet, "/blogs", app.listBlogsHandler)
	handle(http.MethodPost, "/blogs", app.requireBasicAuth(app.createBlogHandler))
	handle(http.MethodGet, "/blogs/:id", app.getBlogHandler)
	handle(http.MethodPut, "/blogs/:id", app.requireBasicAuth(app.updateBlogHandler))
	handle(http.MethodDelete, "/blogs/:id", app.requireBasicAuth(app.deleteBlogHandler))
	handle(http.MethodGet, "/blogs/:id/posts", app.listBlogPostsHandler)
	handle(http.MethodPost, "/blogs/:id/posts", app.requireBasicAuth(app.createBlogPostHandler))

	handle(http.MethodGet, "/posts", app.listPostsHandler)
	handle(http.MethodPost, "/posts", app.requireBasicAuth(app.createPostHandler))
	handle(http.MethodGet, "/posts/:id", app.getPostHandler)
	handle(http.MethodPut, "/posts/:id", app.requireBasicAuth(app.updatePostHandler))
	handle(http.MethodDelete, "/posts/:id", app.requireBasicAuth(app.deletePostHandler))

	handle(http.MethodGet, "/users", app.listUsersHandler)
	handle(http.MethodPost, "/users", app.requireBasicAuth(app.createUserHandler))
	handle(http.MethodDelete, "/users/:id", app.requireBasicAuth(app.deleteUserHandler))

	handle(http.MethodPost, "/auth/login", app.loginHandler)

	handle(http.MethodDelete, "/testing/all-data", app.requireBasicAuth(app.deleteAllDataHandler))

	return app.metrics(app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router)))))
}
