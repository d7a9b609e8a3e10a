package handlers

import (
	"fmt"
	"net/http"
)

// Docs redirects the root path to the endpoint listing.
func Docs(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/docs", http.StatusFound)
}

// DocsIndex serves a plain-text listing of the API surface.
func DocsIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, `todo-api

POST   /users/              register        {login, password}
POST   /users/login         login           form: username, password
GET    /users/me            current user    bearer
DELETE /users/me            delete account  bearer
POST   /lists/              create list     bearer, {name}
GET    /lists/              my lists        bearer
GET    /lists/{id}          get list        bearer
DELETE /lists/{id}          delete list     bearer
POST   /lists/{id}/tasks/   create task     bearer, {name, description?, status?}
GET    /lists/{id}/tasks/   list tasks      bearer
GET    /tasks/{id}          get task        bearer
DELETE /tasks/{id}          delete task     bearer
GET    /health              liveness
GET    /ready               readiness (DB ping)
GET    /metrics             prometheus
`)
}
