package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/context"
	"github.com/gorilla/mux"
	gouuid "github.com/nu7hatch/gouuid"
)

type Router struct {
	Routes        *mux.Router
	CorsWhiteList []string

	mx sync.Mutex
}

func NewRouter(corsWhiteList []string) *Router {
	return &Router{
		Routes:        mux.NewRouter(),
		CorsWhiteList: corsWhiteList,
	}
}

func (router *Router) AttachHandlers(c *Controller, mw *Middleware) *Router {

	v1 := router.Routes.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/status", handleRequest(c.GetStatus)).Methods("GET")

	v1.HandleFunc("/session", handleRequest(c.PostSession)).Methods("POST")
	v1.HandleFunc("/session", mw.withSession(handleRequest(c.DeleteSession))).Methods("DELETE")

	v1.HandleFunc("/reload", mw.withSession(handleRequest(c.PostReload))).Methods("POST")

	v1.HandleFunc("/users", mw.withSession(handleRequest(c.GetUsers))).Methods("GET")
	v1.HandleFunc("/jobcodes", mw.withSession(handleRequest(c.GetJobcodes))).Methods("GET")

	v1.HandleFunc("/timesheets", mw.withSession(handleRequest(c.GetTimesheets))).Methods("GET")
	v1.HandleFunc("/timesheets", mw.withSession(handleRequest(c.PostTimesheet))).Methods("POST")
	v1.HandleFunc("/timesheets/{id}", mw.withSession(handleRequest(c.PutTimesheet))).Methods("PUT")
	v1.HandleFunc("/timesheets/{id}", mw.withSession(handleRequest(c.DeleteTimesheet))).Methods("DELETE")

	v1.HandleFunc("/clients", mw.withSession(handleRequest(c.GetClients))).Methods("GET")
	v1.HandleFunc("/clients", mw.withSession(handleRequest(c.PostClient))).Methods("POST")
	v1.HandleFunc("/clients/{id}", mw.withSession(handleRequest(c.GetClient))).Methods("GET")
	v1.HandleFunc("/clients/{id}", mw.withSession(handleRequest(c.PutClient))).Methods("PUT")
	v1.HandleFunc("/clients/{id}", mw.withSession(handleRequest(c.DeleteClient))).Methods("DELETE")
	v1.HandleFunc("/clients/{id}/stats", mw.withSession(handleRequest(c.GetClientStats))).Methods("GET")

	v1.HandleFunc("/clients/{id}/contacts", mw.withSession(handleRequest(c.GetContacts))).Methods("GET")
	v1.HandleFunc("/clients/{id}/contacts", mw.withSession(handleRequest(c.PostContact))).Methods("POST")
	v1.HandleFunc("/clients/{id}/contacts/{index}", mw.withSession(handleRequest(c.PutContact))).Methods("PUT")
	v1.HandleFunc("/clients/{id}/contacts/{index}", mw.withSession(handleRequest(c.DeleteContact))).Methods("DELETE")

	v1.HandleFunc("/clients/{id}/projects", mw.withSession(handleRequest(c.GetProjects))).Methods("GET")
	v1.HandleFunc("/clients/{id}/projects", mw.withSession(handleRequest(c.PostProject))).Methods("POST")
	v1.HandleFunc("/clients/{id}/projects/{project}", mw.withSession(handleRequest(c.PutProject))).Methods("PUT")
	v1.HandleFunc("/clients/{id}/projects/{project}", mw.withSession(handleRequest(c.DeleteProject))).Methods("DELETE")

	v1.HandleFunc("/clients/{id}/notes", mw.withSession(handleRequest(c.GetNotes))).Methods("GET")
	v1.HandleFunc("/clients/{id}/notes", mw.withSession(handleRequest(c.PostNote))).Methods("POST")
	v1.HandleFunc("/clients/{id}/notes/{index}", mw.withSession(handleRequest(c.DeleteNote))).Methods("DELETE")

	v1.HandleFunc("/clients/{id}/billing", mw.withSession(handleRequest(c.GetBilling))).Methods("GET")
	v1.HandleFunc("/clients/{id}/billing", mw.withSession(handleRequest(c.PutBilling))).Methods("PUT")

	v1.HandleFunc("/reports/overview", mw.withSession(handleRequest(c.GetOverview))).Methods("GET")
	v1.HandleFunc("/reports/{kind}", mw.withSession(handleRequest(c.GetReport))).Methods("GET")
	v1.HandleFunc("/export/{kind}", mw.withSession(handleRequest(c.GetExport))).Methods("GET")

	v1.HandleFunc("/notifications", mw.withSession(handleRequest(c.GetNotifications))).Methods("GET")
	v1.HandleFunc("/notifications/read", mw.withSession(handleRequest(c.PostNotificationsRead))).Methods("POST")

	return router
}

func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer context.Clear(r)

	u4, err := gouuid.NewV4()
	if err != nil {
		log.Print(err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	uuidToken := u4.String()
	context.Set(r, uuidKey, uuidToken)

	log.Println(uuidToken, "Start", r.Method, r.URL, "for", parseRemoteAddr(r))

	w.Header().Set("Cache-Control", "no-cache, private, no-store, must-revalidate, max-stale=0, post-check=0, pre-check=0")

	if origin, ok := router.isWhiteListedCorsOrigin(r); ok {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Accept-Encoding, Origin, User-Agent, Cache-Control, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS, PUT, POST, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "1728000")
	}

	if r.Method == "OPTIONS" {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
		return
	}
	router.Routes.ServeHTTP(w, r)
}

func (router *Router) isWhiteListedCorsOrigin(r *http.Request) (string, bool) {
	router.mx.Lock()
	defer router.mx.Unlock()

	origin := r.Header.Get("Origin")
	for _, s := range router.CorsWhiteList {
		if s == origin {
			return origin, true
		}
	}
	return "", false
}

func Start(port int, routes *Router) {
	http.Handle("/", routes)
	listenAddress := fmt.Sprintf(":%d", port)
	log.Printf("dashboard-api (PID: %d) is starting on %s\n=> Ctrl-C to shutdown server\n", os.Getpid(), listenAddress)
	log.Fatal(http.ListenAndServe(listenAddress, http.DefaultServeMux))
}
