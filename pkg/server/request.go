package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bugsnag/bugsnag-go"
	"github.com/gorilla/context"

	"github.com/hourboard/dashboard-api/pkg/session"
)

type (
	Response struct {
		status      int
		content     interface{}
		contentType string
	}

	Request struct {
		w    http.ResponseWriter
		r    *http.Request
		body []byte
	}

	HandlerFunc func(req Request) Response
)

// Request context keys
type key int

const (
	uuidKey    key = 0
	sessionKey key = 1
)

func badRequest(explanation interface{}) Response {
	if s, isString := explanation.(string); isString {
		return Response{http.StatusBadRequest, errors.New(s), "application/json"}
	}
	return Response{http.StatusBadRequest, explanation.(error), "application/json"}
}

func unauthorized(err error) Response {
	return Response{http.StatusUnauthorized, err, "application/json"}
}

func notFound(err error) Response {
	return Response{http.StatusNotFound, err, "application/json"}
}

func internalServerError(err error) Response {
	return Response{http.StatusInternalServerError, err, "application/json"}
}

func ok(content interface{}) Response {
	return Response{http.StatusOK, content, "application/json"}
}

func noContent() Response {
	return Response{http.StatusNoContent, nil, "application/json"}
}

func badGateway(err error) Response {
	return Response{http.StatusBadGateway, err, "application/json"}
}

func csvDownload(content string) Response {
	return Response{http.StatusOK, content, "text/csv"}
}

func uuid(r *http.Request) string {
	return fmt.Sprintf("%v", context.Get(r, uuidKey))
}

func currentSession(r *http.Request) *session.Session {
	if v, ok := context.GetOk(r, sessionKey); ok {
		return v.(*session.Session)
	}
	return nil
}

func parseRemoteAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-forwarded-for"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}

// handleRequest wraps API request/response calls and writes the response out.
func handleRequest(handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestStarted := time.Now()

		uuidToken := uuid(r)

		// Parse request body, if any
		var body []byte
		if r.Body != nil {
			defer r.Body.Close()
			b, err := ioutil.ReadAll(r.Body)
			if err != nil {
				log.Println(uuidToken, "Error:", err, r)
				bugsnag.Notify(err, r)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			body = b
			if len(body) > 0 {
				log.Println(uuidToken, "Input:", string(body))
			}
		}

		req := Request{w, r, body}
		resp := handler(req)

		defer func() {
			log.Println(uuidToken, r.Method, resp.status, r.URL, "-", time.Since(requestStarted))
		}()

		// Handle error
		if err, isError := resp.content.(error); isError {
			log.Println(uuidToken, "Error:", err, r)
			if resp.status < 400 || resp.status >= 500 {
				go bugsnag.Notify(err,
					bugsnag.MetaData{
						"request": {
							"uuid": uuidToken,
						},
					})
			}
			http.Error(w, err.Error(), resp.status)
			return
		}

		// Encode JSON response
		var output []byte
		if resp.contentType == "application/json" {
			b, err := json.Marshal(resp.content)
			if err != nil {
				log.Print(err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			output = b
		} else if resp.content != nil {
			output = []byte(fmt.Sprintf("%v", resp.content))
		}

		// Log output, except for GET results, which tend to be spammy.
		if r.Method != "GET" {
			log.Println(uuidToken, "Output", resp.contentType, string(output))
		}

		// Write output
		w.Header().Set("Content-Length", strconv.Itoa(len(output)))
		w.Header().Set("Content-type", resp.contentType)
		w.WriteHeader(resp.status)
		w.Write(output)
	}
}
