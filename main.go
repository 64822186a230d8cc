package main

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/bugsnag/bugsnag-go"

	"github.com/hourboard/dashboard-api/pkg/cfg"
	"github.com/hourboard/dashboard-api/pkg/server"
	"github.com/hourboard/dashboard-api/pkg/session"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	rand.Seed(time.Now().Unix())

	flags := cfg.Flags{}
	cfg.ParseFlags(&flags)
	cfgService := cfg.NewService(flags)

	bugsnag.Configure(bugsnag.Configuration{
		APIKey:              flags.BugsnagAPIKey,
		ReleaseStage:        flags.Environment,
		NotifyReleaseStages: []string{"production", "staging"},
	})

	sessions := session.NewStore(cfgService.GetTrackerAPIHost())

	c := server.NewController(sessions)
	mw := server.NewMiddleware(sessions)

	router := server.NewRouter(cfgService.GetCorsWhitelist())
	server.Start(flags.Port, router.AttachHandlers(c, mw))
}
