package cfg

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"path/filepath"
)

// Service resolves environment-dependent settings from the urls file in
// the workdir. The tracker API base URL is fixed configuration, never
// user input.
type Service struct {
	environment string

	urls struct {
		TrackerAPIHost map[string]string   `json:"tracker_api_host"`
		CorsWhitelist  map[string][]string `json:"cors_whitelist"`
	}
}

func NewService(flags Flags) *Service {
	svc := &Service{environment: flags.Environment}
	svc.loadUrls(flags.WorkDir)
	return svc
}

func (c *Service) loadUrls(workDir string) {
	b, err := ioutil.ReadFile(filepath.Join(workDir, "config", "urls.json"))
	if err != nil {
		log.Fatal(err)
	}
	if err := json.Unmarshal(b, &c.urls); err != nil {
		log.Fatal(err)
	}
}

func (c *Service) GetTrackerAPIHost() string {
	return c.urls.TrackerAPIHost[c.environment]
}

func (c *Service) GetCorsWhitelist() []string {
	return c.urls.CorsWhitelist[c.environment]
}
