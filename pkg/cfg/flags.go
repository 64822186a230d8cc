package cfg

import (
	"os"

	"github.com/namsral/flag"
)

type Flags struct {
	Port          int
	WorkDir       string
	BugsnagAPIKey string
	Environment   string
}

func ParseFlags(flags *Flags) {
	fs := flag.NewFlagSetWithEnvPrefix(os.Args[0], "DASHBOARD", flag.ExitOnError)

	fs.IntVar(&flags.Port, "port", 8100, "port")
	fs.StringVar(&flags.WorkDir, "workdir", ".", "Workdir of server")
	fs.StringVar(&flags.BugsnagAPIKey, "bugsnag_key", "", "Bugsnag API Key")
	fs.StringVar(&flags.Environment, "environment", "development", "Environment")

	fs.Parse(os.Args[1:])
}
