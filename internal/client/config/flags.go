package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
// Boolean -r must be given as -r=true or -r=false to carry a value.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "access token")
	fs.BoolVar(&cfg.RollbackOrphans, "r", cfg.RollbackOrphans, "delete the registry record when the upload fails")
	urlCacheTTL := fs.Int("l", int(cfg.URLCacheTTL.Seconds()), "retrieval URL cache lifetime (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.URLCacheTTL = time.Duration(*urlCacheTTL) * time.Second
}
