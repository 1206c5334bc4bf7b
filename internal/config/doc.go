// Package config loads the client's configuration.
//
// # Resolution order
//
//  1. Defaults: api_url http://localhost:3001, timeout 5s, log_file
//     ~/.local/state/readinglist/readinglist.log
//  2. The TOML file given with -config, else ~/.config/readinglist/config.toml.
//     A missing file is not an error.
//  3. .env.local then .env in the working directory, via godotenv. Variables
//     already set in the environment are never overwritten.
//  4. READINGLIST_API_URL, READINGLIST_TIMEOUT and READINGLIST_LOG_FILE.
//
// Values are trimmed, empty values fall back to the default and a leading ~
// is expanded to the home directory.
//
// # TOML Format
//
//	api_url = "http://localhost:3001"
//	timeout = "5s"
//	log_file = "~/.local/state/readinglist/readinglist.log"
//
// The timeout is a Go duration string and must be positive.
package config
