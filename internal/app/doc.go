// Package app is the composition root of readinglist.
//
// Run loads the configuration (config.toml, .env files and READINGLIST_*
// environment variables), sends the standard logger to the log file, reads
// the stored preferences, builds the books API client and hands everything to
// the Bubble Tea program in package ui. It blocks until the program exits.
//
// Only setup failures are returned: an unreadable config file, a log file
// that cannot be opened or an API URL that does not parse. Failures talking
// to the API are shown in the UI and logged; they never stop the program.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{OpenPath: "/books/7"}); err != nil {
//		log.Fatalf("readinglist: %v", err)
//	}
package app
