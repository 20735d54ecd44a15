// Package app wires the kwlens HTTP server together.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, config file, .env and environment
//  2. Initialize logging and OpenTelemetry
//  3. Create the analysis and health services
//  4. Set up middleware and routes
//  5. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run serves until SIGINT or SIGTERM, then drains active requests and
// flushes telemetry. Initialization errors are returned to the caller; the
// package never calls os.Exit.
package app
