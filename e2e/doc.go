//go:build e2e

// Package e2e provides end-to-end browser tests for the Dungeon Master Help
// web application.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests against the in-process fixture app:
//
//	go test -tags=e2e ./e2e/...
//
// Running them against a deployed frontend:
//
//	E2E_BASE_URL=http://localhost:5173 E2E_USERNAME=testuser E2E_PASSWORD=testpass \
//	    go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - pkg/uidriver for browser automation (Rod, Chrome DevTools Protocol)
//   - pkg/scenario for the login and campaign flows
//   - cmd/fixture-app/server as the target when E2E_BASE_URL is unset
//
// Test isolation:
// Each test gets its own browser session, closed from t.Cleanup. Without
// E2E_BASE_URL each test also starts its own fixture server on a random
// port.
package e2e
