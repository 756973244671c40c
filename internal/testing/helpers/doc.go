// Package helpers provides test utilities for the SmartWords HTTP API.
//
// # Requests
//
//	rec := helpers.NewRequest(t, http.MethodPost, "/set").
//	    WithBody(fixtures.CreateSetRequest()).
//	    WithHeader("Idempotency-Key", "abc").
//	    Serve(router)
//
// # Assertions
//
//	helpers.AssertStatus(t, rec, http.StatusCreated)
//	helpers.AssertValidationError(t, rec, "name")
//	sets := helpers.DecodeSets(t, rec)
package helpers
