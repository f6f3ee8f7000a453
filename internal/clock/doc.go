// Package clock abstracts the host clock so time-driven code can be tested
// deterministically. Production code injects Real(); tests inject a Fake
// whose current time and ticker delivery are controlled manually.
package clock
