// Package testutil holds deterministic helpers shared by bookshelf tests.
package testutil
