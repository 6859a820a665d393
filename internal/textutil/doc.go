// Package textutil holds small text helpers shared across packages.
package textutil
